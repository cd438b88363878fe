package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/category"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/pkg/logger"
)

// BookHandler is the books page controller: collection load, in-page search
// and state filter, and the create/edit/delete dialogs.
type BookHandler struct {
	service    book.Service
	categories category.Service
}

func NewBookHandler(service book.Service, categories category.Service) *BookHandler {
	return &BookHandler{service: service, categories: categories}
}

// List handles GET /libros?busqueda=&estado=
// busqueda matches title, author or ISBN; estado=TODOS (or empty) keeps
// everything. Both filters run over the freshly loaded collection.
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("load books", err)
		response.HandleError(c, err)
		return
	}

	if busqueda := strings.TrimSpace(c.Query("busqueda")); busqueda != "" {
		books = filterBooks(books, busqueda)
	}

	if estado := strings.TrimSpace(c.Query("estado")); estado != "" && estado != "TODOS" {
		state := book.State(estado)
		if !state.Valid() {
			response.BadRequest(c, "estado inválido")
			return
		}
		filtered := books[:0]
		for _, b := range books {
			if b.State == state {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	response.Success(c, http.StatusOK, book.NewListResp(books))
}

// Get handles GET /libros/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Available handles GET /libros/disponibles (the loan form's book picker).
func (h *BookHandler) Available(c *gin.Context) {
	books, err := h.service.Available(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.NewListResp(books))
}

// Search handles GET /libros/buscar?titulo=|autor= via the backend's own
// search projections.
func (h *BookHandler) Search(c *gin.Context) {
	titulo := strings.TrimSpace(c.Query("titulo"))
	autor := strings.TrimSpace(c.Query("autor"))

	var (
		books []book.Book
		err   error
	)
	switch {
	case titulo != "":
		books, err = h.service.SearchByTitle(c.Request.Context(), titulo)
	case autor != "":
		books, err = h.service.SearchByAuthor(c.Request.Context(), autor)
	default:
		response.BadRequest(c, "indique titulo o autor")
		return
	}
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.NewListResp(books))
}

// ByState handles GET /libros/estado/:estado
func (h *BookHandler) ByState(c *gin.Context) {
	state := book.State(c.Param("estado"))
	if !state.Valid() {
		response.BadRequest(c, "estado inválido")
		return
	}

	books, err := h.service.ByState(c.Request.Context(), state)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.NewListResp(books))
}

// CheckAvailability handles GET /libros/:id/disponible
func (h *BookHandler) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"disponible": available})
}

// FormData handles GET /libros/formulario: the category dropdown for the
// book form. A failed load degrades to an empty list so the form stays
// usable; it never surfaces as an error.
func (h *BookHandler) FormData(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		logger.Warn("book form: categories load failed, degrading to empty list", err)
		categories = nil
	}
	response.Success(c, http.StatusOK, category.NewListResp(categories))
}

// Create handles POST /libros. New books come back DISPONIBLE; the
// collection is re-fetched rather than patched.
func (h *BookHandler) Create(c *gin.Context) {
	var req book.SaveBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"libro":  created,
		"libros": books,
	})
}

// Update handles PUT /libros/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.SaveBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"libro":  updated,
		"libros": books,
	})
}

// Delete handles DELETE /libros/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book.NewListResp(books))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return 0, false
	}
	return id, true
}

func filterBooks(books []book.Book, term string) []book.Book {
	term = strings.ToLower(term)
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) ||
			strings.Contains(strings.ToLower(b.ISBN), term) {
			out = append(out, b)
		}
	}
	return out
}
