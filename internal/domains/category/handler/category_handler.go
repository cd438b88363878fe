package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/category"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/pkg/logger"
)

// CategoryHandler is the categories page controller: it loads the
// collection, applies the in-page search filter and drives the create,
// edit and delete dialogs.
type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /categorias?busqueda=
// The search box filters the already-loaded collection by name or
// description, the way the page does it.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("load categories", err)
		response.HandleError(c, err)
		return
	}

	if busqueda := strings.TrimSpace(c.Query("busqueda")); busqueda != "" {
		categories = filterCategories(categories, busqueda)
	}

	response.Success(c, http.StatusOK, category.NewListResp(categories))
}

// Search handles GET /categorias/buscar?nombre= via the backend's own
// search projection.
func (h *CategoryHandler) Search(c *gin.Context) {
	nombre := strings.TrimSpace(c.Query("nombre"))
	if nombre == "" {
		response.BadRequest(c, "el parámetro nombre es obligatorio")
		return
	}

	categories, err := h.service.SearchByName(c.Request.Context(), nombre)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category.NewListResp(categories))
}

// Get handles GET /categorias/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

// Create handles POST /categorias. After the backend accepts the new
// category the collection is re-fetched, never patched locally.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.SaveCategoryReq
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

	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"categoria":  created,
		"categorias": categories,
	})
}

// Update handles PUT /categorias/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return
	}

	var req category.SaveCategoryReq
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

	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"categoria":  updated,
		"categorias": categories,
	})
}

// Delete handles DELETE /categorias/:id. The backend blocks deletion of a
// category still referenced by books; that failure surfaces as a banner.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, category.NewListResp(categories))
}

func filterCategories(categories []category.Category, term string) []category.Category {
	term = strings.ToLower(term)
	out := make([]category.Category, 0, len(categories))
	for _, cat := range categories {
		if strings.Contains(strings.ToLower(cat.Name), term) ||
			strings.Contains(strings.ToLower(cat.Description), term) {
			out = append(out, cat)
		}
	}
	return out
}
