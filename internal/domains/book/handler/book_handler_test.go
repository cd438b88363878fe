package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/book/handler"
	"biblioteca-console/internal/domains/category"
	"biblioteca-console/internal/gateway"

	bookService "biblioteca-console/internal/domains/book/service"
	categoryService "biblioteca-console/internal/domains/category/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func catalog() []book.Book {
	return []book.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", State: book.StateAvailable},
		{ID: 2, Title: "Fundación", Author: "Isaac Asimov", ISBN: "9780553293357", State: book.StateLoaned},
		{ID: 3, Title: "Neuromante", Author: "William Gibson", ISBN: "9780441569595", State: book.StateMaintenance},
	}
}

func newBookRouter(t *testing.T, backend http.Handler) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	api := gateway.NewClient(server.URL, 5*time.Second)
	h := handler.NewBookHandler(bookService.NewBookService(api), categoryService.NewCategoryService(api))

	router := gin.New()
	router.GET("/libros", h.List)
	router.GET("/libros/buscar", h.Search)
	router.GET("/libros/formulario", h.FormData)
	router.POST("/libros", h.Create)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) book.ListResp {
	t.Helper()
	var env struct {
		Data book.ListResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestBookList_SearchAndStateFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(catalog())
	})
	router := newBookRouter(t, mux)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?busqueda=dune", 1},
		{"?busqueda=asimov", 1},
		{"?busqueda=9780441569595", 1},
		{"?estado=DISPONIBLE", 1},
		{"?estado=TODOS", 3},
		{"?busqueda=e&estado=PRESTADO", 1},
		{"?busqueda=nada", 0},
	}
	for _, tt := range tests {
		w := get(router, "/libros"+tt.query)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tt.want, decodeList(t, w).Total, "query %q", tt.query)
	}
}

func TestBookSearch_DelegatesToBackendProjections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros/buscar/titulo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dune", r.URL.Query().Get("titulo"))
		json.NewEncoder(w).Encode(catalog()[:1])
	})
	mux.HandleFunc("GET /libros/buscar/autor", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gibson", r.URL.Query().Get("autor"))
		json.NewEncoder(w).Encode(catalog()[2:])
	})
	router := newBookRouter(t, mux)

	w := get(router, "/libros/buscar?titulo=dune")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Dune", list.Books[0].Title)

	w = get(router, "/libros/buscar?autor=gibson")
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeList(t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Neuromante", list.Books[0].Title)

	// Neither parameter present is an operator error.
	w = get(router, "/libros/buscar")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookList_RejectsUnknownState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(catalog())
	})
	router := newBookRouter(t, mux)

	w := get(router, "/libros?estado=QUEMADO")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookCreate_RefetchesCollection(t *testing.T) {
	books := catalog()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(books)
	})
	mux.HandleFunc("POST /libros", func(w http.ResponseWriter, r *http.Request) {
		var req book.SaveBookReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		created := book.Book{ID: 4, Title: req.Title, Author: req.Author, ISBN: req.ISBN, State: book.StateAvailable}
		books = append(books, created)
		json.NewEncoder(w).Encode(created)
	})
	router := newBookRouter(t, mux)

	req := httptest.NewRequest(http.MethodPost, "/libros",
		strings.NewReader(`{"titulo": "Hyperion", "autor": "Dan Simmons", "isbn": "9780553283686", "idCategoria": 2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data struct {
			Book  book.Book   `json:"libro"`
			Books []book.Book `json:"libros"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, book.StateAvailable, env.Data.Book.State)
	assert.Len(t, env.Data.Books, 4)
}

func TestBookCreate_AllFieldsRequired(t *testing.T) {
	router := newBookRouter(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodPost, "/libros", strings.NewReader(`{"titulo": "Hyperion"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookFormData_DegradesWhenCategoriesFail(t *testing.T) {
	router := newBookRouter(t, http.NewServeMux())

	w := get(router, "/libros/formulario")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data category.ListResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Empty(t, env.Data.Categories)
}
