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

	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/domains/member/handler"
	"biblioteca-console/internal/gateway"
	"biblioteca-console/internal/workflow"

	bookService "biblioteca-console/internal/domains/book/service"
	fineService "biblioteca-console/internal/domains/fine/service"
	loanService "biblioteca-console/internal/domains/loan/service"
	memberService "biblioteca-console/internal/domains/member/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newRouter wires the member routes against a fake backend. The workflow
// coordinator runs without a cache, exercising the read-then-write number
// fallback.
func newRouter(t *testing.T, backend http.Handler) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	api := gateway.NewClient(server.URL, 5*time.Second)
	wf := workflow.NewCoordinator(
		bookService.NewBookService(api),
		memberService.NewMemberService(api),
		loanService.NewLoanService(api),
		fineService.NewFineService(api),
		nil,
	)
	h := handler.NewMemberHandler(memberService.NewMemberService(api), wf)

	router := gin.New()
	router.GET("/socios", h.List)
	router.GET("/socios/:id", h.Get)
	router.POST("/socios", h.Create)
	router.PUT("/socios/:id", h.Update)
	router.DELETE("/socios/:id", h.Delete)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMemberList_FiltersByNameDNIAndNumber(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]member.Member{
			{ID: 1, Number: 1000, Name: "Ana García", DNI: "12345678"},
			{ID: 2, Number: 1001, Name: "Bruno Díaz", DNI: "87654321"},
		})
	})
	router := newRouter(t, mux)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?busqueda=ana", 1},
		{"?busqueda=8765", 1},
		{"?busqueda=1001", 1},
		{"?busqueda=nadie", 0},
	}
	for _, tt := range tests {
		w := perform(router, http.MethodGet, "/socios"+tt.query, "")
		require.Equal(t, http.StatusOK, w.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp member.ListResp
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, tt.want, resp.Total, "query %q", tt.query)
	}
}

func TestMemberCreate_AllocatesNumberAndSanitizesDNI(t *testing.T) {
	var created member.CreateMemberReq
	members := []member.Member{{ID: 1, Number: 1005, Name: "Ana", DNI: "12345678"}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(members)
	})
	mux.HandleFunc("POST /socios", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		m := member.Member{ID: 2, Number: created.Number, Name: created.Name, DNI: created.DNI}
		members = append(members, m)
		json.NewEncoder(w).Encode(m)
	})
	router := newRouter(t, mux)

	w := perform(router, http.MethodPost, "/socios", `{"nombre": "Bruno Díaz", "dni": "20.111.222"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "20111222", created.DNI)
	assert.Equal(t, int64(1006), created.Number)
}

func TestMemberCreate_RejectsInvalidDNI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]member.Member{})
	})
	router := newRouter(t, mux)

	w := perform(router, http.MethodPost, "/socios", `{"nombre": "Bruno", "dni": "12a34"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El DNI debe tener entre 7 y 15 dígitos")
}

func TestMemberDelete_BlockedWithActiveLoans(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios/7/prestamos-activos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(true)
	})
	mux.HandleFunc("DELETE /socios/7", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	router := newRouter(t, mux)

	w := perform(router, http.MethodDelete, "/socios/7", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "No se puede eliminar un socio con préstamos activos")
	assert.False(t, deleted, "DELETE must never reach the backend")
}

func TestMemberDelete_Succeeds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios/7/prestamos-activos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(false)
	})
	mux.HandleFunc("DELETE /socios/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /socios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]member.Member{})
	})
	router := newRouter(t, mux)

	w := perform(router, http.MethodDelete, "/socios/7", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMemberGet_ForwardsBackendNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /socios/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Socio no encontrado"})
	})
	router := newRouter(t, mux)

	w := perform(router, http.MethodGet, "/socios/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Socio no encontrado")
}
