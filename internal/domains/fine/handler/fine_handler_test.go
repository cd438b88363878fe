package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/domains/fine/handler"
	"biblioteca-console/internal/domains/loan"
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

func newFineRouter(t *testing.T, backend http.Handler) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	api := gateway.NewClient(server.URL, 5*time.Second)
	fines := fineService.NewFineService(api)
	wf := workflow.NewCoordinator(
		bookService.NewBookService(api),
		memberService.NewMemberService(api),
		loanService.NewLoanService(api),
		fines,
		nil,
	)
	h := handler.NewFineHandler(fines, wf)

	router := gin.New()
	router.GET("/multas", h.List)
	router.GET("/multas/motivos", h.Reasons)
	router.GET("/multas/sugerencias/:id", h.Suggestions)
	router.POST("/multas", h.Create)
	router.PUT("/multas/:id/pagar", h.Pay)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFineCreate_ValidationMessages(t *testing.T) {
	router := newFineRouter(t, http.NewServeMux())

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			"missing everything",
			`{}`,
			"Los campos Socio, Monto y Motivo son obligatorios",
		},
		{
			"no loan selected",
			`{"idSocio": 4, "monto": "30", "motivo": "Retraso en devolución"}`,
			"Debe seleccionar un préstamo para asociar la multa",
		},
		{
			"otro without description",
			`{"idSocio": 4, "idPrestamo": 9, "monto": "30", "motivo": "Otro"}`,
			"la descripción es obligatoria para el motivo Otro",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/multas", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestFineCreate_SendsLoanLinkedPayload(t *testing.T) {
	var payload map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("POST /multas", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(fine.Fine{ID: 1, Amount: decimal.NewFromInt(30), Reason: fine.ReasonLateReturn, Active: true})
	})
	mux.HandleFunc("GET /multas", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]fine.Fine{{ID: 1, Active: true}})
	})
	router := newFineRouter(t, mux)

	w := do(router, http.MethodPost, "/multas",
		`{"idSocio": 4, "idPrestamo": 9, "monto": "30", "motivo": "Retraso en devolución"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The backend payload carries the loan link, not the member id.
	assert.Contains(t, payload, "prestamoId")
	assert.NotContains(t, payload, "idSocio")
}

func TestFineSuggestions_DeriveFromOverdueLoans(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /prestamos/socio/4/activos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]loan.Loan{
			{ID: 1, Active: true, OverdueDays: 4},
			{ID: 2, Active: true},
		})
	})
	router := newFineRouter(t, mux)

	w := do(router, http.MethodGet, "/multas/sugerencias/4", "")
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Suggestions []fine.Suggestion `json:"sugerencias"`
			ActiveLoans []loan.Loan       `json:"prestamosActivos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Suggestions, 1)
	assert.True(t, env.Data.Suggestions[0].SuggestedAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, fine.ReasonLateReturn, env.Data.Suggestions[0].Reason)
	assert.Len(t, env.Data.ActiveLoans, 2)
}

func TestFineReasons_Endpoint(t *testing.T) {
	router := newFineRouter(t, http.NewServeMux())

	w := do(router, http.MethodGet, "/multas/motivos", "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, reason := range fine.Reasons {
		assert.Contains(t, w.Body.String(), reason)
	}
}

func TestFinePay_RefreshesCollection(t *testing.T) {
	paid := false
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /multas/1/pagar", func(w http.ResponseWriter, r *http.Request) {
		paid = true
		json.NewEncoder(w).Encode(fine.Fine{ID: 1, Active: false})
	})
	mux.HandleFunc("GET /multas", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]fine.Fine{{ID: 1, Active: false}})
	})
	router := newFineRouter(t, mux)

	w := do(router, http.MethodPut, "/multas/1/pagar", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, paid)

	var env struct {
		Data workflow.FineMutationResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data.Fine)
	assert.False(t, env.Data.Fine.Active)
	assert.Len(t, env.Data.Fines, 1)
}
