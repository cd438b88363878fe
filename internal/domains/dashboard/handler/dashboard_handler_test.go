package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/dashboard"
	"biblioteca-console/internal/domains/dashboard/handler"
	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/domains/loan"
	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/gateway"

	bookService "biblioteca-console/internal/domains/book/service"
	fineService "biblioteca-console/internal/domains/fine/service"
	loanService "biblioteca-console/internal/domains/loan/service"
	memberService "biblioteca-console/internal/domains/member/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDashboardRouter(t *testing.T, backend http.Handler) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	api := gateway.NewClient(server.URL, 5*time.Second)
	h := handler.NewDashboardHandler(
		bookService.NewBookService(api),
		memberService.NewMemberService(api),
		loanService.NewLoanService(api),
		fineService.NewFineService(api),
	)

	router := gin.New()
	router.GET("/dashboard", h.Summary)
	return router
}

func getSummary(t *testing.T, router *gin.Engine) dashboard.Summary {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data dashboard.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestDashboard_AggregatesCounters(t *testing.T) {
	// Eight active loans spread over three members.
	activeLoans := make([]loan.Loan, 8)
	for i := range activeLoans {
		activeLoans[i] = loan.Loan{
			ID:     int64(i + 1),
			Active: true,
			Member: &member.Member{ID: int64(i%3 + 1)},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]book.Book{{ID: 1}, {ID: 2}, {ID: 3}})
	})
	mux.HandleFunc("GET /libros/disponibles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]book.Book{{ID: 1}})
	})
	mux.HandleFunc("GET /socios", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]member.Member{{ID: 1}, {ID: 2}})
	})
	mux.HandleFunc("GET /prestamos/activos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(activeLoans)
	})
	mux.HandleFunc("GET /prestamos/retraso", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]loan.Loan{{ID: 1, Active: true, OverdueDays: 2}})
	})
	mux.HandleFunc("GET /multas/activas", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]fine.Fine{
			{ID: 1, Active: true, Amount: decimal.NewFromInt(30)},
			{ID: 2, Active: true, Amount: decimal.NewFromFloat(12.5)},
		})
	})
	router := newDashboardRouter(t, mux)

	summary := getSummary(t, router)
	assert.Equal(t, 3, summary.TotalBooks)
	assert.Equal(t, 1, summary.AvailableBooks)
	assert.Equal(t, 2, summary.TotalMembers)
	assert.Equal(t, 3, summary.BorrowingMembers)
	assert.Equal(t, 8, summary.ActiveLoans)
	assert.Equal(t, 1, summary.OverdueLoans)
	assert.Equal(t, 2, summary.PendingFines)
	assert.True(t, summary.PendingAmount.Equal(decimal.NewFromFloat(42.5)))

	// Recent lists cap at five entries.
	assert.Len(t, summary.RecentLoans, 5)
	assert.Len(t, summary.RecentOverdue, 1)
}

func TestDashboard_DegradesPerBlock(t *testing.T) {
	// Only the books endpoint answers; every other block falls back to
	// zero without failing the page.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /libros", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]book.Book{{ID: 1}, {ID: 2}})
	})
	router := newDashboardRouter(t, mux)

	summary := getSummary(t, router)
	assert.Equal(t, 2, summary.TotalBooks)
	assert.Zero(t, summary.AvailableBooks)
	assert.Zero(t, summary.TotalMembers)
	assert.Zero(t, summary.ActiveLoans)
	assert.Zero(t, summary.PendingFines)
	assert.True(t, summary.PendingAmount.IsZero())
	assert.Empty(t, summary.RecentLoans)
}
