package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/dashboard"
	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/domains/loan"
	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/pkg/logger"
)

// recentLimit caps the dashboard's recent-loan lists.
const recentLimit = 5

// DashboardHandler aggregates the landing page from the entity services.
type DashboardHandler struct {
	books   book.Service
	members member.Service
	loans   loan.Service
	fines   fine.Service
}

func NewDashboardHandler(books book.Service, members member.Service, loans loan.Service, fines fine.Service) *DashboardHandler {
	return &DashboardHandler{books: books, members: members, loans: loans, fines: fines}
}

// Summary handles GET /dashboard. The six loads fan out concurrently; each
// one degrades to its zero value on failure instead of failing the page.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	var summary dashboard.Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		books, err := h.books.List(gctx)
		if err != nil {
			logger.Warn("dashboard: books load failed", err)
			return nil
		}
		summary.TotalBooks = len(books)
		return nil
	})

	g.Go(func() error {
		available, err := h.books.Available(gctx)
		if err != nil {
			logger.Warn("dashboard: available books load failed", err)
			return nil
		}
		summary.AvailableBooks = len(available)
		return nil
	})

	g.Go(func() error {
		members, err := h.members.List(gctx)
		if err != nil {
			logger.Warn("dashboard: members load failed", err)
			return nil
		}
		summary.TotalMembers = len(members)
		return nil
	})

	g.Go(func() error {
		active, err := h.loans.Active(gctx)
		if err != nil {
			logger.Warn("dashboard: active loans load failed", err)
			return nil
		}
		summary.ActiveLoans = len(active)
		summary.BorrowingMembers = distinctMembers(active)
		summary.RecentLoans = head(active, recentLimit)
		return nil
	})

	g.Go(func() error {
		overdue, err := h.loans.Overdue(gctx)
		if err != nil {
			logger.Warn("dashboard: overdue loans load failed", err)
			return nil
		}
		summary.OverdueLoans = len(overdue)
		summary.RecentOverdue = head(overdue, recentLimit)
		return nil
	})

	g.Go(func() error {
		pending, err := h.fines.Active(gctx)
		if err != nil {
			logger.Warn("dashboard: pending fines load failed", err)
			return nil
		}
		summary.PendingFines = len(pending)
		for _, f := range pending {
			summary.PendingAmount = summary.PendingAmount.Add(f.Amount)
		}
		return nil
	})

	// The goroutines swallow their own errors, so Wait only synchronizes.
	_ = g.Wait()

	if summary.RecentLoans == nil {
		summary.RecentLoans = []loan.Loan{}
	}
	if summary.RecentOverdue == nil {
		summary.RecentOverdue = []loan.Loan{}
	}

	response.Success(c, http.StatusOK, summary)
}

func distinctMembers(loans []loan.Loan) int {
	seen := make(map[int64]struct{}, len(loans))
	for _, l := range loans {
		if l.Member == nil {
			continue
		}
		seen[l.Member.ID] = struct{}{}
	}
	return len(seen)
}

func head(loans []loan.Loan, n int) []loan.Loan {
	if len(loans) <= n {
		return loans
	}
	return loans[:n]
}
