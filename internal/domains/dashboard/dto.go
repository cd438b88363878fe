package dashboard

import (
	"github.com/shopspring/decimal"

	"biblioteca-console/internal/domains/loan"
)

// Summary is the landing page payload: headline counters plus the most
// recent active and overdue loans. Every block degrades to its zero value
// when its backing load fails; the dashboard never errors as a whole.
type Summary struct {
	TotalBooks       int             `json:"totalLibros"`
	AvailableBooks   int             `json:"librosDisponibles"`
	TotalMembers     int             `json:"totalSocios"`
	BorrowingMembers int             `json:"sociosConPrestamos"`
	ActiveLoans      int             `json:"prestamosActivos"`
	OverdueLoans     int             `json:"prestamosConRetraso"`
	PendingFines     int             `json:"multasPendientes"`
	PendingAmount    decimal.Decimal `json:"montoPendiente"`

	RecentLoans   []loan.Loan `json:"prestamosRecientes"`
	RecentOverdue []loan.Loan `json:"retrasosRecientes"`
}
