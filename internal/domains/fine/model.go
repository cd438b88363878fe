package fine

import (
	"github.com/shopspring/decimal"
)

// Reasons the fine form offers. "Otro" demands a description.
const (
	ReasonLateReturn   = "Retraso en devolución"
	ReasonBookDamage   = "Daño en el libro"
	ReasonBookLoss     = "Pérdida del libro"
	ReasonMissingPages = "Páginas faltantes"
	ReasonOther        = "Otro"
)

// Reasons lists the fixed choices in form order.
var Reasons = []string{
	ReasonLateReturn,
	ReasonBookDamage,
	ReasonBookLoss,
	ReasonMissingPages,
	ReasonOther,
}

// Fine mirrors the backend's multa resource. A fine flips from active to
// paid exactly once; the console exposes no way back. LoanID is optional in
// the data model (manual, unlinked fines exist server-side) even though the
// creation form always links one.
type Fine struct {
	ID          int64           `json:"idMulta"`
	Amount      decimal.Decimal `json:"monto"`
	Reason      string          `json:"motivo"`
	Description string          `json:"descripcion,omitempty"`
	Active      bool            `json:"activa"`
	LoanID      *int64          `json:"idPrestamo,omitempty"`
	CreatedAt   string          `json:"fechaCreacion,omitempty"`
}
