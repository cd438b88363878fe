package fine

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"biblioteca-console/internal/domains/loan"
)

// CreateFineReq is the fine form payload. MemberID drives the loan picker
// and the validation; only the loan link travels to the backend.
type CreateFineReq struct {
	MemberID    int64           `json:"idSocio"`
	LoanID      int64           `json:"idPrestamo"`
	Amount      decimal.Decimal `json:"monto"`
	Reason      string          `json:"motivo"`
	Description string          `json:"descripcion"`
}

// Validate runs the form's checks in their fixed order and stops at the
// first failure: member, amount and reason present, a loan selected, amount
// positive, then the description rule for "Otro".
func (r CreateFineReq) Validate() error {
	if r.MemberID <= 0 {
		return fieldError("idSocio", "Los campos Socio, Monto y Motivo son obligatorios")
	}
	if r.Amount.IsZero() || r.Reason == "" {
		return fieldError("monto", "Los campos Socio, Monto y Motivo son obligatorios")
	}
	if r.LoanID <= 0 {
		return fieldError("idPrestamo", "Debe seleccionar un préstamo para asociar la multa")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return fieldError("monto", "El monto debe ser mayor a 0")
	}
	if !validReason(r.Reason) {
		return fieldError("motivo", "motivo inválido")
	}
	if r.Reason == ReasonOther && len(r.Description) == 0 {
		return fieldError("descripcion", "la descripción es obligatoria para el motivo Otro")
	}
	return nil
}

func fieldError(field, message string) validation.Errors {
	return validation.Errors{field: validation.NewError("fine_"+field, message)}
}

func validReason(reason string) bool {
	for _, known := range Reasons {
		if reason == known {
			return true
		}
	}
	return false
}

type ListResp struct {
	Fines []Fine `json:"multas"`
	Total int    `json:"total"`
}

func NewListResp(fines []Fine) *ListResp {
	if fines == nil {
		fines = []Fine{}
	}
	return &ListResp{Fines: fines, Total: len(fines)}
}

// Suggestion is one derived-fine proposal for an overdue loan of the chosen
// member: amount = overdue days x the per-day rate, reason preset to late
// return. The operator may accept, switch loans or override the amount.
type Suggestion struct {
	Loan            loan.Loan       `json:"prestamo"`
	SuggestedAmount decimal.Decimal `json:"montoSugerido"`
	Reason          string          `json:"motivo"`
}
