package loan

import (
	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/member"
)

// DateLayout is the wire format for every loan date.
const DateLayout = "2006-01-02"

// Loan mirrors the backend's prestamo resource. OverdueDays is computed by
// the backend (positive difference between today and the end date); the
// console only displays it and derives fine suggestions from it.
type Loan struct {
	ID          int64          `json:"idPrestamo"`
	Book        *book.Book     `json:"libro,omitempty"`
	Member      *member.Member `json:"socio,omitempty"`
	StartDate   string         `json:"fechaInicio"`
	EndDate     string         `json:"fechaFin"`
	Active      bool           `json:"activo"`
	OverdueDays int            `json:"diasRetraso"`
}

// ConditionGrade is the closed set of book conditions a return can record.
type ConditionGrade string

const (
	GradeGood        ConditionGrade = "BUEN_ESTADO"
	GradeMinorDamage ConditionGrade = "DANIO_LEVE"
	GradeMajorDamage ConditionGrade = "DANIO_GRAVE"
	GradeLost        ConditionGrade = "PERDIDA"
)

// GradeInfo carries the operator-facing label and the fine-policy hint for
// a grade. The actual fine amount for a damaged or lost book is a backend
// decision; the console only signals intent.
type GradeInfo struct {
	Grade      ConditionGrade `json:"estadoDevolucion"`
	Label      string         `json:"etiqueta"`
	FinePolicy string         `json:"politicaMulta"`
}

// Grades lists every grade in form order.
var Grades = []GradeInfo{
	{GradeGood, "En buen estado", "No aplica multa"},
	{GradeMinorDamage, "Daño leve (subrayado, rayones)", "Aplica multa por daño leve"},
	{GradeMajorDamage, "Daño grave (páginas rotas, portada dañada)", "Aplica multa por daño grave"},
	{GradeLost, "Pérdida total", "Aplica multa por pérdida"},
}

func (g ConditionGrade) Valid() bool {
	for _, info := range Grades {
		if info.Grade == g {
			return true
		}
	}
	return false
}
