package loan

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/member"
)

// CreateLoanReq is the loan form payload. StartDate may be empty (the
// coordinator defaults it to today); book, member and end date are
// mandatory.
type CreateLoanReq struct {
	BookID    int64  `json:"idLibro"`
	MemberID  int64  `json:"idSocio"`
	StartDate string `json:"fechaInicio"`
	EndDate   string `json:"fechaFin"`
}

func (r CreateLoanReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("el libro es obligatorio"),
			validation.Min(int64(1)),
		),
		validation.Field(&r.MemberID,
			validation.Required.Error("el socio es obligatorio"),
			validation.Min(int64(1)),
		),
		validation.Field(&r.StartDate,
			validation.Date(DateLayout).Error("fecha de inicio inválida"),
		),
		validation.Field(&r.EndDate,
			validation.Required.Error("la fecha de devolución es obligatoria"),
			validation.Date(DateLayout).Error("fecha de devolución inválida"),
		),
	)
}

// ReturnLoanReq is the graded return form: the condition grade is required,
// the observations are free text.
type ReturnLoanReq struct {
	Grade        ConditionGrade `json:"estadoDevolucion"`
	Observations string         `json:"observaciones"`
}

func (r ReturnLoanReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Grade,
			validation.Required.Error("El estado de devolución es obligatorio"),
			validation.By(func(value interface{}) error {
				grade, _ := value.(ConditionGrade)
				if grade == "" || grade.Valid() {
					return nil
				}
				return validation.NewError("loan_grade", "estado de devolución inválido")
			}),
		),
		validation.Field(&r.Observations,
			validation.Length(0, 2000),
		),
	)
}

// RenewLoanReq extends an active loan to a new end date.
type RenewLoanReq struct {
	NewEndDate string `json:"nuevaFechaFin"`
}

func (r RenewLoanReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewEndDate,
			validation.Required.Error("la nueva fecha de devolución es obligatoria"),
			validation.Date(DateLayout).Error("fecha inválida"),
		),
	)
}

type ListResp struct {
	Loans []Loan `json:"prestamos"`
	Total int    `json:"total"`
}

func NewListResp(loans []Loan) *ListResp {
	if loans == nil {
		loans = []Loan{}
	}
	return &ListResp{Loans: loans, Total: len(loans)}
}

// FormDataResp backs the loan form: available books and the member picker.
// Either list degrades to empty when its background load fails.
type FormDataResp struct {
	AvailableBooks []book.Book     `json:"librosDisponibles"`
	Members        []member.Member `json:"socios"`
}

func NewFormDataResp(books []book.Book, members []member.Member) *FormDataResp {
	if books == nil {
		books = []book.Book{}
	}
	if members == nil {
		members = []member.Member{}
	}
	return &FormDataResp{AvailableBooks: books, Members: members}
}
