package member

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

// SanitizeDNI strips everything that is not a digit, the way the form's
// input handler does before any validation runs.
func SanitizeDNI(dni string) string {
	return nonDigits.ReplaceAllString(dni, "")
}

// SaveMemberReq is the member form payload. DNI arrives possibly dirty and
// must be sanitized before Validate.
type SaveMemberReq struct {
	Name string `json:"nombre"`
	DNI  string `json:"dni"`
}

// Sanitize normalizes the form input in place.
func (r *SaveMemberReq) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
	r.DNI = SanitizeDNI(r.DNI)
}

func (r SaveMemberReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("el nombre es obligatorio"),
			validation.Length(1, 255),
		),
		validation.Field(&r.DNI,
			validation.Required.Error("el DNI es obligatorio"),
			validation.Length(7, 15).Error("El DNI debe tener entre 7 y 15 dígitos"),
		),
	)
}

// CreateMemberReq is what actually goes to the backend: the form fields plus
// the number the workflow coordinator allocated.
type CreateMemberReq struct {
	Name   string `json:"nombre"`
	DNI    string `json:"dni"`
	Number int64  `json:"nroSocio"`
}

// UpdateMemberReq carries the existing number unchanged; the form never
// edits it.
type UpdateMemberReq = CreateMemberReq

type ListResp struct {
	Members []Member `json:"socios"`
	Total   int      `json:"total"`
}

func NewListResp(members []Member) *ListResp {
	if members == nil {
		members = []Member{}
	}
	return &ListResp{Members: members, Total: len(members)}
}
