package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"biblioteca-console/internal/domains/member"
)

// RoleMember is the only role the public registration form assigns.
const RoleMember = "SOCIO"

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("el email es obligatorio"),
			is.Email.Error("email inválido"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("la contraseña es obligatoria"),
		),
	)
}

// RegisterReq registers a member-role identity. Role is forced to SOCIO
// regardless of what the form sends.
type RegisterReq struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"rol"`
}

// Sanitize normalizes input before validation.
func (r *RegisterReq) Sanitize() {
	r.DNI = member.SanitizeDNI(r.DNI)
	r.Role = RoleMember
}

func (r RegisterReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("el nombre es obligatorio"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("el apellido es obligatorio"),
			validation.Length(1, 100),
		),
		validation.Field(&r.DNI,
			validation.Required.Error("el DNI es obligatorio"),
			validation.Length(7, 15).Error("El DNI debe tener entre 7 y 15 dígitos"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("el email es obligatorio"),
			is.Email.Error("email inválido"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("la contraseña es obligatoria"),
			validation.Length(8, 128).Error("la contraseña debe tener entre 8 y 128 caracteres"),
		),
	)
}

// Identity is what the backend returns at login: the bearer token plus the
// user record the console mirrors into its session store.
type Identity struct {
	Token  string `json:"token"`
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Email  string `json:"email"`
	Role   string `json:"rol"`
	Member *int64 `json:"idSocio,omitempty"`
}
