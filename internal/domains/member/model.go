package member

// Member mirrors the backend's socio resource. Number is assigned once at
// creation and never edited; ActiveLoans is backend-derived and read-only
// here.
type Member struct {
	ID          int64  `json:"idSocio"`
	Number      int64  `json:"nroSocio"`
	Name        string `json:"nombre"`
	DNI         string `json:"dni"`
	ActiveLoans int    `json:"prestamosActivos"`
}
