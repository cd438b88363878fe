package member

import "errors"

// ErrHasActiveLoans blocks deletion before any DELETE is issued; the
// backend presumably enforces the same rule.
var ErrHasActiveLoans = errors.New("No se puede eliminar un socio con préstamos activos")
