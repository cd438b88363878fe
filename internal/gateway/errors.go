package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is the fallback banner text when the backend returns a
// failure without a usable message body.
const GenericMessage = "El servidor no pudo procesar la solicitud"

// APIError is any non-2xx answer from the library backend. Status carries
// the remote HTTP status, Message the server-provided text (or the generic
// fallback).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}
