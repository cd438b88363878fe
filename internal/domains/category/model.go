package category

// Category mirrors the backend's categoria resource. The console never owns
// this data; it is a transient copy refreshed after every mutation.
type Category struct {
	ID          int64  `json:"idCategoria"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}
