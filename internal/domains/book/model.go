package book

import "biblioteca-console/internal/domains/category"

// State is the book lifecycle state. Transitions between DISPONIBLE and
// PRESTADO are backend side effects of loan creation and return; the
// console only mirrors them.
type State string

const (
	StateAvailable   State = "DISPONIBLE"
	StateLoaned      State = "PRESTADO"
	StateMaintenance State = "MANTENIMIENTO"
)

// ValidStates lists every state the estado filter accepts.
var ValidStates = []State{StateAvailable, StateLoaned, StateMaintenance}

func (s State) Valid() bool {
	for _, state := range ValidStates {
		if s == state {
			return true
		}
	}
	return false
}

// Book mirrors the backend's libro resource.
type Book struct {
	ID       int64              `json:"idLibro"`
	Title    string             `json:"titulo"`
	Author   string             `json:"autor"`
	ISBN     string             `json:"isbn"`
	Category *category.Category `json:"categoria,omitempty"`
	State    State              `json:"estado"`
}
