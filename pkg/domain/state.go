package domain

import "time"

// Session captures the persisted state of a visualizer.
// Steps are not stored: they are recomputed from Active and Algorithm on load.
type Session struct {
	ID        string    `json:"id"`
	Original  Graph     `json:"original"`
	Active    Graph     `json:"active"`
	Algorithm Algorithm `json:"algorithm"`
	Cursor    int       `json:"cursor"`
	Pruned    bool      `json:"pruned"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted session when it went through an encrypting store.
	// The other fields of a sealed envelope are empty.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession creates a session whose active graph is a copy of g.
func NewSession(id string, g Graph, alg Algorithm) *Session {
	return &Session{
		ID:        id,
		Original:  g.Clone(),
		Active:    g.Clone(),
		Algorithm: alg,
	}
}
