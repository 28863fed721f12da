package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// SessionStore defines the interface for persisting visualizer sessions.
// Implementations must store copies: mutating a saved or loaded session must not
// affect the stored one.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session with the given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}
