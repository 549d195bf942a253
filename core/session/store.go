package session

import "context"

// Store defines the durable persistence interface for the session snapshot.
// Implementations must handle concurrent access safely.
//
// The store holds at most one session: the backoffice is a single-operator
// client of the marketplace backend, not a multi-session server.
type Store interface {
	// Load returns the persisted snapshot, or ErrNotFound when nothing has
	// been persisted yet.
	Load(ctx context.Context) (Session, error)
	// Save overwrites the persisted snapshot.
	Save(ctx context.Context, sess Session) error
	// Clear removes the persisted snapshot. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
