package session

import "context"

// Store is the persistence interface for session records. Implementations
// must be safe for concurrent use; a single save or delete is the unit of
// atomicity.
type Store interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
