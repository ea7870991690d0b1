package session

import (
	"context"
	"time"
)

// Store is the injected session table. Implementations must be safe for
// concurrent use; the token is the sole key.
type Store interface {
	// Create stores a new session under its token.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by token. Returns ErrNotFound for unknown
	// tokens and ErrExpired for sessions past their expiry.
	Get(ctx context.Context, token string) (*Session, error)

	// Touch updates the session's last-activity time.
	Touch(ctx context.Context, token string, at time.Time) error

	// Delete removes a session (logout). Deleting an absent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions.
	DeleteExpired(ctx context.Context) error
}
