package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Session binds a browser to a backend bearer token. Reference data caches
// live exactly as long as their session.
type Session struct {
	ID           string    `json:"id"`
	User         User      `json:"user"`
	BackendToken string    `json:"backend_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewSession creates a session for user valid for ttl
func NewSession(user User, backendToken string, now time.Time, ttl time.Duration) (*Session, error) {
	if backendToken == "" {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Backend token cannot be empty")
	}
	if ttl <= 0 {
		return nil, shared.NewDomainError("INVALID_TTL", "Session TTL must be positive")
	}
	return &Session{
		ID:           uuid.NewString(),
		User:         user,
		BackendToken: backendToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}, nil
}

// IsExpired reports whether the session has expired at now
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// TTL returns the remaining lifetime at now, never negative
func (s *Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = shared.NewDomainError("SESSION_NOT_FOUND", "Session not found or expired")

// SessionStore persists sessions
type SessionStore interface {
	// Save stores the session until its expiry
	Save(ctx context.Context, session *Session) error
	// Get loads a session, returning ErrSessionNotFound when missing
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes a session; deleting a missing session is not an error
	Delete(ctx context.Context, id string) error
}
