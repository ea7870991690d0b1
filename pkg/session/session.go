package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Session maps an opaque token to a user identity for a bounded lifetime.
type Session struct {
	Token          string    `json:"token"`
	UserID         string    `json:"user_id"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// New creates a session for userID with a fresh random token.
func New(userID string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:          NewToken(),
		UserID:         userID,
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// NewToken returns a cryptographically random URL-safe token.
func NewToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("session: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Valid reports whether the session can be stored and resolved.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.UserID != ""
}
