package session

import "errors"

var (
	// ErrNotFound is returned when no session exists for a token.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when the session exists but is past its expiry.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidSession is returned when storing a session without a token
	// or user.
	ErrInvalidSession = errors.New("session: invalid session")
)
