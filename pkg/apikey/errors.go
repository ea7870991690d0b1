package apikey

import "errors"

var (
	// ErrNotFound is returned when no key exists for an ID.
	ErrNotFound = errors.New("apikey: not found")

	// ErrInvalidKey is returned when a plain key fails validation for any
	// reason: unknown, revoked, expired, or its user is inactive. The
	// reasons are deliberately indistinguishable.
	ErrInvalidKey = errors.New("apikey: invalid key")

	// ErrMissingScopes is returned when minting a key without any scopes.
	ErrMissingScopes = errors.New("apikey: key requires at least one scope")
)
