package resource

import "errors"

var (
	// ErrInvalidKind is returned when an entity-type string does not name
	// one of the known resource kinds.
	ErrInvalidKind = errors.New("resource: invalid entity kind")

	// ErrNotFound is returned when a resource does not exist. Ownership
	// failures are deliberately reported with this same error so callers
	// cannot distinguish "absent" from "not yours".
	ErrNotFound = errors.New("resource: not found")

	// ErrValidation is returned when a resource is missing a required
	// attribute for its kind.
	ErrValidation = errors.New("resource: validation failed")

	// ErrDuplicateID is returned when inserting a resource whose ID already
	// exists. IDs are never reused, including after deletion.
	ErrDuplicateID = errors.New("resource: duplicate id")

	// ErrTxClosed is returned when a transaction is used after Commit or
	// Rollback.
	ErrTxClosed = errors.New("resource: transaction closed")
)
