package authz

import "errors"

var (
	// ErrPermissionDenied is returned when a principal lacks the scope or
	// tag access an operation requires.
	ErrPermissionDenied = errors.New("authz: permission denied")

	// ErrInvalidAction is returned for actions outside read/write/delete.
	ErrInvalidAction = errors.New("authz: invalid action")
)
