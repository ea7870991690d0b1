package scopes

import "errors"

var (
	// ErrPermissionDenied is returned by RequireScope when the granted set
	// does not satisfy the required scope.
	ErrPermissionDenied = errors.New("scopes: permission denied")

	// ErrInvalidScope is returned when a scope string is syntactically invalid.
	ErrInvalidScope = errors.New("scopes: invalid scope format")

	// ErrScopeNotAllowed is returned when a scope is not present in the catalog.
	ErrScopeNotAllowed = errors.New("scopes: scope not in allowed list")
)
