package audit

import "errors"

var (
	// ErrInvalidEvent is returned when an event is missing required fields.
	ErrInvalidEvent = errors.New("audit: invalid event")

	// ErrStorageUnavailable indicates the storage backend cannot be reached.
	ErrStorageUnavailable = errors.New("audit: storage unavailable")
)
