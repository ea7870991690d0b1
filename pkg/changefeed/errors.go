package changefeed

import "errors"

var (
	// ErrNoPrincipal is returned when a feed query arrives without a
	// resolved principal.
	ErrNoPrincipal = errors.New("changefeed: principal is required")

	// ErrInvalidCheckpoint is returned for negative version checkpoints.
	ErrInvalidCheckpoint = errors.New("changefeed: invalid checkpoint")
)
