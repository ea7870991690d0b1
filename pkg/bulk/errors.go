package bulk

import "errors"

var (
	// ErrNoPrincipal is returned when a batch call arrives without a
	// resolved principal. This fails the whole call, not single items.
	ErrNoPrincipal = errors.New("bulk: principal is required")
)
