package versioning

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is matched by every ConflictError via errors.Is.
	ErrConflict = errors.New("versioning: version conflict")

	// ErrSnapshotNotFound is returned when no snapshot exists for the
	// requested resource and version.
	ErrSnapshotNotFound = errors.New("versioning: snapshot not found")
)

// ConflictError reports an optimistic concurrency failure. Expected is the
// version currently stored; Got is the stale version the caller supplied.
type ConflictError struct {
	Expected int64
	Got      int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("versioning: version conflict: expected %d, got %d", e.Expected, e.Got)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
