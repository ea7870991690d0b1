package versioning

import (
	"time"

	"github.com/toolcrib/toolcrib/pkg/resource"
)

// Apply mutates r under optimistic version control. If expected does not
// match the stored version the resource is left untouched and a
// ConflictError is returned. Otherwise mutate runs, the version increases
// by exactly one and UpdatedAt is set to now. A mutation error also leaves
// the version unchanged.
func Apply(r *resource.Resource, expected int64, now time.Time, mutate func(*resource.Resource) error) error {
	if r.Version != expected {
		return &ConflictError{Expected: r.Version, Got: expected}
	}
	if mutate != nil {
		if err := mutate(r); err != nil {
			return err
		}
	}
	r.Version++
	r.UpdatedAt = now
	return nil
}
