package resource

import (
	"context"
	"time"
)

// Filter narrows read queries. The zero value matches everything.
type Filter struct {
	// OwnerID restricts results to one owner; empty means all owners.
	// Callers derive this from the principal via the ownership rule.
	OwnerID string

	// Attrs requires equality on each listed attribute.
	Attrs map[string]any

	// Tag requires the resource to carry the given tag.
	Tag string

	// Limit and Offset page the result; Limit <= 0 means no cap.
	Limit  int
	Offset int
}

// Store is the read surface of a resource backend. Implementations must be
// safe for concurrent use and must return clones, never canonical state.
type Store interface {
	// Get returns the resource or ErrNotFound.
	Get(ctx context.Context, kind Kind, id string) (*Resource, error)

	// List returns resources matching the filter ordered by creation time,
	// then ID, plus the total match count before paging.
	List(ctx context.Context, kind Kind, f Filter) ([]*Resource, int, error)

	// ChangedSinceVersion returns resources with version strictly greater
	// than sinceVersion, ordered by version ascending. Empty ownerID means
	// no owner filter. limit <= 0 means no cap.
	ChangedSinceVersion(ctx context.Context, kind Kind, sinceVersion int64, ownerID string, limit int) ([]*Resource, error)

	// ChangedSinceTimestamp returns resources with updated_at strictly
	// after since, ordered by updated_at ascending.
	ChangedSinceTimestamp(ctx context.Context, kind Kind, since time.Time, ownerID string, limit int) ([]*Resource, error)

	// MaxVersion returns the highest version among matching resources,
	// or 0 when none match.
	MaxVersion(ctx context.Context, kind Kind, ownerID string) (int64, error)
}

// TxStore adds the transactional write surface. All mutations go through a
// Tx so the bulk coordinator can commit every staged success as one unit or
// leave the store untouched.
type TxStore interface {
	Store

	// Begin opens a transaction. The transaction must be finished with
	// Commit or Rollback; uncommitted staged writes are never visible to
	// other callers.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single mutation transaction. Reads through the transaction
// observe its own staged writes.
type Tx interface {
	// Get returns the resource as seen by this transaction.
	Get(ctx context.Context, kind Kind, id string) (*Resource, error)

	// Insert stages a new resource. Fails with ErrDuplicateID if the ID
	// exists or ever existed (IDs are not reused after deletion).
	Insert(ctx context.Context, r *Resource) error

	// Update stages a full replacement of an existing resource.
	Update(ctx context.Context, r *Resource) error

	// Delete stages a hard delete.
	Delete(ctx context.Context, kind Kind, id string) error

	// Commit applies every staged write atomically.
	Commit(ctx context.Context) error

	// Rollback discards staged writes. Safe to call after Commit.
	Rollback(ctx context.Context) error
}
