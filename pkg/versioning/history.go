package versioning

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/toolcrib/toolcrib/pkg/resource"
)

// Snapshot is the immutable state of a resource at one version.
type Snapshot struct {
	ResourceID string
	Kind       resource.Kind
	Version    int64
	Attrs      map[string]any
	Tags       []string
	ChangedBy  string
	Summary    string
	CreatedAt  time.Time
}

// HistoryStore persists snapshots. Snapshots are append-only.
type HistoryStore interface {
	Append(ctx context.Context, s Snapshot) error
	// List returns all snapshots for a resource, newest version first.
	List(ctx context.Context, resourceID string) ([]Snapshot, error)
	// Get returns the snapshot at an exact version, or ErrSnapshotNotFound.
	Get(ctx context.Context, resourceID string, version int64) (Snapshot, error)
}

// History records, restores and compares resource versions.
type History struct {
	store HistoryStore
}

// NewHistory creates a History over the given store.
func NewHistory(store HistoryStore) *History {
	if store == nil {
		panic("versioning: history store cannot be nil")
	}
	return &History{store: store}
}

// Record snapshots the resource's current state. Call it before applying
// a mutation so the pre-change version stays recoverable.
func (h *History) Record(ctx context.Context, r *resource.Resource, changedBy, summary string, now time.Time) error {
	return h.store.Append(ctx, Snapshot{
		ResourceID: r.ID,
		Kind:       r.Kind,
		Version:    r.Version,
		Attrs:      maps.Clone(r.Attrs),
		Tags:       slices.Clone(r.Tags),
		ChangedBy:  changedBy,
		Summary:    summary,
		CreatedAt:  now,
	})
}

// Restore rewinds the resource's attrs and tags to the target version's
// snapshot. The restore itself is a new version: the current state is
// snapshotted first, the rollback goes through Apply, and the restored
// state is snapshotted after.
func (h *History) Restore(ctx context.Context, r *resource.Resource, targetVersion int64, changedBy string, now time.Time) error {
	snap, err := h.store.Get(ctx, r.ID, targetVersion)
	if err != nil {
		return err
	}

	if err := h.Record(ctx, r, changedBy, fmt.Sprintf("before restore to version %d", targetVersion), now); err != nil {
		return err
	}

	if err := Apply(r, r.Version, now, func(r *resource.Resource) error {
		r.Attrs = maps.Clone(snap.Attrs)
		r.Tags = slices.Clone(snap.Tags)
		r.UpdatedBy = changedBy
		return nil
	}); err != nil {
		return err
	}

	return h.Record(ctx, r, changedBy, fmt.Sprintf("restored from version %d", targetVersion), now)
}

// FieldChange holds one differing field's value at each compared version.
type FieldChange struct {
	A any
	B any
}

// Diff is the field-level difference between two snapshots of a resource.
type Diff struct {
	ResourceID string
	VersionA   int64
	VersionB   int64
	Fields     map[string]FieldChange
}

// Compare diffs the attrs and tags of two recorded versions.
func (h *History) Compare(ctx context.Context, resourceID string, versionA, versionB int64) (*Diff, error) {
	snapA, err := h.store.Get(ctx, resourceID, versionA)
	if err != nil {
		return nil, err
	}
	snapB, err := h.store.Get(ctx, resourceID, versionB)
	if err != nil {
		return nil, err
	}

	diff := &Diff{
		ResourceID: resourceID,
		VersionA:   versionA,
		VersionB:   versionB,
		Fields:     make(map[string]FieldChange),
	}

	keys := make(map[string]struct{}, len(snapA.Attrs)+len(snapB.Attrs))
	for k := range snapA.Attrs {
		keys[k] = struct{}{}
	}
	for k := range snapB.Attrs {
		keys[k] = struct{}{}
	}
	for k := range keys {
		a, b := snapA.Attrs[k], snapB.Attrs[k]
		if !reflect.DeepEqual(a, b) {
			diff.Fields[k] = FieldChange{A: a, B: b}
		}
	}

	tagsA := slices.Clone(snapA.Tags)
	tagsB := slices.Clone(snapB.Tags)
	slices.Sort(tagsA)
	slices.Sort(tagsB)
	if !slices.Equal(tagsA, tagsB) {
		diff.Fields["tags"] = FieldChange{A: snapA.Tags, B: snapB.Tags}
	}

	return diff, nil
}

// MemoryHistory is an in-process HistoryStore for tests.
type MemoryHistory struct {
	mu        sync.RWMutex
	snapshots map[string][]Snapshot
}

// NewMemoryHistory creates an empty in-memory history store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{snapshots: make(map[string][]Snapshot)}
}

func (m *MemoryHistory) Append(ctx context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[s.ResourceID] = append(m.snapshots[s.ResourceID], s)
	return nil
}

func (m *MemoryHistory) List(ctx context.Context, resourceID string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.snapshots[resourceID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Version > out[j].Version
	})
	return out, nil
}

func (m *MemoryHistory) Get(ctx context.Context, resourceID string, version int64) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Newest matching snapshot wins when a version was recorded twice.
	list := m.snapshots[resourceID]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Version == version {
			return list[i], nil
		}
	}
	return Snapshot{}, ErrSnapshotNotFound
}
