package resource

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory TxStore. It is the reference implementation
// for tests and small single-process deployments; pkg/pg provides the
// Postgres-backed equivalent.
type MemoryStore struct {
	mu        sync.RWMutex
	resources map[Kind]map[string]*Resource
	// tombstones remembers deleted IDs so they are never reused.
	tombstones map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resources:  make(map[Kind]map[string]*Resource),
		tombstones: make(map[string]struct{}),
	}
}

func (m *MemoryStore) Get(ctx context.Context, kind Kind, id string) (*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if r, ok := m.resources[kind][id]; ok {
		return r.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(ctx context.Context, kind Kind, f Filter) ([]*Resource, int, error) {
	m.mu.RLock()
	matched := make([]*Resource, 0, len(m.resources[kind]))
	for _, r := range m.resources[kind] {
		if matches(r, f) {
			matched = append(matched, r.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if f.Offset > 0 {
		if f.Offset >= total {
			return nil, total, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (m *MemoryStore) ChangedSinceVersion(ctx context.Context, kind Kind, sinceVersion int64, ownerID string, limit int) ([]*Resource, error) {
	m.mu.RLock()
	out := make([]*Resource, 0)
	for _, r := range m.resources[kind] {
		if r.Version > sinceVersion && (ownerID == "" || r.OwnerID == ownerID) {
			out = append(out, r.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Version != out[j].Version {
			return out[i].Version < out[j].Version
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ChangedSinceTimestamp(ctx context.Context, kind Kind, since time.Time, ownerID string, limit int) ([]*Resource, error) {
	m.mu.RLock()
	out := make([]*Resource, 0)
	for _, r := range m.resources[kind] {
		if r.UpdatedAt.After(since) && (ownerID == "" || r.OwnerID == ownerID) {
			out = append(out, r.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) MaxVersion(ctx context.Context, kind Kind, ownerID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var max int64
	for _, r := range m.resources[kind] {
		if (ownerID == "" || r.OwnerID == ownerID) && r.Version > max {
			max = r.Version
		}
	}
	return max, nil
}

// Begin opens a staged-write transaction. Writes accumulate in the
// transaction and become visible only on Commit, which applies them under
// a single lock.
func (m *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	return &memoryTx{
		store:    m,
		inserted: make(map[string]*Resource),
		updated:  make(map[string]*Resource),
		deleted:  make(map[string]Kind),
	}, nil
}

func matches(r *Resource, f Filter) bool {
	if f.OwnerID != "" && r.OwnerID != f.OwnerID {
		return false
	}
	if f.Tag != "" && !r.HasTag(f.Tag) {
		return false
	}
	for name, want := range f.Attrs {
		if got, ok := r.Attrs[name]; !ok || got != want {
			return false
		}
	}
	return true
}

type memoryTx struct {
	store    *MemoryStore
	ops      []func()
	inserted map[string]*Resource
	updated  map[string]*Resource
	deleted  map[string]Kind
	closed   bool
}

func (t *memoryTx) Get(ctx context.Context, kind Kind, id string) (*Resource, error) {
	if t.closed {
		return nil, ErrTxClosed
	}
	if _, gone := t.deleted[id]; gone {
		return nil, ErrNotFound
	}
	if r, ok := t.updated[id]; ok && r.Kind == kind {
		return r.Clone(), nil
	}
	if r, ok := t.inserted[id]; ok && r.Kind == kind {
		return r.Clone(), nil
	}
	return t.store.Get(ctx, kind, id)
}

func (t *memoryTx) Insert(ctx context.Context, r *Resource) error {
	if t.closed {
		return ErrTxClosed
	}

	t.store.mu.RLock()
	_, exists := t.store.resources[r.Kind][r.ID]
	_, dead := t.store.tombstones[r.ID]
	t.store.mu.RUnlock()

	if _, staged := t.inserted[r.ID]; staged || exists || dead {
		return ErrDuplicateID
	}

	cp := r.Clone()
	t.inserted[r.ID] = cp
	t.ops = append(t.ops, func() {
		kindMap := t.store.resources[cp.Kind]
		if kindMap == nil {
			kindMap = make(map[string]*Resource)
			t.store.resources[cp.Kind] = kindMap
		}
		kindMap[cp.ID] = cp
	})
	return nil
}

func (t *memoryTx) Update(ctx context.Context, r *Resource) error {
	if t.closed {
		return ErrTxClosed
	}
	if _, err := t.Get(ctx, r.Kind, r.ID); err != nil {
		return err
	}

	cp := r.Clone()
	t.updated[cp.ID] = cp
	t.ops = append(t.ops, func() {
		t.store.resources[cp.Kind][cp.ID] = cp
	})
	return nil
}

func (t *memoryTx) Delete(ctx context.Context, kind Kind, id string) error {
	if t.closed {
		return ErrTxClosed
	}
	if _, err := t.Get(ctx, kind, id); err != nil {
		return err
	}

	t.deleted[id] = kind
	t.ops = append(t.ops, func() {
		delete(t.store.resources[kind], id)
		t.store.tombstones[id] = struct{}{}
	})
	return nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, op := range t.ops {
		op()
	}
	t.ops = nil
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	t.closed = true
	t.ops = nil
	return nil
}
