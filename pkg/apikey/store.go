package apikey

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store persists API keys. Implementations must be safe for concurrent use.
type Store interface {
	// Create stores a freshly generated key.
	Create(ctx context.Context, k *Key) error

	// GetByID returns a key or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Key, error)

	// ListByUser returns all of a user's keys, newest first, active or not.
	ListByUser(ctx context.Context, userID string) ([]*Key, error)

	// Active returns every active key. Validation walks this set
	// comparing hashes; there is no plaintext lookup by design.
	Active(ctx context.Context) ([]*Key, error)

	// Revoke deactivates a key, bumping its version and updated_at. The
	// record is kept for the audit trail.
	Revoke(ctx context.Context, id string) error

	// Delete removes a key permanently.
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process Store for tests and small deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]*Key
}

// NewMemoryStore creates an empty in-memory key store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]*Key)}
}

func (m *MemoryStore) Create(ctx context.Context, k *Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[k.ID] = k.Clone()
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k, ok := m.keys[id]; ok {
		return k.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListByUser(ctx context.Context, userID string) ([]*Key, error) {
	m.mu.RLock()
	out := make([]*Key, 0)
	for _, k := range m.keys {
		if k.UserID == userID {
			out = append(out, k.Clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Active(ctx context.Context) ([]*Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Key, 0, len(m.keys))
	for _, k := range m.keys {
		if k.Active {
			out = append(out, k.Clone())
		}
	}
	return out, nil
}

func (m *MemoryStore) Revoke(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, ok := m.keys[id]
	if !ok {
		return ErrNotFound
	}
	k.Active = false
	k.Version++
	k.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[id]; !ok {
		return ErrNotFound
	}
	delete(m.keys, id)
	return nil
}
