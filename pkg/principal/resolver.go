package principal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/toolcrib/toolcrib/pkg/apikey"
	"github.com/toolcrib/toolcrib/pkg/session"
)

// UserDirectory looks up accounts. It is an external collaborator; the
// resolver only needs reads.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*User, error)
}

// Resolver turns credentials into Principals.
type Resolver struct {
	sessions session.Store
	keys     apikey.Store
	users    UserDirectory
}

// NewResolver wires the three collaborators. All are required.
func NewResolver(sessions session.Store, keys apikey.Store, users UserDirectory) *Resolver {
	if sessions == nil || keys == nil || users == nil {
		panic("principal: resolver requires session store, key store and user directory")
	}
	return &Resolver{sessions: sessions, keys: keys, users: users}
}

// ResolveSession resolves a session token into a user principal.
//
// The session must exist and be unexpired, and the account must still be
// active. Last activity is touched as a side effect.
func (r *Resolver) ResolveSession(ctx context.Context, token string) (Principal, error) {
	s, err := r.sessions.Get(ctx, token)
	if err != nil {
		return Principal{}, errors.Join(ErrUnauthenticated, err)
	}

	user, err := r.activeUser(ctx, s.UserID)
	if err != nil {
		return Principal{}, err
	}

	_ = r.sessions.Touch(ctx, token, time.Now())

	return Principal{
		ID:    user.ID,
		Kind:  KindUser,
		Admin: user.Admin,
	}, nil
}

// ResolveAPIKey resolves a plain bearer key into an API-key principal.
//
// The key must validate (active, unexpired) and its owning account must be
// active. Admin status comes from the account; the scope and tag sets come
// from the key.
func (r *Resolver) ResolveAPIKey(ctx context.Context, plainKey string) (Principal, error) {
	key, err := apikey.Validate(ctx, r.keys, plainKey)
	if err != nil {
		return Principal{}, errors.Join(ErrUnauthenticated, err)
	}

	user, err := r.activeUser(ctx, key.UserID)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		ID:     user.ID,
		Kind:   KindAPIKey,
		Admin:  user.Admin,
		Scopes: key.Scopes,
		Tags:   key.Tags,
		KeyID:  key.ID,
	}, nil
}

func (r *Resolver) activeUser(ctx context.Context, id string) (*User, error) {
	user, err := r.users.GetUser(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrUnauthenticated, err)
	}
	if !user.Active {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// MemoryDirectory is an in-process UserDirectory for tests and small
// deployments.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryDirectory creates a directory seeded with the given users.
func NewMemoryDirectory(users ...*User) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[string]*User, len(users))}
	for _, u := range users {
		cp := *u
		d.users[u.ID] = &cp
	}
	return d
}

// Put adds or replaces a user.
func (d *MemoryDirectory) Put(u *User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := *u
	d.users[u.ID] = &cp
}

func (d *MemoryDirectory) GetUser(ctx context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if u, ok := d.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrUserNotFound
}
