package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolcrib/toolcrib/pkg/scopes"
)

// PlainKeyPrefix marks toolcrib API keys so they are recognizable in
// configuration files and secret scanners.
const PlainKeyPrefix = "tcrib_"

// Key is a stored API key. The plain key is never stored; only Hash.
type Key struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Hash      []byte     `json:"-"`
	Scopes    []string   `json:"scopes"`
	Tags      []string   `json:"tags,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Active    bool       `json:"active"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsExpired reports whether the key is past its expiry at the given time.
// Keys without an expiry never expire.
func (k *Key) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// Clone returns a copy safe to hand to callers.
func (k *Key) Clone() *Key {
	cp := *k
	cp.Hash = slices.Clone(k.Hash)
	cp.Scopes = slices.Clone(k.Scopes)
	cp.Tags = slices.Clone(k.Tags)
	return &cp
}

// Generate mints a key for userID and returns the stored record together
// with the plain key, which is shown exactly once. Scope strings must be
// well-formed and non-empty; tags restrict the key to matching resources.
func Generate(userID, name string, scopeList, tags []string, expiresAt *time.Time, bcryptCost int) (*Key, string, error) {
	if len(scopeList) == 0 {
		return nil, "", ErrMissingScopes
	}
	if _, err := scopes.ParseList(scopeList); err != nil {
		return nil, "", err
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", fmt.Errorf("apikey: generate: %w", err)
	}
	plain := PlainKeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("apikey: hash: %w", err)
	}

	now := time.Now()
	key := &Key{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Hash:      hash,
		Scopes:    scopes.NormalizeScopes(scopeList),
		Tags:      slices.Clone(tags),
		ExpiresAt: expiresAt,
		Active:    true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return key, plain, nil
}

// matches reports whether the plain key corresponds to this key's hash.
func (k *Key) matches(plain string) bool {
	return bcrypt.CompareHashAndPassword(k.Hash, []byte(plain)) == nil
}
