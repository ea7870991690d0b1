package apikey

import (
	"context"
	"strings"
	"time"
)

// Validate resolves a plain key against the store's active keys.
//
// Returns ErrInvalidKey for anything that should not authenticate: unknown
// keys, revoked keys, and expired keys. Expiry is checked here, at
// resolution time, so a key that expired a moment ago fails immediately
// even if a previous request succeeded with it.
func Validate(ctx context.Context, store Store, plain string) (*Key, error) {
	if !strings.HasPrefix(plain, PlainKeyPrefix) {
		return nil, ErrInvalidKey
	}

	active, err := store.Active(ctx)
	if err != nil {
		return nil, err
	}

	for _, k := range active {
		if !k.matches(plain) {
			continue
		}
		if k.IsExpired(time.Now()) {
			return nil, ErrInvalidKey
		}
		return k, nil
	}
	return nil, ErrInvalidKey
}
