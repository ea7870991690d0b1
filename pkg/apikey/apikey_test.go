package apikey_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolcrib/toolcrib/pkg/apikey"
	"github.com/toolcrib/toolcrib/pkg/scopes"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	key, plain, err := apikey.Generate("user-1", "shop floor tablet",
		[]string{"read", "write:tool_items", "read"}, []string{"mill-3"}, nil, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plain, apikey.PlainKeyPrefix))
	assert.NotEmpty(t, key.ID)
	assert.Equal(t, "user-1", key.UserID)
	assert.True(t, key.Active)
	assert.Equal(t, int64(1), key.Version)
	// Scopes are normalized (deduplicated, sorted).
	assert.Equal(t, []string{"read", "write:tool_items"}, key.Scopes)
	assert.Equal(t, []string{"mill-3"}, key.Tags)
	assert.NotContains(t, string(key.Hash), plain)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, _, err := apikey.Generate("user-1", "no scopes", nil, nil, nil, bcrypt.MinCost)
	assert.ErrorIs(t, err, apikey.ErrMissingScopes)

	_, _, err = apikey.Generate("user-1", "bad scope", []string{"write:"}, nil, nil, bcrypt.MinCost)
	assert.ErrorIs(t, err, scopes.ErrInvalidScope)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := apikey.NewMemoryStore()

	key, plain, err := apikey.Generate("user-1", "tablet", []string{"read"}, nil, nil, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, key))

	got, err := apikey.Validate(ctx, store, plain)
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.Equal(t, []string{"read"}, got.Scopes)

	_, err = apikey.Validate(ctx, store, apikey.PlainKeyPrefix+"bogus")
	assert.ErrorIs(t, err, apikey.ErrInvalidKey)

	_, err = apikey.Validate(ctx, store, "wrong-prefix")
	assert.ErrorIs(t, err, apikey.ErrInvalidKey)
}

func TestValidateRevoked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := apikey.NewMemoryStore()

	key, plain, err := apikey.Generate("user-1", "tablet", []string{"read"}, nil, nil, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, key))
	require.NoError(t, store.Revoke(ctx, key.ID))

	// Revocation takes effect immediately; nothing is cached.
	_, err = apikey.Validate(ctx, store, plain)
	assert.ErrorIs(t, err, apikey.ErrInvalidKey)

	// The record survives for the audit trail, with a version bump.
	revoked, err := store.GetByID(ctx, key.ID)
	require.NoError(t, err)
	assert.False(t, revoked.Active)
	assert.Equal(t, int64(2), revoked.Version)
}

func TestValidateExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := apikey.NewMemoryStore()

	past := time.Now().Add(-time.Minute)
	key, plain, err := apikey.Generate("user-1", "tablet", []string{"read"}, nil, &past, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, key))

	_, err = apikey.Validate(ctx, store, plain)
	assert.ErrorIs(t, err, apikey.ErrInvalidKey)
}

func TestMemoryStoreListByUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := apikey.NewMemoryStore()

	for _, user := range []string{"alice", "alice", "bob"} {
		key, _, err := apikey.Generate(user, "k", []string{"read"}, nil, nil, bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, key))
	}

	keys, err := store.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	keys, err = store.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := apikey.NewMemoryStore()

	key, _, err := apikey.Generate("alice", "k", []string{"read"}, nil, nil, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, key))

	require.NoError(t, store.Delete(ctx, key.ID))
	_, err = store.GetByID(ctx, key.ID)
	assert.ErrorIs(t, err, apikey.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, key.ID), apikey.ErrNotFound)
	assert.ErrorIs(t, store.Revoke(ctx, key.ID), apikey.ErrNotFound)
}
