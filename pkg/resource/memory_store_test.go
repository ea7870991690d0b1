package resource_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolcrib/toolcrib/pkg/resource"
)

func insertOne(t *testing.T, store *resource.MemoryStore, r *resource.Resource) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, r))
	require.NoError(t, tx.Commit(ctx))
}

func TestMemoryStoreGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	r := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "cutting_tool"}, []string{"mill-3"}, now)
	insertOne(t, store, r)

	got, err := store.Get(ctx, resource.KindToolItem, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "alice", got.OwnerID)
	assert.Equal(t, int64(1), got.Version)

	// Clones: mutating the returned value must not leak into the store.
	got.Attrs["type"] = "holder"
	got.Tags[0] = "mutated"
	again, err := store.Get(ctx, resource.KindToolItem, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "cutting_tool", again.Attrs["type"])
	assert.Equal(t, []string{"mill-3"}, again.Tags)

	_, err = store.Get(ctx, resource.KindToolItem, "missing")
	assert.ErrorIs(t, err, resource.ErrNotFound)

	// Same ID under a different kind is not found.
	_, err = store.Get(ctx, resource.KindToolSet, r.ID)
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestMemoryStoreList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	base := time.Now()

	for i, owner := range []string{"alice", "alice", "bob"} {
		r := resource.New(resource.KindToolItem, owner,
			map[string]any{"type": "cutting_tool", "manufacturer": "acme"},
			nil, base.Add(time.Duration(i)*time.Second))
		if i == 1 {
			r.Attrs["manufacturer"] = "other"
			r.Tags = []string{"lathe-1"}
		}
		insertOne(t, store, r)
	}

	all, total, err := store.List(ctx, resource.KindToolItem, resource.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.True(t, !all[0].CreatedAt.After(all[1].CreatedAt))

	mine, total, err := store.List(ctx, resource.KindToolItem, resource.Filter{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, mine, 2)

	acme, _, err := store.List(ctx, resource.KindToolItem, resource.Filter{Attrs: map[string]any{"manufacturer": "acme"}})
	require.NoError(t, err)
	assert.Len(t, acme, 2)

	tagged, _, err := store.List(ctx, resource.KindToolItem, resource.Filter{Tag: "lathe-1"})
	require.NoError(t, err)
	assert.Len(t, tagged, 1)

	paged, total, err := store.List(ctx, resource.KindToolItem, resource.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, paged, 1)

	past, total, err := store.List(ctx, resource.KindToolItem, resource.Filter{Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, past)
}

func TestMemoryStoreTxAtomicity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	r1 := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "a"}, nil, now)
	r2 := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "b"}, nil, now)

	// Staged writes are invisible before commit.
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, r1))
	require.NoError(t, tx.Insert(ctx, r2))

	_, err = store.Get(ctx, resource.KindToolItem, r1.ID)
	assert.ErrorIs(t, err, resource.ErrNotFound)

	// The transaction sees its own staged writes.
	seen, err := tx.Get(ctx, resource.KindToolItem, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, seen.ID)

	require.NoError(t, tx.Commit(ctx))

	_, err = store.Get(ctx, resource.KindToolItem, r1.ID)
	require.NoError(t, err)
	_, err = store.Get(ctx, resource.KindToolItem, r2.ID)
	require.NoError(t, err)

	// A closed transaction rejects further use.
	assert.ErrorIs(t, tx.Insert(ctx, r1), resource.ErrTxClosed)
	assert.ErrorIs(t, tx.Commit(ctx), resource.ErrTxClosed)
}

func TestMemoryStoreTxRollback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	r := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "a"}, nil, now)
	insertOne(t, store, r)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	upd := r.Clone()
	upd.Version = 2
	require.NoError(t, tx.Update(ctx, upd))
	require.NoError(t, tx.Delete(ctx, resource.KindToolItem, r.ID))
	require.NoError(t, tx.Rollback(ctx))

	got, err := store.Get(ctx, resource.KindToolItem, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
}

func TestMemoryStoreNoIDReuse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	r := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "a"}, nil, now)
	insertOne(t, store, r)

	// Duplicate insert of a live ID.
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Insert(ctx, r.Clone()), resource.ErrDuplicateID)
	require.NoError(t, tx.Rollback(ctx))

	// Delete, then try to resurrect the ID.
	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Delete(ctx, resource.KindToolItem, r.ID))
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Insert(ctx, r.Clone()), resource.ErrDuplicateID)
	require.NoError(t, tx.Rollback(ctx))
}

func TestMemoryStoreChangedSinceVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	versions := []int64{1, 3, 5}
	owners := []string{"alice", "alice", "bob"}
	for i := range versions {
		r := resource.New(resource.KindToolPreset, owners[i],
			map[string]any{"machine_id": "m1", "tool_number": i + 1}, nil, now)
		r.Version = versions[i]
		insertOne(t, store, r)
	}

	all, err := store.ChangedSinceVersion(ctx, resource.KindToolPreset, 0, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{all[0].Version, all[1].Version, all[2].Version})

	since2, err := store.ChangedSinceVersion(ctx, resource.KindToolPreset, 2, "", 0)
	require.NoError(t, err)
	assert.Len(t, since2, 2)

	alice, err := store.ChangedSinceVersion(ctx, resource.KindToolPreset, 0, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	capped, err := store.ChangedSinceVersion(ctx, resource.KindToolPreset, 0, "", 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, int64(1), capped[0].Version)
}

func TestMemoryStoreChangedSinceTimestamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		r := resource.New(resource.KindToolItem, "alice",
			map[string]any{"type": "cutting_tool"}, nil, base.Add(time.Duration(i)*time.Minute))
		insertOne(t, store, r)
	}

	// Strictly-greater-than: the resource updated exactly at the checkpoint
	// is excluded.
	out, err := store.ChangedSinceTimestamp(ctx, resource.KindToolItem, base, "", 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].UpdatedAt.Before(out[1].UpdatedAt))

	none, err := store.ChangedSinceTimestamp(ctx, resource.KindToolItem, base.Add(time.Hour), "", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreMaxVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := resource.NewMemoryStore()
	now := time.Now()

	max, err := store.MaxVersion(ctx, resource.KindToolItem, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), max)

	r := resource.New(resource.KindToolItem, "alice", map[string]any{"type": "a"}, nil, now)
	r.Version = 7
	insertOne(t, store, r)

	max, err = store.MaxVersion(ctx, resource.KindToolItem, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), max)

	max, err = store.MaxVersion(ctx, resource.KindToolItem, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), max)
}
