package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolcrib/toolcrib/pkg/audit"
	"github.com/toolcrib/toolcrib/pkg/authz"
	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
)

func newGate(t *testing.T) (*authz.Gate, *audit.MemoryStorage) {
	t.Helper()
	storage := audit.NewMemoryStorage()
	return authz.NewGate(audit.NewRecorder(storage)), storage
}

func lastDecision(t *testing.T, storage *audit.MemoryStorage) audit.Event {
	t.Helper()
	events, err := storage.Query(context.Background(), audit.Criteria{Type: audit.EventDecision, Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	return events[0]
}

func TestGate_SessionUser(t *testing.T) {
	t.Parallel()

	gate, storage := newGate(t)
	ctx := context.Background()

	owner := &principal.Principal{ID: "u1", Kind: principal.KindUser}
	other := &principal.Principal{ID: "u2", Kind: principal.KindUser}
	admin := &principal.Principal{ID: "u3", Kind: principal.KindUser, Admin: true}
	res := &resource.Resource{ID: "r1", Kind: resource.KindToolItem, OwnerID: "u1", Tags: []string{"cnc"}}

	require.NoError(t, gate.Authorize(ctx, owner, resource.KindToolItem, res, authz.ActionWrite, nil))
	d := lastDecision(t, storage)
	assert.True(t, d.Granted)
	assert.Equal(t, "u1", d.PrincipalID)
	assert.Equal(t, "r1", d.ResourceID)

	// A foreign resource looks like it does not exist.
	err := gate.Authorize(ctx, other, resource.KindToolItem, res, authz.ActionWrite, nil)
	require.ErrorIs(t, err, resource.ErrNotFound)
	assert.False(t, lastDecision(t, storage).Granted)

	// Admins own everything.
	require.NoError(t, gate.Authorize(ctx, admin, resource.KindToolItem, res, authz.ActionDelete, nil))
}

func TestGate_APIKeyScopes(t *testing.T) {
	t.Parallel()

	gate, storage := newGate(t)
	ctx := context.Background()

	res := &resource.Resource{ID: "r1", Kind: resource.KindToolItem, OwnerID: "u1"}

	key := func(scopeList ...string) *principal.Principal {
		return &principal.Principal{ID: "u1", Kind: principal.KindAPIKey, Scopes: scopeList, KeyID: "k1"}
	}

	// Missing scope denies before anything else.
	err := gate.Authorize(ctx, key("read:tool_items"), resource.KindToolItem, res, authz.ActionWrite, nil)
	require.ErrorIs(t, err, authz.ErrPermissionDenied)
	d := lastDecision(t, storage)
	assert.False(t, d.Granted)
	assert.Contains(t, d.Reason, "missing scope write:tool_items")

	require.NoError(t, gate.Authorize(ctx, key("write:tool_items"), resource.KindToolItem, res, authz.ActionWrite, nil))
	require.NoError(t, gate.Authorize(ctx, key("write:*"), resource.KindToolItem, res, authz.ActionWrite, nil))
	require.NoError(t, gate.Authorize(ctx, key("admin:*"), resource.KindToolItem, res, authz.ActionDelete, nil))

	// The bare read scope satisfies read actions only.
	require.NoError(t, gate.Authorize(ctx, key("read"), resource.KindToolItem, res, authz.ActionRead, nil))
	err = gate.Authorize(ctx, key("read"), resource.KindToolItem, res, authz.ActionWrite, nil)
	require.ErrorIs(t, err, authz.ErrPermissionDenied)
}

func TestGate_APIKeyTags(t *testing.T) {
	t.Parallel()

	gate, storage := newGate(t)
	ctx := context.Background()

	res := &resource.Resource{ID: "r1", Kind: resource.KindToolItem, OwnerID: "u1", Tags: []string{"lathe"}}
	key := &principal.Principal{
		ID: "u1", Kind: principal.KindAPIKey,
		Scopes: []string{"read:tool_items", "write:tool_items"},
		Tags:   []string{"cnc"},
		KeyID:  "k1",
	}

	err := gate.Authorize(ctx, key, resource.KindToolItem, res, authz.ActionRead, nil)
	require.ErrorIs(t, err, authz.ErrPermissionDenied)
	assert.Contains(t, lastDecision(t, storage).Reason, "tags")

	// A shared tag opens the resource.
	res.Tags = []string{"cnc", "lathe"}
	require.NoError(t, gate.Authorize(ctx, key, resource.KindToolItem, res, authz.ActionRead, nil))
}

func TestGate_WrittenTags(t *testing.T) {
	t.Parallel()

	gate, _ := newGate(t)
	ctx := context.Background()

	key := &principal.Principal{
		ID: "u1", Kind: principal.KindAPIKey,
		Scopes: []string{"write:tool_items"},
		Tags:   []string{"cnc"},
		KeyID:  "k1",
	}

	// Create: res is nil, only the written tags are checked.
	require.NoError(t, gate.Authorize(ctx, key, resource.KindToolItem, nil, authz.ActionWrite, []string{"cnc"}))

	err := gate.Authorize(ctx, key, resource.KindToolItem, nil, authz.ActionWrite, []string{"cnc", "lathe"})
	require.ErrorIs(t, err, authz.ErrPermissionDenied)

	// Session users write any tags.
	user := &principal.Principal{ID: "u1", Kind: principal.KindUser}
	require.NoError(t, gate.Authorize(ctx, user, resource.KindToolItem, nil, authz.ActionWrite, []string{"anything"}))
}

func TestGate_EveryEvaluationIsRecorded(t *testing.T) {
	t.Parallel()

	gate, storage := newGate(t)
	ctx := context.Background()

	owner := &principal.Principal{ID: "u1", Kind: principal.KindUser}
	other := &principal.Principal{ID: "u2", Kind: principal.KindUser}
	res := &resource.Resource{ID: "r1", Kind: resource.KindToolItem, OwnerID: "u1"}

	_ = gate.Authorize(ctx, owner, resource.KindToolItem, res, authz.ActionRead, nil)
	_ = gate.Authorize(ctx, other, resource.KindToolItem, res, authz.ActionRead, nil)
	_ = gate.Authorize(ctx, owner, resource.KindToolItem, res, authz.ActionDelete, nil)

	assert.Equal(t, 3, storage.Len())
}

func TestGate_InvalidInput(t *testing.T) {
	t.Parallel()

	gate, storage := newGate(t)
	ctx := context.Background()

	err := gate.Authorize(ctx, nil, resource.KindToolItem, nil, authz.ActionRead, nil)
	require.ErrorIs(t, err, authz.ErrPermissionDenied)

	p := &principal.Principal{ID: "u1", Kind: principal.KindUser}
	err = gate.Authorize(ctx, p, resource.KindToolItem, nil, authz.Action("export"), nil)
	require.ErrorIs(t, err, authz.ErrInvalidAction)

	// Structural failures are not audit-worthy evaluations.
	assert.Equal(t, 0, storage.Len())
}

func TestNewGate_PanicsOnNilRecorder(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { authz.NewGate(nil) })
}
