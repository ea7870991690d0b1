package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/toolcrib/toolcrib/pkg/audit"
	"github.com/toolcrib/toolcrib/pkg/authz"
	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
	"github.com/toolcrib/toolcrib/pkg/versioning"
)

// CreateItem is one resource to create.
type CreateItem struct {
	Attrs map[string]any `json:"attrs"`
	Tags  []string       `json:"tags,omitempty"`
}

// UpdateItem is one patch against an existing resource. Version is the
// version the caller last read. Attrs entries are merged into the stored
// attrs; a non-nil Tags replaces the tag set.
type UpdateItem struct {
	ID      string         `json:"id"`
	Version int64          `json:"version"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
}

// ItemError reports one failed item. Index is the item's position in the
// input batch regardless of how many items before it failed.
type ItemError struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of one batch call.
type Result struct {
	SuccessCount int                  `json:"success_count"`
	ErrorCount   int                  `json:"error_count"`
	Results      []*resource.Resource `json:"results"`
	Errors       []ItemError          `json:"errors"`
}

// Coordinator runs batched mutations against a transactional store.
type Coordinator struct {
	store   resource.TxStore
	gate    *authz.Gate
	changes audit.ChangeRecorder
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger for commit failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoordinator creates a Coordinator. All three collaborators are
// required.
func NewCoordinator(store resource.TxStore, gate *authz.Gate, changes audit.ChangeRecorder, opts ...Option) *Coordinator {
	if store == nil {
		panic("bulk: store cannot be nil")
	}
	if gate == nil {
		panic("bulk: gate cannot be nil")
	}
	if changes == nil {
		panic("bulk: change recorder cannot be nil")
	}
	c := &Coordinator{
		store:   store,
		gate:    gate,
		changes: changes,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stagedChange is reported to the audit recorder only after the commit
// succeeds.
type stagedChange struct {
	operation  string
	resourceID string
	before     map[string]any
	after      map[string]any
}

// CreateMany creates a batch of resources of one kind, owned by the
// calling principal.
func (c *Coordinator) CreateMany(ctx context.Context, p *principal.Principal, kind resource.Kind, items []CreateItem) (*Result, error) {
	if err := c.checkCall(p, kind); err != nil {
		return nil, err
	}

	tx, err := c.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) // no-op once committed

	res := &Result{}
	var staged []stagedChange
	now := c.now()

	for i, item := range items {
		if err := resource.ValidateAttrs(kind, item.Attrs); err != nil {
			res.addError(i, "", err)
			continue
		}
		if err := c.gate.Authorize(ctx, p, kind, nil, authz.ActionWrite, item.Tags); err != nil {
			res.addError(i, "", err)
			continue
		}

		r := resource.New(kind, p.ID, item.Attrs, item.Tags, now)
		if err := tx.Insert(ctx, r); err != nil {
			res.addError(i, r.ID, err)
			continue
		}

		res.addResult(r)
		staged = append(staged, stagedChange{
			operation:  "create",
			resourceID: r.ID,
			after:      snapshot(r),
		})
	}

	return c.finish(ctx, tx, p, kind, res, staged)
}

// UpdateMany applies a batch of optimistic patches to resources of one
// kind.
func (c *Coordinator) UpdateMany(ctx context.Context, p *principal.Principal, kind resource.Kind, items []UpdateItem) (*Result, error) {
	if err := c.checkCall(p, kind); err != nil {
		return nil, err
	}

	tx, err := c.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) // no-op once committed

	res := &Result{}
	var staged []stagedChange
	now := c.now()

	for i, item := range items {
		if item.ID == "" {
			res.addError(i, "", fmt.Errorf("%w: id is required", resource.ErrValidation))
			continue
		}

		r, err := tx.Get(ctx, kind, item.ID)
		if err != nil {
			res.addError(i, item.ID, err)
			continue
		}
		if err := c.gate.Authorize(ctx, p, kind, r, authz.ActionWrite, item.Tags); err != nil {
			res.addError(i, item.ID, err)
			continue
		}

		before := snapshot(r)
		err = versioning.Apply(r, item.Version, now, func(r *resource.Resource) error {
			if len(item.Attrs) > 0 {
				if r.Attrs == nil {
					r.Attrs = make(map[string]any, len(item.Attrs))
				}
				maps.Copy(r.Attrs, item.Attrs)
			}
			if item.Tags != nil {
				r.Tags = slices.Clone(item.Tags)
			}
			if err := resource.ValidateAttrs(kind, r.Attrs); err != nil {
				return err
			}
			r.UpdatedBy = p.ID
			return nil
		})
		if err != nil {
			res.addError(i, item.ID, err)
			continue
		}
		if err := tx.Update(ctx, r); err != nil {
			res.addError(i, item.ID, err)
			continue
		}

		res.addResult(r)
		staged = append(staged, stagedChange{
			operation:  "update",
			resourceID: r.ID,
			before:     before,
			after:      snapshot(r),
		})
	}

	return c.finish(ctx, tx, p, kind, res, staged)
}

// DeleteMany hard-deletes a batch of resources of one kind.
func (c *Coordinator) DeleteMany(ctx context.Context, p *principal.Principal, kind resource.Kind, ids []string) (*Result, error) {
	if err := c.checkCall(p, kind); err != nil {
		return nil, err
	}

	tx, err := c.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) // no-op once committed

	res := &Result{}
	var staged []stagedChange

	for i, id := range ids {
		if id == "" {
			res.addError(i, "", fmt.Errorf("%w: id is required", resource.ErrValidation))
			continue
		}

		r, err := tx.Get(ctx, kind, id)
		if err != nil {
			res.addError(i, id, err)
			continue
		}
		if err := c.gate.Authorize(ctx, p, kind, r, authz.ActionDelete, nil); err != nil {
			res.addError(i, id, err)
			continue
		}
		if err := tx.Delete(ctx, kind, id); err != nil {
			res.addError(i, id, err)
			continue
		}

		res.addResult(r)
		staged = append(staged, stagedChange{
			operation:  "delete",
			resourceID: id,
			before:     snapshot(r),
		})
	}

	return c.finish(ctx, tx, p, kind, res, staged)
}

func (c *Coordinator) checkCall(p *principal.Principal, kind resource.Kind) error {
	if p == nil || p.ID == "" {
		return ErrNoPrincipal
	}
	if !kind.Valid() {
		return resource.ErrInvalidKind
	}
	return nil
}

// finish applies the commit policy and, on success, reports the staged
// changes.
func (c *Coordinator) finish(ctx context.Context, tx resource.Tx, p *principal.Principal, kind resource.Kind, res *Result, staged []stagedChange) (*Result, error) {
	if res.SuccessCount == 0 {
		if err := tx.Rollback(ctx); err != nil {
			c.logger.ErrorContext(ctx, "bulk: rollback failed", "error", err, "kind", kind.String())
		}
		return res, nil
	}

	if err := tx.Commit(ctx); err != nil {
		c.logger.ErrorContext(ctx, "bulk: commit failed",
			"error", err,
			"kind", kind.String(),
			"staged", len(staged),
		)
		return nil, err
	}

	for _, sc := range staged {
		c.changes.RecordChange(ctx, audit.ChangeRecord{
			PrincipalID:  p.ID,
			Operation:    sc.operation,
			ResourceType: kind.String(),
			ResourceID:   sc.resourceID,
			Before:       sc.before,
			After:        sc.after,
		})
	}
	return res, nil
}

func (r *Result) addResult(res *resource.Resource) {
	r.SuccessCount++
	r.Results = append(r.Results, res)
}

func (r *Result) addError(index int, id string, err error) {
	msg := err.Error()
	// Ownership failures read as plain not-found so existence never leaks.
	if errors.Is(err, resource.ErrNotFound) {
		msg = "not found"
	}
	r.ErrorCount++
	r.Errors = append(r.Errors, ItemError{Index: index, ID: id, Message: msg})
}

// snapshot builds the audit value map for one resource state. Values are
// copied so later mutations cannot bleed into recorded history.
func snapshot(r *resource.Resource) map[string]any {
	return map[string]any{
		"id":         r.ID,
		"owner_id":   r.OwnerID,
		"tags":       slices.Clone(r.Tags),
		"version":    r.Version,
		"attrs":      maps.Clone(r.Attrs),
		"updated_by": r.UpdatedBy,
		"updated_at": r.UpdatedAt,
	}
}
