package resource

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Resource is the generalization shared by all six entity kinds.
//
// ID and OwnerID are assigned at creation and immutable. Version starts at
// 1 and increases by exactly 1 on every successful mutation; the optimistic
// version controller is its only writer. Attrs carries the kind-specific
// payload opaquely.
type Resource struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"-"`
	OwnerID   string         `json:"owner_id"`
	Tags      []string       `json:"tags,omitempty"`
	Version   int64          `json:"version"`
	Attrs     map[string]any `json:"attrs,omitempty"`
	CreatedBy string         `json:"created_by"`
	UpdatedBy string         `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New mints a resource at version 1 owned and authored by ownerID.
// The caller validates attrs via ValidateAttrs before persisting.
func New(kind Kind, ownerID string, attrs map[string]any, tags []string, now time.Time) *Resource {
	r := &Resource{
		ID:        uuid.New().String(),
		Kind:      kind,
		OwnerID:   ownerID,
		Version:   1,
		CreatedBy: ownerID,
		UpdatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(attrs) > 0 {
		r.Attrs = maps.Clone(attrs)
	}
	if len(tags) > 0 {
		r.Tags = slices.Clone(tags)
	}
	return r
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate canonical state outside the transaction path.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Tags = slices.Clone(r.Tags)
	cp.Attrs = maps.Clone(r.Attrs)
	return &cp
}

// HasTag reports whether the resource carries the given tag.
func (r *Resource) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// ValidateAttrs checks the per-kind required attributes. A required
// attribute must be present and non-nil; empty strings count as missing.
func ValidateAttrs(kind Kind, attrs map[string]any) error {
	for _, name := range requiredAttrs[kind] {
		v, ok := attrs[name]
		if !ok || v == nil {
			return fmt.Errorf("%w: field %q is required", ErrValidation, name)
		}
		if s, isStr := v.(string); isStr && s == "" {
			return fmt.Errorf("%w: field %q is required", ErrValidation, name)
		}
	}
	return nil
}
