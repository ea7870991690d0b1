package changefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/toolcrib/toolcrib/pkg/audit"
	"github.com/toolcrib/toolcrib/pkg/authz"
	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
)

const (
	// DefaultLimit applies when the caller passes limit <= 0.
	DefaultLimit = 100
	// MaxLimit caps any requested page size.
	MaxLimit = 1000
)

// Page is one feed query result. MaxVersion is the highest version
// currently visible to the principal and is the client's next checkpoint.
type Page struct {
	Kind       resource.Kind        `json:"-"`
	Resources  []*resource.Resource `json:"resources"`
	Count      int                  `json:"count"`
	MaxVersion int64                `json:"max_version"`
}

// Engine runs change feed queries against a resource store.
type Engine struct {
	store     resource.Store
	decisions audit.DecisionRecorder
}

// NewEngine creates an Engine reporting reads to the given recorder.
func NewEngine(store resource.Store, decisions audit.DecisionRecorder) *Engine {
	if store == nil {
		panic("changefeed: store cannot be nil")
	}
	if decisions == nil {
		panic("changefeed: decision recorder cannot be nil")
	}
	return &Engine{store: store, decisions: decisions}
}

// SinceVersion returns resources of the kind with version strictly greater
// than sinceVersion, version ascending. A checkpoint of 0 bootstraps a
// full sync.
func (e *Engine) SinceVersion(ctx context.Context, p *principal.Principal, kind resource.Kind, sinceVersion int64, limit int) (*Page, error) {
	if err := checkQuery(p, kind); err != nil {
		return nil, err
	}
	if sinceVersion < 0 {
		return nil, fmt.Errorf("%w: since_version must be >= 0", ErrInvalidCheckpoint)
	}

	e.emit(ctx, p, kind, fmt.Sprintf("changes since version %d", sinceVersion))

	owner := ownerFilter(p)
	resources, err := e.store.ChangedSinceVersion(ctx, kind, sinceVersion, owner, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return e.page(ctx, kind, owner, resources)
}

// SinceTimestamp returns resources of the kind with updated_at strictly
// after since, updated_at ascending.
func (e *Engine) SinceTimestamp(ctx context.Context, p *principal.Principal, kind resource.Kind, since time.Time, limit int) (*Page, error) {
	if err := checkQuery(p, kind); err != nil {
		return nil, err
	}

	e.emit(ctx, p, kind, "changes since "+since.UTC().Format(time.RFC3339Nano))

	owner := ownerFilter(p)
	resources, err := e.store.ChangedSinceTimestamp(ctx, kind, since, owner, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return e.page(ctx, kind, owner, resources)
}

// MaxVersion returns the highest version visible to the principal, or 0
// when it sees no resources of the kind.
func (e *Engine) MaxVersion(ctx context.Context, p *principal.Principal, kind resource.Kind) (int64, error) {
	if err := checkQuery(p, kind); err != nil {
		return 0, err
	}

	e.emit(ctx, p, kind, "max version")
	return e.store.MaxVersion(ctx, kind, ownerFilter(p))
}

func (e *Engine) page(ctx context.Context, kind resource.Kind, owner string, resources []*resource.Resource) (*Page, error) {
	maxVersion, err := e.store.MaxVersion(ctx, kind, owner)
	if err != nil {
		return nil, err
	}
	return &Page{
		Kind:       kind,
		Resources:  resources,
		Count:      len(resources),
		MaxVersion: maxVersion,
	}, nil
}

func (e *Engine) emit(ctx context.Context, p *principal.Principal, kind resource.Kind, reason string) {
	e.decisions.RecordDecision(ctx, audit.Decision{
		PrincipalID:  p.ID,
		Action:       string(authz.ActionRead),
		ResourceType: kind.String(),
		ResourceID:   "changes",
		Granted:      true,
		Reason:       reason,
	})
}

func checkQuery(p *principal.Principal, kind resource.Kind) error {
	if p == nil || p.ID == "" {
		return ErrNoPrincipal
	}
	if !kind.Valid() {
		return resource.ErrInvalidKind
	}
	return nil
}

func ownerFilter(p *principal.Principal) string {
	if authz.ShouldFilterByOwner(p) {
		return p.ID
	}
	return ""
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
