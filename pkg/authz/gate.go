package authz

import (
	"context"
	"fmt"

	"github.com/toolcrib/toolcrib/pkg/audit"
	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
	"github.com/toolcrib/toolcrib/pkg/scopes"
)

// Gate composes the scope, ownership and tag evaluators into a single
// authorization decision and reports every evaluation to the audit
// recorder.
type Gate struct {
	decisions audit.DecisionRecorder
}

// NewGate creates a gate reporting to the given recorder.
func NewGate(decisions audit.DecisionRecorder) *Gate {
	if decisions == nil {
		panic("authz: decision recorder cannot be nil")
	}
	return &Gate{decisions: decisions}
}

// Authorize decides whether p may perform action on a resource of the
// given kind. res is nil for creates; newTags carries tag values being
// written on create or update. On an ownership failure the error is
// resource.ErrNotFound so callers never reveal that the resource exists;
// scope and tag failures return ErrPermissionDenied.
func (g *Gate) Authorize(ctx context.Context, p *principal.Principal, kind resource.Kind, res *resource.Resource, action Action, newTags []string) error {
	if p == nil {
		return fmt.Errorf("%w: no principal", ErrPermissionDenied)
	}
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, string(action))
	}

	required := action.Scope(kind)
	if p.IsAPIKey() && !g.hasScope(p, action, required) {
		g.emit(ctx, p, kind, res, action, false, "missing scope "+required)
		return fmt.Errorf("%w: missing scope %s", ErrPermissionDenied, required)
	}

	if res != nil {
		if !Owns(p, res) {
			g.emit(ctx, p, kind, res, action, false, "principal does not own resource")
			return resource.ErrNotFound
		}
		if !TagScopeAllowed(p, res.Tags, kind, action) {
			g.emit(ctx, p, kind, res, action, false, "api key tags do not match resource tags")
			return fmt.Errorf("%w: api key tags do not match resource tags", ErrPermissionDenied)
		}
	}

	if len(newTags) > 0 && !tagBypass(p, kind, action) && !TagWriteAllowed(p.Tags, newTags) {
		g.emit(ctx, p, kind, res, action, false, "written tags not covered by api key tags")
		return fmt.Errorf("%w: written tags not covered by api key tags", ErrPermissionDenied)
	}

	g.emit(ctx, p, kind, res, action, true, "granted")
	return nil
}

// hasScope applies the scope evaluator plus the gate-level rule that the
// bare "read" scope satisfies any read action.
func (g *Gate) hasScope(p *principal.Principal, action Action, required string) bool {
	if scopes.HasScope(p.Scopes, required) {
		return true
	}
	return action == ActionRead && scopes.HasScope(p.Scopes, string(ActionRead))
}

func (g *Gate) emit(ctx context.Context, p *principal.Principal, kind resource.Kind, res *resource.Resource, action Action, granted bool, reason string) {
	d := audit.Decision{
		PrincipalID:  p.ID,
		Action:       string(action),
		ResourceType: kind.String(),
		Granted:      granted,
		Reason:       reason,
	}
	if res != nil {
		d.ResourceID = res.ID
	}
	g.decisions.RecordDecision(ctx, d)
}
