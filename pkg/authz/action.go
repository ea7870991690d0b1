package authz

import (
	"github.com/toolcrib/toolcrib/pkg/resource"
	"github.com/toolcrib/toolcrib/pkg/scopes"
)

// Action is the verb a principal performs on a resource kind.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Valid reports whether the action is one of the three known verbs.
func (a Action) Valid() bool {
	switch a {
	case ActionRead, ActionWrite, ActionDelete:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// Scope returns the scope string the action requires for a kind,
// e.g. "write:tool_items".
func (a Action) Scope(kind resource.Kind) string {
	return string(a) + scopes.ScopeDelimiter + kind.String()
}

// allScope is the explicit "this action on all resources" grant,
// e.g. "write:all". Held together with the per-kind scope it bypasses
// tag restrictions.
func (a Action) allScope() string {
	return string(a) + scopes.ScopeDelimiter + "all"
}
