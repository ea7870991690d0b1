package scopes

import (
	"fmt"
	"strings"
)

// Scope is the structured form of a scope string, parsed once at the
// boundary so downstream logic never re-splits raw strings.
//
// A bare scope like "read" has an empty Entity. A wildcard scope like
// "write:*" has Wildcard set and an empty Entity.
type Scope struct {
	Action   string
	Entity   string
	Wildcard bool
}

// Parse converts a raw scope string into its structured form.
//
// Accepted shapes: "<action>", "<action>:<entity>", "<action>:*".
// The action must be non-empty; "a:" and ":b" are rejected.
func Parse(raw string) (Scope, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Scope{}, fmt.Errorf("%w: empty scope", ErrInvalidScope)
	}

	action, entity, found := strings.Cut(raw, ScopeDelimiter)
	if action == "" || strings.Contains(entity, ScopeDelimiter) {
		return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, raw)
	}
	if !found {
		return Scope{Action: action}, nil
	}
	if entity == "" {
		return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, raw)
	}
	if entity == Wildcard {
		return Scope{Action: action, Wildcard: true}, nil
	}
	return Scope{Action: action, Entity: entity}, nil
}

// ParseList parses a slice of raw scope strings, failing on the first
// invalid entry. Returns nil for empty input.
func ParseList(raw []string) ([]Scope, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Scope, 0, len(raw))
	for _, r := range raw {
		s, err := Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// String renders the scope back to its canonical string form.
func (s Scope) String() string {
	switch {
	case s.Wildcard:
		return s.Action + ScopeDelimiter + Wildcard
	case s.Entity != "":
		return s.Action + ScopeDelimiter + s.Entity
	default:
		return s.Action
	}
}

// Grants reports whether this granted scope satisfies the required scope.
// The semantics mirror HasScope for a single grant.
func (s Scope) Grants(required Scope) bool {
	if s.Action == "admin" && s.Wildcard {
		return true
	}
	if s.Wildcard {
		return s.Action == required.Action && required.Entity != ""
	}
	return s == required
}
