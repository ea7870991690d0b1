package scopes

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

const (
	// ScopeSeparator separates multiple scopes in a string list.
	ScopeSeparator = " "

	// ScopeDelimiter separates the action from the entity ("write:tool_items").
	ScopeDelimiter = ":"

	// Wildcard matches any entity when used after the delimiter ("write:*").
	Wildcard = "*"

	// AdminWildcard grants every scope unconditionally.
	AdminWildcard = "admin" + ScopeDelimiter + Wildcard
)

// ParseScopes converts a space-separated string of scopes into a slice.
//
// Trims spaces and removes empty entries. Returns nil for empty input.
//
// Example:
//
//	scopes.ParseScopes("read write:tool_items")
//	// Returns: []string{"read", "write:tool_items"}
func ParseScopes(scopesStr string) []string {
	scopesStr = strings.TrimSpace(scopesStr)
	if scopesStr == "" {
		return nil
	}

	parts := strings.Split(scopesStr, ScopeSeparator)
	out := make([]string, 0, len(parts))
	for i := range parts {
		if parts[i] = strings.TrimSpace(parts[i]); parts[i] != "" {
			out = append(out, parts[i])
		}
	}
	return out
}

// JoinScopes converts a slice of scopes back to a space-separated string.
func JoinScopes(scopes []string) string {
	if len(scopes) == 0 {
		return ""
	}
	return strings.Join(scopes, ScopeSeparator)
}

// HasScope reports whether the granted set satisfies the required scope.
//
// Exact membership grants. "admin:*" grants everything. "<action>:*" grants
// any "<action>:<entity>" requirement. The bare "read" grant only covers a
// literal "read" requirement, which the exact-match rule already handles.
// Case-sensitive, deterministic, no side effects.
func HasScope(scopes []string, required string) bool {
	if len(scopes) == 0 {
		return false
	}

	if slices.Contains(scopes, required) {
		return true
	}

	if slices.Contains(scopes, AdminWildcard) {
		return true
	}

	if action, _, ok := strings.Cut(required, ScopeDelimiter); ok {
		if slices.Contains(scopes, action+ScopeDelimiter+Wildcard) {
			return true
		}
	}

	return false
}

// RequireScope is HasScope with failure signaling: it returns an error
// wrapping ErrPermissionDenied that names the missing scope.
func RequireScope(scopes []string, required string) error {
	if !HasScope(scopes, required) {
		return fmt.Errorf("%w: required scope %q not granted", ErrPermissionDenied, required)
	}
	return nil
}

// HasAllScopes reports whether every required scope is satisfied.
// An empty required set is trivially satisfied.
func HasAllScopes(scopes, required []string) bool {
	for _, req := range required {
		if !HasScope(scopes, req) {
			return false
		}
	}
	return true
}

// HasAnyScope reports whether at least one required scope is satisfied.
// Returns true for an empty required set.
func HasAnyScope(scopes, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		if HasScope(scopes, req) {
			return true
		}
	}
	return false
}

// NormalizeScopes removes duplicates and sorts alphabetically.
// Returns nil for empty input.
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// EqualScopes reports whether two scope sets contain the same scopes,
// regardless of order and duplicates.
func EqualScopes(a, b []string) bool {
	return slices.Equal(NormalizeScopes(a), NormalizeScopes(b))
}
