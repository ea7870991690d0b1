// Package scopes implements the permission-scope model used by the
// toolcrib authorization engine.
//
// A scope is a plain string grant of the form "<action>:<entity>", e.g.
// "write:tool_items", or a bare action such as "read". Scopes attach to
// API keys; session users are never scope-restricted.
//
// # Matching rules
//
// HasScope evaluates a required scope against a granted set:
//
//   - Exact string membership grants access.
//   - "admin:*" grants every required scope unconditionally.
//   - "<action>:*" grants any required scope of the form "<action>:<entity>".
//   - The bare scope "read" grants only the literal required scope "read";
//     it never substitutes for entity-qualified checks.
//
// Matching is case-sensitive and free of side effects.
//
// # Usage
//
//	granted := scopes.ParseScopes("read write:tool_items")
//	if err := scopes.RequireScope(granted, "write:tool_items"); err != nil {
//	    return err // wraps scopes.ErrPermissionDenied
//	}
//
// The structured Scope value type is parsed once at the boundary so that
// downstream logic never re-splits raw strings. A Catalog (optionally
// loaded from YAML) bounds the universe of scopes grantable to API keys.
package scopes
