// Package authz decides whether a principal may act on a resource.
//
// Three pure evaluators feed one gate. Ownership: admins see everything,
// everyone else only what they own, and a failed ownership check surfaces
// as not-found so resource existence never leaks across owners. Scopes:
// API keys must carry "{action}:{kind}" (or a wildcard covering it);
// session users are gated by ownership alone. Tags: a key restricted by
// tags reaches only resources sharing at least one tag, with scope-level
// bypasses for admin and explicit "{action}:all" grants.
//
// Gate.Authorize composes the three and reports every evaluation, granted
// or denied, to the audit recorder. There is no caching: each call
// re-evaluates from the current scope, tag and ownership state.
package authz
