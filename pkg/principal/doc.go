// Package principal resolves credentials into the authenticated caller the
// authorization engine evaluates.
//
// A Principal is either a session user or an API key. Session users carry
// no scope restriction (ownership alone gates them) and no tag concept.
// API keys carry an explicit scope set (empty means the key can do nothing)
// and an optional tag restriction set (empty means unrestricted).
//
// The Resolver composes the injected session table, API key store and user
// directory. It never parses raw credentials beyond the session token /
// bearer key distinction, and it re-reads expiry, revocation and account
// state on every resolution, so a disabled user or revoked key loses
// access immediately.
package principal
