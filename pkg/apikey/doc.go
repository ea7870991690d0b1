// Package apikey manages scoped, tag-restricted API keys for machine
// clients (CNC controllers, CAM plugins, mobile apps).
//
// A key is minted once: Generate returns the plain key a single time and
// only its bcrypt hash is stored. Keys carry an explicit scope set (a key
// without scopes can do nothing), an optional tag restriction set, and an
// optional expiry. Validation walks the active keys comparing hashes and
// returns nothing for unknown, revoked or expired keys; expiry and
// revocation are evaluated at resolution time, never cached.
//
// Revocation is a soft delete: the key stays in the store for the audit
// trail but can no longer be validated.
package apikey
