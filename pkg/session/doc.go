// Package session holds the short-lived session table consulted when a
// session token is resolved into a principal.
//
// The table is an injected, swappable key-value store behind the Store
// interface; nothing here assumes a single-process deployment. The token is
// the independent key, so concurrent logins and logouts for different
// principals never touch each other's entries.
//
// MemoryStore is the in-process implementation; RedisStore persists
// sessions in Redis with a TTL derived from the session's expiry. Expiry is
// evaluated on every Get, never cached.
package session
