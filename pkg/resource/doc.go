// Package resource defines the shared shape of every mutable entity managed
// by toolcrib (cutting tools, assemblies, instances, presets, sets, usage
// records) together with the storage contracts the mutation and sync
// engines are written against.
//
// The six entity kinds form a closed enumeration; unknown kind strings are
// rejected at the boundary with ErrInvalidKind so downstream logic never
// dispatches on raw strings.
//
// Every resource carries an immutable ID and owner, a mutable tag set, a
// version counter that starts at 1 and grows by exactly 1 per successful
// mutation, and an updated_at timestamp that never moves backwards. The
// domain payload (geometry, offsets, usage data) travels as an opaque
// attribute map; this package validates only the per-kind required
// attributes.
//
// Store is the read surface; TxStore adds the transactional write surface
// the bulk coordinator commits through. MemoryStore implements both and is
// the reference implementation for tests; pkg/pg provides the Postgres one.
package resource
