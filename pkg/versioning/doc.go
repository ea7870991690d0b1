// Package versioning is the only writer of a resource's version field.
//
// Apply implements optimistic concurrency control: the caller supplies the
// version it last read, a mismatch fails with a ConflictError and leaves
// the resource untouched, a match runs the mutation and bumps version and
// updated_at together. There is no merge and no retry; a losing writer
// re-reads and tries again.
//
// History keeps per-resource snapshots so a resource can be restored to an
// earlier version or two versions compared field by field. A restore is a
// normal mutation: it goes through Apply and produces a new version.
package versioning
