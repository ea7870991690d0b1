// Package audit is the collaborator the authorization gate and the bulk
// mutation coordinator report to.
//
// Two record shapes flow in: a Decision for every gate evaluation (granted
// or denied), and a ChangeRecord for every successful mutation, carrying
// explicit before/after value snapshots built by the coordinator rather
// than reflected off storage types.
//
// Recording is fire-and-forget from the core's perspective: a storage
// failure is logged and swallowed, it can never fail the primary
// operation. Storage is an injected interface; MemoryStorage serves tests
// and MongoStorage appends to a MongoDB collection.
package audit
