// Package bulk coordinates batched create, update and delete mutations.
//
// Every item in a batch is evaluated independently, in input order:
// required-field validation, then the authorization gate, then (for
// updates) the optimistic version check. One item's failure never aborts
// the batch; the error keeps the item's original index. Items that pass
// are staged in a single storage transaction.
//
// Commit policy: at least one success commits all staged items together;
// zero successes rolls the transaction back and leaves the store
// untouched. After a commit each mutation is reported to the audit
// recorder with explicit before/after snapshots.
package bulk
