// Package changefeed answers incremental synchronization queries.
//
// Clients hold a per-kind checkpoint, either the last version or the last
// updated_at they synced, and ask for everything strictly after it. The
// server keeps no per-client state; the returned MaxVersion is the next
// checkpoint and a checkpoint of zero means "give me everything".
//
// Visibility follows the ownership rule: non-admin principals see only
// resources they own. Results come back version (or updated_at) ascending
// so clients can process them sequentially, and every query is reported
// to the audit recorder as a read decision.
package changefeed
