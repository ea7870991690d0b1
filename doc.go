// Package toolcrib is an access-control and incremental-synchronization
// engine for shared manufacturing tool data (tool items, assemblies,
// instances, presets, sets and usage records).
//
// It is a library, not a server: the packages under pkg/ compose into an
// engine the embedding application drives. Identity comes from sessions or
// scoped API keys, every operation passes an authorization gate combining
// scope, ownership and tag checks, mutations run through a bulk
// coordinator with optimistic versioning, and clients synchronize through
// a change feed keyed by version checkpoints.
//
// Basic wiring:
//
//	store := resource.NewMemoryStore() // or pg.NewResourceStore(pool)
//	recorder := audit.NewRecorder(audit.NewMemoryStorage())
//	gate := authz.NewGate(recorder)
//
//	coord := bulk.NewCoordinator(store, gate, recorder)
//	feed := changefeed.NewEngine(store, recorder)
//
//	res, err := coord.CreateMany(ctx, &caller, resource.KindToolItem, items)
//	page, err := feed.SinceVersion(ctx, &caller, resource.KindToolItem, checkpoint, 100)
package toolcrib
