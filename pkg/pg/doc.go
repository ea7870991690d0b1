// Package pg is the Postgres-backed resource store.
//
// Connect opens a pgxpool with retry and backoff; Healthcheck wraps a ping
// for readiness probes. ResourceStore implements the resource store and
// transaction interfaces over a single resources table, with a tombstone
// table guaranteeing that deleted resource IDs are never reused. Schema
// holds the DDL for provisioning.
package pg
