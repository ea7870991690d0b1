package pg

// Schema provisions the resource tables. The tombstones table remembers
// every deleted resource ID so IDs are never reused.
const Schema = `
CREATE TABLE IF NOT EXISTS resources (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    owner_id   TEXT NOT NULL,
    tags       TEXT[] NOT NULL DEFAULT '{}',
    version    BIGINT NOT NULL DEFAULT 1,
    attrs      JSONB NOT NULL DEFAULT '{}',
    created_by TEXT NOT NULL,
    updated_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS resources_kind_version_idx ON resources (kind, version);
CREATE INDEX IF NOT EXISTS resources_kind_updated_at_idx ON resources (kind, updated_at);
CREATE INDEX IF NOT EXISTS resources_kind_owner_idx ON resources (kind, owner_id);

CREATE TABLE IF NOT EXISTS resource_tombstones (
    id         TEXT PRIMARY KEY,
    deleted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
