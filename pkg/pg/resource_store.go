package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolcrib/toolcrib/pkg/resource"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the read
// queries can run inside or outside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const resourceColumns = "id, owner_id, tags, version, attrs, created_by, updated_by, created_at, updated_at"

// ResourceStore implements the resource store interfaces over Postgres.
type ResourceStore struct {
	pool *pgxpool.Pool
}

// NewResourceStore creates a store over the given pool. The pool must
// already be connected; provision tables with Schema.
func NewResourceStore(pool *pgxpool.Pool) *ResourceStore {
	if pool == nil {
		panic("pg: pool cannot be nil")
	}
	return &ResourceStore{pool: pool}
}

func (s *ResourceStore) Get(ctx context.Context, kind resource.Kind, id string) (*resource.Resource, error) {
	return getResource(ctx, s.pool, kind, id)
}

func (s *ResourceStore) List(ctx context.Context, kind resource.Kind, f resource.Filter) ([]*resource.Resource, int, error) {
	where := "kind = $1"
	args := []any{kind.String()}

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		where += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	if len(f.Attrs) > 0 {
		args = append(args, f.Attrs)
		where += fmt.Sprintf(" AND attrs @> $%d", len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM resources WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + resourceColumns + " FROM resources WHERE " + where + " ORDER BY created_at, id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	out, err := queryResources(ctx, s.pool, kind, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *ResourceStore) ChangedSinceVersion(ctx context.Context, kind resource.Kind, sinceVersion int64, ownerID string, limit int) ([]*resource.Resource, error) {
	query := "SELECT " + resourceColumns + " FROM resources WHERE kind = $1 AND version > $2"
	args := []any{kind.String(), sinceVersion}
	if ownerID != "" {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	query += " ORDER BY version, id"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return queryResources(ctx, s.pool, kind, query, args...)
}

func (s *ResourceStore) ChangedSinceTimestamp(ctx context.Context, kind resource.Kind, since time.Time, ownerID string, limit int) ([]*resource.Resource, error) {
	query := "SELECT " + resourceColumns + " FROM resources WHERE kind = $1 AND updated_at > $2"
	args := []any{kind.String(), since}
	if ownerID != "" {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	query += " ORDER BY updated_at, id"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return queryResources(ctx, s.pool, kind, query, args...)
}

func (s *ResourceStore) MaxVersion(ctx context.Context, kind resource.Kind, ownerID string) (int64, error) {
	query := "SELECT COALESCE(MAX(version), 0) FROM resources WHERE kind = $1"
	args := []any{kind.String()}
	if ownerID != "" {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	var max int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// Begin opens a database transaction implementing resource.Tx.
func (s *ResourceStore) Begin(ctx context.Context) (resource.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Get(ctx context.Context, kind resource.Kind, id string) (*resource.Resource, error) {
	return getResource(ctx, t.tx, kind, id)
}

func (t *pgTx) Insert(ctx context.Context, r *resource.Resource) error {
	var dead bool
	if err := t.tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM resource_tombstones WHERE id = $1)", r.ID,
	).Scan(&dead); err != nil {
		return mapTxErr(err)
	}
	if dead {
		return resource.ErrDuplicateID
	}

	_, err := t.tx.Exec(ctx, `
		INSERT INTO resources (id, kind, owner_id, tags, version, attrs, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.Kind.String(), r.OwnerID, tagsArg(r.Tags), r.Version, attrsArg(r.Attrs),
		r.CreatedBy, r.UpdatedBy, r.CreatedAt, r.UpdatedAt,
	)
	if isDuplicateKey(err) {
		return resource.ErrDuplicateID
	}
	return mapTxErr(err)
}

func (t *pgTx) Update(ctx context.Context, r *resource.Resource) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE resources
		SET tags = $3, version = $4, attrs = $5, updated_by = $6, updated_at = $7
		WHERE kind = $1 AND id = $2`,
		r.Kind.String(), r.ID, tagsArg(r.Tags), r.Version, attrsArg(r.Attrs), r.UpdatedBy, r.UpdatedAt,
	)
	if err != nil {
		return mapTxErr(err)
	}
	if tag.RowsAffected() == 0 {
		return resource.ErrNotFound
	}
	return nil
}

func (t *pgTx) Delete(ctx context.Context, kind resource.Kind, id string) error {
	tag, err := t.tx.Exec(ctx, "DELETE FROM resources WHERE kind = $1 AND id = $2", kind.String(), id)
	if err != nil {
		return mapTxErr(err)
	}
	if tag.RowsAffected() == 0 {
		return resource.ErrNotFound
	}
	_, err = t.tx.Exec(ctx,
		"INSERT INTO resource_tombstones (id) VALUES ($1) ON CONFLICT (id) DO NOTHING", id)
	return mapTxErr(err)
}

func (t *pgTx) Commit(ctx context.Context) error {
	return mapTxErr(t.tx.Commit(ctx))
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func mapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrTxClosed) {
		return resource.ErrTxClosed
	}
	return err
}

func getResource(ctx context.Context, q querier, kind resource.Kind, id string) (*resource.Resource, error) {
	row := q.QueryRow(ctx,
		"SELECT "+resourceColumns+" FROM resources WHERE kind = $1 AND id = $2",
		kind.String(), id,
	)
	r, err := scanResource(row, kind)
	if isNotFound(err) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, mapTxErr(err)
	}
	return r, nil
}

func queryResources(ctx context.Context, q querier, kind resource.Kind, query string, args ...any) ([]*resource.Resource, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*resource.Resource, 0)
	for rows.Next() {
		r, err := scanResource(rows, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanResource(row pgx.Row, kind resource.Kind) (*resource.Resource, error) {
	r := &resource.Resource{Kind: kind}
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Tags, &r.Version, &r.Attrs,
		&r.CreatedBy, &r.UpdatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// tagsArg normalizes nil tag sets so the column never stores NULL.
func tagsArg(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// attrsArg normalizes nil attrs to an empty JSON object.
func attrsArg(attrs map[string]any) map[string]any {
	if attrs == nil {
		return map[string]any{}
	}
	return attrs
}
