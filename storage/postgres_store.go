package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clademark/phyloforest/codec"
	"github.com/clademark/phyloforest/forest"
)

// PostgresStore is an alternate shared backend for multi-process
// population servers: several processes can serve distance queries against
// the same forest if its canonical copy lives in Postgres rather than a
// single process's BadgerStore. It mirrors the teacher's PostgreSQL half
// of hybrid storage (query/hybrid_postgres_builder.go's buildGraphInPostgreSQL),
// trading its file_id-scoped GEDCOM node table for a forest_id-scoped
// node table, since one Postgres instance can back several distinct
// forests the way the teacher's schema backs several distinct GEDCOM
// files.
type PostgresStore struct {
	pool     *pgxpool.Pool
	forestID string
}

// OpenPostgresStore connects to databaseURL and ensures the store's
// schema exists. forestID scopes every row to one logical forest, the
// same role the teacher's fileID plays for GEDCOM files sharing one
// database.
func OpenPostgresStore(ctx context.Context, databaseURL, forestID string) (*PostgresStore, error) {
	if forestID == "" {
		return nil, fmt.Errorf("storage: forestID is required for postgres storage")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	s := &PostgresStore{pool: pool, forestID: forestID}
	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) createSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS forest_nodes (
	forest_id TEXT NOT NULL,
	id BIGINT NOT NULL,
	parent_id BIGINT NOT NULL,
	PRIMARY KEY (forest_id, id)
);
CREATE INDEX IF NOT EXISTS idx_forest_nodes_parent ON forest_nodes(forest_id, parent_id);
`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("storage: create postgres schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// PutForest replaces this forest's rows with a snapshot of f inside a
// single transaction, batching inserts via pgx's CopyFrom the way the
// teacher batches with a prepared statement inside a transaction in
// buildGraphInPostgreSQL.
func (s *PostgresStore) PutForest(ctx context.Context, f *forest.Forest) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM forest_nodes WHERE forest_id = $1", s.forestID); err != nil {
		return fmt.Errorf("storage: clear forest rows: %w", err)
	}

	ids := f.AllIDs()
	rows := make([][]interface{}, 0, len(ids))
	for _, id := range ids {
		n, _ := f.Node(id)
		var parentID int64
		if p := n.Parent(); p != nil {
			parentID = p.ID
		}
		rows = append(rows, []interface{}{s.forestID, id, parentID})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"forest_nodes"},
		[]string{"forest_id", "id", "parent_id"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("storage: copy forest rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("storage: commit forest rows: %w", err)
	}
	return nil
}

// LoadForest reconstructs a Forest from this forest's rows in Postgres,
// reusing the codec package's allocate-then-wire restore logic.
func (s *PostgresStore) LoadForest(ctx context.Context) (*forest.Forest, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, parent_id FROM forest_nodes WHERE forest_id = $1 ORDER BY id", s.forestID)
	if err != nil {
		return nil, fmt.Errorf("storage: query forest rows: %w", err)
	}
	defer rows.Close()

	var edges []edgeRow
	for rows.Next() {
		var e edgeRow
		if err := rows.Scan(&e.id, &e.parent); err != nil {
			return nil, fmt.Errorf("storage: scan forest row: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate forest rows: %w", err)
	}

	return assembleEdgeRows(edges)
}

type edgeRow struct {
	id     int64
	parent int64
}

func assembleEdgeRows(rows []edgeRow) (*forest.Forest, error) {
	edges := make([]codec.Edge, len(rows))
	for i, r := range rows {
		edges[i] = codec.Edge{ID: r.id, Parent: r.parent}
	}
	return codec.AssembleFromEdges(edges)
}
