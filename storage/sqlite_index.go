package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clademark/phyloforest/forest"
)

// Index is a secondary SQLite index over a forest's structural metadata,
// rebuilt from a snapshot rather than kept incrementally in sync. It
// answers "which IDs are currently leaves/genesis roots" and "which IDs
// are a node's children" without walking the in-memory forest, the same division
// of labor as the teacher's SQLite half of hybrid storage
// (query/hybrid_builder.go's buildGraphInSQLite, grounded on the schema
// shape of hybrid_postgres_builder.go's nodes table but trimmed to the
// columns a forest actually has).
type Index struct {
	db *sql.DB
}

// OpenIndex opens (creating if absent) a SQLite database at path and
// ensures its schema exists.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open index: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER NOT NULL,
	is_leaf INTEGER NOT NULL,
	is_genesis INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_nodes_parent_id ON nodes(parent_id);
CREATE INDEX IF NOT EXISTS idx_nodes_is_leaf ON nodes(is_leaf);
CREATE INDEX IF NOT EXISTS idx_nodes_is_genesis ON nodes(is_genesis);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("storage: create schema: %w", err)
	}
	return nil
}

// Close releases the underlying SQLite handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Rebuild truncates the index and repopulates it from f in a single
// transaction, batching inserts via a prepared statement the same way
// the teacher batches node inserts inside a transaction in
// buildGraphInPostgreSQL.
func (idx *Index) Rebuild(f *forest.Forest) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return fmt.Errorf("storage: clear index: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO nodes (id, parent_id, is_leaf, is_genesis) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	leaves := f.Leaves()
	genesisIDs := make(map[int64]bool, len(f.Genesis()))
	for _, g := range f.Genesis() {
		genesisIDs[g.ID] = true
	}

	for _, id := range f.AllIDs() {
		n, _ := f.Node(id)
		var parentID int64
		if p := n.Parent(); p != nil {
			parentID = p.ID
		}
		_, isLeaf := leaves[id]
		_, err := stmt.Exec(id, parentID, boolToInt(isLeaf), boolToInt(genesisIDs[id]))
		if err != nil {
			return fmt.Errorf("storage: insert node %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit rebuild: %w", err)
	}
	return nil
}

// Leaves returns every ID currently flagged as a leaf.
func (idx *Index) Leaves() ([]int64, error) {
	return idx.queryIDs("SELECT id FROM nodes WHERE is_leaf = 1")
}

// GenesisRoots returns every ID currently flagged as a genesis root.
func (idx *Index) GenesisRoots() ([]int64, error) {
	return idx.queryIDs("SELECT id FROM nodes WHERE is_genesis = 1")
}

// Children returns the IDs whose parent_id is parentID.
func (idx *Index) Children(parentID int64) ([]int64, error) {
	return idx.queryIDsArg("SELECT id FROM nodes WHERE parent_id = ?", parentID)
}

func (idx *Index) queryIDs(query string) ([]int64, error) {
	rows, err := idx.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("storage: query: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (idx *Index) queryIDsArg(query string, arg int64) ([]int64, error) {
	rows, err := idx.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("storage: query: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
