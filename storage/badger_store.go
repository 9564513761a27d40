package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/clademark/phyloforest/codec"
	"github.com/clademark/phyloforest/forest"
)

// ErrNodeNotFound is returned by BadgerStore.Node when id has no record.
var ErrNodeNotFound = errors.New("storage: node not found")

// record is the durable representation of a single forest node: its
// parent (0 if a genesis root, the same sentinel the codec's flat format
// uses, so a real parent with ID 0 cannot be told apart from no parent)
// and its children.
type record struct {
	Parent   int64
	Children []int64
}

// BadgerStore is a durable embedded KV backend for a forest too large to
// round-trip through the in-memory codec on every process restart. Keys
// are big-endian node IDs; values are a minimal tagged encoding of
// (parent, children), independent of the full forest snapshot format in
// package codec. It is the direct analogue of the teacher's BadgerDB half
// of hybrid storage (query/hybrid_builder.go, query/hybrid_storage_postgres_test.go),
// generalized from a GEDCOM xref graph to a phylogenetic forest.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a BadgerDB database at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// PutForest replaces the store's contents with a full snapshot of f, one
// write transaction per batch of nodes to keep individual transactions
// bounded on very large forests.
func (s *BadgerStore) PutForest(f *forest.Forest) error {
	const batchSize = 10_000

	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("storage: clear badger store: %w", err)
	}

	ids := f.AllIDs()
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.putBatch(f, ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *BadgerStore) putBatch(f *forest.Forest, ids []int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			n, ok := f.Node(id)
			if !ok {
				continue
			}
			rec := record{}
			if p := n.Parent(); p != nil {
				rec.Parent = p.ID
			}
			for _, c := range n.Children() {
				rec.Children = append(rec.Children, c.ID)
			}
			buf, err := encodeRecord(rec)
			if err != nil {
				return err
			}
			if err := txn.Set(encodeID(id), buf); err != nil {
				return fmt.Errorf("storage: set %d: %w", id, err)
			}
		}
		return nil
	})
}

// Node reads back a single node's (parent, children) record.
func (s *BadgerStore) Node(id int64) (parent int64, children []int64, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(encodeID(id))
		if getErr == badger.ErrKeyNotFound {
			return ErrNodeNotFound
		}
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			rec, decodeErr := decodeRecord(val)
			if decodeErr != nil {
				return decodeErr
			}
			parent = rec.Parent
			children = rec.Children
			return nil
		})
	})
	return parent, children, err
}

type rawRecord struct {
	id  int64
	rec record
}

// LoadForest reconstructs a Forest from every record in the store. It
// mirrors codec.Read's two-pass allocate-then-wire approach to avoid
// recursing over deep chains.
func (s *BadgerStore) LoadForest() (*forest.Forest, error) {
	var all []rawRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := decodeID(item.Key())
			var rec record
			if valErr := item.Value(func(val []byte) error {
				var decodeErr error
				rec, decodeErr = decodeRecord(val)
				return decodeErr
			}); valErr != nil {
				return valErr
			}
			all = append(all, rawRecord{id: id, rec: rec})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: load forest: %w", err)
	}

	edges := make([]codec.Edge, 0, len(all))
	for _, r := range all {
		edges = append(edges, codec.Edge{ID: r.id, Parent: r.rec.Parent})
	}
	return codec.AssembleFromEdges(edges)
}
