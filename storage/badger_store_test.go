package storage

import (
	"path/filepath"
	"testing"

	"github.com/clademark/phyloforest/forest"
)

func buildSampleForest(t *testing.T) *forest.Forest {
	t.Helper()
	f, err := forest.New([]int64{1})
	if err != nil {
		t.Fatal(err)
	}
	edges := [][2]int64{{1, 2}, {1, 3}, {2, 4}, {2, 5}}
	for _, e := range edges {
		if err := f.AddChild(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestBadgerStore_PutAndLoadForestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenBadgerStore(filepath.Join(dir, "forest.badger"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	f := buildSampleForest(t)
	if err := store.PutForest(f); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadForest()
	if err != nil {
		t.Fatal(err)
	}
	if !forest.ForestsEqual(f, loaded) {
		t.Error("expected round-tripped forest to equal the original")
	}
}

func TestBadgerStore_Node(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenBadgerStore(filepath.Join(dir, "forest.badger"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	f := buildSampleForest(t)
	if err := store.PutForest(f); err != nil {
		t.Fatal(err)
	}

	parent, children, err := store.Node(2)
	if err != nil {
		t.Fatal(err)
	}
	if parent != 1 {
		t.Errorf("expected parent 1, got %d", parent)
	}
	if len(children) != 2 {
		t.Errorf("expected 2 children, got %v", children)
	}

	if _, _, err := store.Node(999); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestBadgerStore_PutForestBatchesLargeForests(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenBadgerStore(filepath.Join(dir, "forest.badger"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	// Build a linear chain long enough to span multiple internal batches.
	const depth = 25_000
	f, err := forest.New([]int64{1})
	if err != nil {
		t.Fatal(err)
	}
	for i := int64(1); i < depth; i++ {
		if err := f.AddChild(i, i+1); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.PutForest(f); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadForest()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != depth {
		t.Errorf("expected %d nodes, got %d", depth, loaded.Len())
	}
}
