package storage

import (
	"path/filepath"
	"sort"
	"testing"
)

func TestIndex_RebuildAndQuery(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenIndex(filepath.Join(dir, "index.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	f := buildSampleForest(t)
	if err := idx.Rebuild(f); err != nil {
		t.Fatal(err)
	}

	leaves, err := idx.Leaves()
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i] < leaves[j] })
	wantLeaves := []int64{3, 4, 5}
	if !int64SlicesEqual(leaves, wantLeaves) {
		t.Errorf("leaves = %v, want %v", leaves, wantLeaves)
	}

	roots, err := idx.GenesisRoots()
	if err != nil {
		t.Fatal(err)
	}
	if !int64SlicesEqual(roots, []int64{1}) {
		t.Errorf("genesis roots = %v, want [1]", roots)
	}

	children, err := idx.Children(2)
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	if !int64SlicesEqual(children, []int64{4, 5}) {
		t.Errorf("children(2) = %v, want [4 5]", children)
	}
}

func TestIndex_RebuildIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenIndex(filepath.Join(dir, "index.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	f := buildSampleForest(t)
	if err := idx.Rebuild(f); err != nil {
		t.Fatal(err)
	}
	if err := idx.Rebuild(f); err != nil {
		t.Fatal(err)
	}

	leaves, err := idx.Leaves()
	if err != nil {
		t.Fatal(err)
	}
	if len(leaves) != 3 {
		t.Errorf("expected 3 leaves after repeated rebuild, got %d", len(leaves))
	}
}

func int64SlicesEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
