package forest

import "testing"

func TestNew_DuplicateGenesisIDs(t *testing.T) {
	_, err := New([]int64{1, 2, 1})
	if err == nil {
		t.Fatal("expected error for duplicate genesis IDs")
	}
	if _, ok := err.(*StructuralError); !ok {
		t.Fatalf("expected *StructuralError, got %T", err)
	}
}

func TestNew_Invariants(t *testing.T) {
	f, err := New([]int64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Len() != 3 {
		t.Errorf("expected 3 nodes, got %d", f.Len())
	}
	if len(f.Leaves()) != 3 {
		t.Errorf("expected 3 leaves, got %d", len(f.Leaves()))
	}
	if f.MRCA != nil {
		t.Error("expected MRCA absent after New")
	}
	for _, id := range []int64{1, 2, 3} {
		if _, ok := f.Leaves()[id]; !ok {
			t.Errorf("expected %d in leaves", id)
		}
	}
	if len(f.Genesis()) != 3 {
		t.Errorf("expected 3 genesis roots, got %d", len(f.Genesis()))
	}
}

func TestAddChild_Effects(t *testing.T) {
	f, _ := New([]int64{1})
	if err := f.AddChild(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := f.Leaves()[2]; !ok {
		t.Error("expected child 2 in leaves")
	}
	if _, ok := f.Leaves()[1]; ok {
		t.Error("expected parent 1 removed from leaves")
	}
	if !f.Has(2) {
		t.Error("expected child 2 in nodes")
	}
	if f.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", f.Len())
	}

	parent, _ := f.Node(1)
	count := 0
	for _, c := range parent.Children() {
		if c.ID == 2 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected child 2 to appear exactly once in parent's children, got %d", count)
	}
}

func TestAddChild_UnknownParent(t *testing.T) {
	f, _ := New([]int64{1})
	if err := f.AddChild(99, 100); err == nil {
		t.Fatal("expected error for unknown parent")
	}
	if f.Len() != 1 {
		t.Error("forest must not be mutated on failure")
	}
}

func TestAddChild_DuplicateChild(t *testing.T) {
	f, _ := New([]int64{1})
	if err := f.AddChild(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := f.AddChild(1, 2); err == nil {
		t.Fatal("expected error for re-adding an existing child ID")
	}
}

func TestAddChild_ChildIDMustExceedParent(t *testing.T) {
	f, _ := New([]int64{10})
	if err := f.AddChild(10, 5); err == nil {
		t.Fatal("expected error when child ID does not exceed parent ID")
	}
	if err := f.AddChild(10, 10); err == nil {
		t.Fatal("expected error when child ID equals parent ID")
	}
}

func TestAddChild_ChainGrowsLeafSet(t *testing.T) {
	f, _ := New([]int64{1})
	must(t, f.AddChild(1, 2))
	must(t, f.AddChild(2, 3))
	must(t, f.AddChild(2, 4))

	if len(f.Leaves()) != 2 {
		t.Fatalf("expected 2 leaves (3,4), got %d", len(f.Leaves()))
	}
	for _, id := range []int64{3, 4} {
		if _, ok := f.Leaves()[id]; !ok {
			t.Errorf("expected %d to be a leaf", id)
		}
	}
}

func TestStats(t *testing.T) {
	f, _ := New([]int64{1, 5})
	must(t, f.AddChild(5, 7))
	s := f.Stats()
	if s.Nodes != 3 || s.Genesis != 2 || s.Leaves != 2 || s.MaxID != 7 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
