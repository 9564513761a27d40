package forest

import "testing"

func buildChain(t *testing.T, depth int) *Forest {
	t.Helper()
	f, err := New([]int64{1})
	if err != nil {
		t.Fatal(err)
	}
	for i := int64(1); i < int64(depth); i++ {
		if err := f.AddChild(i, i+1); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestEqual_IdenticalChains(t *testing.T) {
	a := buildChain(t, 50)
	b := buildChain(t, 50)
	if !ForestsEqual(a, b) {
		t.Fatal("expected equal forests")
	}
}

func TestEqual_DifferentID(t *testing.T) {
	a := buildChain(t, 5)
	b := buildChain(t, 5)
	bn, _ := b.Node(5)
	bn.ID = 500
	if ForestsEqual(a, b) {
		t.Fatal("expected unequal forests after mutating a leaf ID")
	}
}

func TestEqual_DifferentChildCount(t *testing.T) {
	a, _ := New([]int64{1})
	must(t, a.AddChild(1, 2))
	must(t, a.AddChild(1, 3))

	b, _ := New([]int64{1})
	must(t, b.AddChild(1, 2))

	if ForestsEqual(a, b) {
		t.Fatal("expected unequal forests with differing child counts")
	}
}

func TestEqual_ParentIsOneHopOnly(t *testing.T) {
	// Node 3 sits under parent 2 in both forests, but 2's own parent is 1
	// in one forest and 0 in the other. Equal compares only the immediate
	// parent's ID, so the two nodes 3 still compare equal.
	a, _ := New([]int64{1})
	must(t, a.AddChild(1, 2))
	must(t, a.AddChild(2, 3))

	b, _ := New([]int64{0})
	must(t, b.AddChild(0, 2))
	must(t, b.AddChild(2, 3))

	an, _ := a.Node(3)
	bn, _ := b.Node(3)
	if !Equal(an, bn) {
		t.Fatal("expected nodes with equal parents but different grandparents to compare equal")
	}
}

func TestEqual_DeepChainNoStackOverflow(t *testing.T) {
	const depth = 100000
	a := buildChain(t, depth)
	b := buildChain(t, depth)
	if !ForestsEqual(a, b) {
		t.Fatal("expected equal deep chains")
	}
}

func TestEqual_NilHandling(t *testing.T) {
	if !Equal(nil, nil) {
		t.Error("expected nil == nil")
	}
	n := &Node{ID: 1}
	if Equal(nil, n) || Equal(n, nil) {
		t.Error("expected nil != non-nil node")
	}
}
