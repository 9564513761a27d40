package distance

import "testing"

func TestEngine_ComputeNamed_CachesAcrossCalls(t *testing.T) {
	f := mustForest(t, []int64{1}, [][2]int64{{1, 2}, {2, 3}, {2, 4}, {3, 5}, {4, 6}, {6, 7}})
	e := NewEngine(10)

	r1, err := e.ComputeNamed(f, []int64{5, 7}, Options{MaxDistance: Unbounded})
	if err != nil {
		t.Fatal(err)
	}
	if e.CacheLen() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", e.CacheLen())
	}

	r2, err := e.ComputeNamed(f, []int64{7, 5}, Options{MaxDistance: Unbounded})
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Error("expected the same cached *Result pointer regardless of query ID order")
	}
	if e.CacheLen() != 1 {
		t.Errorf("expected query-order-independent key reuse, cache has %d entries", e.CacheLen())
	}
}

func TestEngine_Invalidate_ClearsCache(t *testing.T) {
	f := mustForest(t, []int64{1}, [][2]int64{{1, 2}})
	e := NewEngine(10)

	if _, err := e.ComputeNamed(f, []int64{2}, Options{MaxDistance: Unbounded}); err != nil {
		t.Fatal(err)
	}
	e.Invalidate()
	if e.CacheLen() != 0 {
		t.Errorf("expected empty cache after Invalidate, got %d", e.CacheLen())
	}
}

func TestEngine_ComputeNamed_DistinguishesOptions(t *testing.T) {
	f := mustForest(t, []int64{1}, [][2]int64{{1, 2}, {1, 3}})
	e := NewEngine(10)

	if _, err := e.ComputeNamed(f, []int64{2, 3}, Options{MaxDistance: Unbounded}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ComputeNamed(f, []int64{2, 3}, Options{MaxDistance: 1}); err != nil {
		t.Fatal(err)
	}
	if e.CacheLen() != 2 {
		t.Errorf("expected distinct cache entries for distinct MaxDistance, got %d", e.CacheLen())
	}
}
