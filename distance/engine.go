// Package distance implements the pairwise-distance engine: a single
// bottom-up sweep over a query set that folds per-subtree
// offspring-distance maps up the tree, emitting every pairwise tree
// distance between ancestors of the query set, identifying the Most
// Recent Common Ancestor when one exists, and optionally pruning the
// forest of nodes unreachable from the query set.
//
// The sweep is seeded with the query IDs and driven by a max-priority
// queue keyed by node ID (§4.2's "larger IDs pop first" proxy for
// youngest-first), grounded in the same heaviest-first heap-walk shape
// used for weighted-tree traversal: a container/heap over pending IDs,
// with a side set making re-enqueue of an already-pending parent a
// no-op.
package distance

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/clademark/phyloforest/forest"
)

// Unbounded is the default MaxDistance: no cap is applied.
const Unbounded int64 = -1

// Options configures a sweep.
type Options struct {
	// RemoveUnreachableNodes prunes the forest of nodes the sweep never
	// visits, once the sweep completes.
	RemoveUnreachableNodes bool

	// MaxDistance caps recorded/propagated edge distances. Unbounded (-1),
	// or any other negative value, means no cap; the zero value 0 is a cap
	// of 0.
	MaxDistance int64
}

// ErrUnknownQueryID is wrapped into the error returned when a query ID is
// not present in the forest; the sweep never starts in that case, so the
// forest is never partially touched.
var ErrUnknownQueryID = errors.New("distance: unknown query id")

// Pair is a canonical (min, max) node-ID key into a pairwise distance
// result; callers must not rely on the reverse ordering being present.
type Pair struct {
	A, B int64
}

func canon(a, b int64) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Result is the return value of Compute.
type Result struct {
	// MRCA is the Most Recent Common Ancestor of the query set, or nil
	// if the query set spans more than one genesis root.
	MRCA *int64

	// Pairwise maps canonical (min,max) ID pairs to their tree distance,
	// for every pair of nodes visited by the sweep that share a path
	// (i.e. are not split across disjoint genesis roots).
	Pairwise map[Pair]int64

	// MRCADistances is OD[mrca] if an MRCA was found, otherwise empty.
	MRCADistances map[int64]int64
}

// maxIDHeap is a container/heap max-heap of pending node IDs.
type maxIDHeap []int64

func (h maxIDHeap) Len() int            { return len(h) }
func (h maxIDHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxIDHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxIDHeap) Push(x interface{}) { *h = append(*h, x.(int64)) }
func (h *maxIDHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Compute runs the sweep of §4.2 over queryIDs and returns the MRCA (if
// any), the pairwise distance map, and the MRCA's offspring-distance map.
// It fails, without mutating the forest, if any query ID is absent.
func Compute(f *forest.Forest, queryIDs []int64, opts Options) (*Result, error) {
	for _, id := range queryIDs {
		if !f.Has(id) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownQueryID, id)
		}
	}

	unbounded := opts.MaxDistance < 0

	pending := make(map[int64]bool, len(queryIDs))
	h := &maxIDHeap{}
	for _, id := range queryIDs {
		if !pending[id] {
			pending[id] = true
			heap.Push(h, id)
		}
	}

	od := make(map[int64]map[int64]int64)
	pairwise := make(map[Pair]int64)
	seenRoots := make(map[int64]bool)
	visited := make(map[int64]struct{})
	var mrca *int64

	for h.Len() > 0 {
		n := heap.Pop(h).(int64)
		delete(pending, n)
		node, _ := f.Node(n)

		// Phase 1: MRCA detection.
		if h.Len() == 0 && len(seenRoots) == 0 {
			id := n
			mrca = &id
		}

		// Phase 2: parent enqueue. The MRCA's own parent is deliberately
		// never enqueued here (h.Len()==0 at that point), which
		// terminates the sweep at the lowest common ancestor instead of
		// always climbing to a genesis root.
		if parent := node.Parent(); parent != nil {
			if h.Len() > 0 && !pending[parent.ID] {
				pending[parent.ID] = true
				heap.Push(h, parent.ID)
			}
		} else {
			seenRoots[n] = true
		}

		// Phase 3: distance fold at n.
		nd := map[int64]int64{n: 0}
		pairwise[canon(n, n)] = 0
		visited[n] = struct{}{}

		var visitedChildren []*forest.Node
		for _, c := range node.Children() {
			if _, ok := od[c.ID]; ok {
				visitedChildren = append(visitedChildren, c)
			}
		}

		// Cross parent edges.
		for _, c := range visitedChildren {
			for d, dist := range od[c.ID] {
				next := dist + 1
				if !unbounded && next > opts.MaxDistance {
					continue
				}
				nd[d] = next
				pairwise[canon(n, d)] = next
			}
		}

		// Cross sibling pairs.
		for i := 0; i < len(visitedChildren); i++ {
			for j := i + 1; j < len(visitedChildren); j++ {
				od1, od2 := od[visitedChildren[i].ID], od[visitedChildren[j].ID]
				for d1, dist1 := range od1 {
					if !unbounded && dist1 > opts.MaxDistance {
						continue
					}
					for d2, dist2 := range od2 {
						next := dist1 + dist2 + 2
						if !unbounded && next > opts.MaxDistance {
							continue
						}
						pairwise[canon(d1, d2)] = next
					}
				}
			}
		}

		od[n] = nd
	}

	mrcaDistances := map[int64]int64{}
	if mrca != nil {
		mrcaDistances = od[*mrca]
	}

	if opts.RemoveUnreachableNodes {
		prune(f, visited, mrca)
	}

	f.MRCA = mrca

	return &Result{MRCA: mrca, Pairwise: pairwise, MRCADistances: mrcaDistances}, nil
}

// prune applies §4.2's pruning side effect: sever the MRCA's parent link
// (if any) so the upper tree becomes collectible, drop unvisited roots
// from genesis, and remove unvisited IDs from nodes/leaves.
func prune(f *forest.Forest, visited map[int64]struct{}, mrca *int64) {
	mut := f.AsMutator()
	if mrca != nil {
		mut.SeverParent(*mrca)
	}

	remove := make(map[int64]struct{})
	for _, id := range f.AllIDs() {
		if _, ok := visited[id]; !ok {
			remove[id] = struct{}{}
		}
	}
	mut.RemoveIDs(remove)
}
