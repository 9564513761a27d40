package distance

import (
	"fmt"

	"github.com/clademark/phyloforest/forest"
)

// PathBetween reconstructs the explicit node path between a and b,
// ordered from a to b through their lowest common ancestor. It is a
// diagnostic helper that walks parent links directly; it does not call
// Compute, and it is not a core engine return value: the engine itself
// only ever returns lengths (SPEC_FULL.md §4's PathBetween addition). No
// CLI command calls it. It returns an error if a or b lie in
// different genesis subtrees, since a forest has no cross-root path.
//
// Grounded in the ancestor-walk-then-ShortestPath idiom of an
// ancestor-query builder that reconstructs a path from already-known
// ancestors rather than running a fresh general graph search.
func PathBetween(f *forest.Forest, a, b int64) ([]int64, error) {
	na, ok := f.Node(a)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQueryID, a)
	}
	nb, ok := f.Node(b)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQueryID, b)
	}

	ancestorsOfA := map[int64]int{} // id -> distance from a
	depth := 0
	for n := na; n != nil; n = n.Parent() {
		ancestorsOfA[n.ID] = depth
		depth++
	}

	// Walk up from b until hitting a node already seen above a; that
	// node is the lowest common ancestor.
	var upFromB []int64
	var lca int64
	found := false
	for n := nb; n != nil; n = n.Parent() {
		upFromB = append(upFromB, n.ID)
		if _, ok := ancestorsOfA[n.ID]; ok {
			lca = n.ID
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("distance: %d and %d share no ancestor", a, b)
	}

	// Path a -> lca: a's ancestor chain truncated at lca.
	var upFromA []int64
	for n := na; n != nil; n = n.Parent() {
		upFromA = append(upFromA, n.ID)
		if n.ID == lca {
			break
		}
	}

	// upFromB currently runs b -> ... -> lca; drop lca (already appended
	// via upFromA) and reverse so it reads lca -> ... -> b.
	downToB := upFromB[:len(upFromB)-1]
	for i, j := 0, len(downToB)-1; i < j; i, j = i+1, j-1 {
		downToB[i], downToB[j] = downToB[j], downToB[i]
	}

	return append(upFromA, downToB...), nil
}
