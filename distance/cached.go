package distance

import (
	"github.com/clademark/phyloforest/forest"
	"github.com/clademark/phyloforest/storage"
)

// Engine wraps Compute with a bounded memoization cache, so repeated
// distance queries over an unchanged forest don't re-run the sweep. It
// generalizes the teacher's AncestorQuery builder (query/ancestor_query.go)
// from "ancestors of one xref, looked up via a hand-rolled FIFO cache"
// to "pairwise distances across a query set, looked up via a real LRU".
//
// Callers that mutate the forest between calls are responsible for
// calling Invalidate; Engine has no way to detect a forest change on its
// own, the same contract the teacher's queryCache placed on its callers.
type Engine struct {
	cache *storage.QueryCache[*Result]
}

// NewEngine builds an Engine backed by a cache of the given size. A
// non-positive size falls back to storage.DefaultQueryCacheSize.
func NewEngine(cacheSize int) *Engine {
	return &Engine{cache: storage.NewQueryCache[*Result](cacheSize)}
}

// ComputeNamed runs Compute, memoizing the result under a key derived from
// queryIDs and opts. Concurrent callers requesting the same uncached query
// collapse into a single sweep via the cache's singleflight dedup.
func (e *Engine) ComputeNamed(f *forest.Forest, queryIDs []int64, opts Options) (*Result, error) {
	key := storage.MakeKey(queryIDs, opts.MaxDistance, opts.RemoveUnreachableNodes)
	return e.cache.GetOrCompute(key, func() (*Result, error) {
		return Compute(f, queryIDs, opts)
	})
}

// Invalidate clears every memoized result. Call it after any mutation to
// the underlying forest (add_child, pruning) so stale distances are never
// served.
func (e *Engine) Invalidate() {
	e.cache.Clear()
}

// CacheLen reports how many distinct queries are currently memoized.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}
