// Package storage holds the persistence and caching backends that sit
// around the in-memory forest and distance engine: a durable embedded KV
// store, a secondary relational index, an alternate shared backend for
// multi-process deployments, and a bounded memoization cache for repeated
// distance queries.
package storage

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// QueryCache is a bounded, concurrency-safe memoization cache keyed by a
// hash of a query's logical parameters. It replaces the teacher's
// hand-rolled FIFO map-based cache (query/cache_config_test.go's
// newQueryCache/get/set/clear) with a real LRU, and adds singleflight
// dedup so that N goroutines requesting the same uncached query only
// compute it once.
type QueryCache[V any] struct {
	lru    *lru.Cache[uint64, V]
	flight singleflight.Group
	mu     sync.Mutex
}

// DefaultQueryCacheSize mirrors the teacher's default-when-zero-or-negative
// behavior in newQueryCache, which defaulted to 1000 entries.
const DefaultQueryCacheSize = 1000

// NewQueryCache builds a cache holding at most size entries. A
// non-positive size falls back to DefaultQueryCacheSize, matching the
// teacher's newQueryCache defaulting behavior.
func NewQueryCache[V any](size int) *QueryCache[V] {
	if size <= 0 {
		size = DefaultQueryCacheSize
	}
	c, err := lru.New[uint64, V](size)
	if err != nil {
		// Only possible if size <= 0, which is already excluded above.
		panic(err)
	}
	return &QueryCache[V]{lru: c}
}

// MakeKey hashes a query's parts into a stable cache key. It is the
// generalized, xxhash-backed counterpart of the teacher's makeCacheKey,
// which concatenated fmt.Sprintf("%v") parts with a separator. Int64 IDs
// are sorted first so that a query set's key is independent of the
// caller's argument order, matching the canonical (min,max) treatment
// used elsewhere for pairwise distance keys.
func MakeKey(queryIDs []int64, maxDistance int64, pruneFlag bool) uint64 {
	sorted := make([]int64, len(queryIDs))
	copy(sorted, queryIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	for _, id := range sorted {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(maxDistance, 10))
	b.WriteByte('|')
	if pruneFlag {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	return xxhash.Sum64String(b.String())
}

// Get returns the cached value for key, if present.
func (c *QueryCache[V]) Get(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Set stores value under key, evicting the least recently used entry if
// the cache is full.
func (c *QueryCache[V]) Set(key uint64, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// Clear empties the cache, mirroring the teacher's cache.clear().
func (c *QueryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Len reports the number of entries currently cached.
func (c *QueryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// GetOrCompute returns the cached value for key if present; otherwise it
// calls compute exactly once even under concurrent callers requesting the
// same key (via singleflight), caches the result, and returns it. The
// computed value is not cached if compute returns an error.
func (c *QueryCache[V]) GetOrCompute(key uint64, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	keyStr := strconv.FormatUint(key, 10)
	v, err, _ := c.flight.Do(keyStr, func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		result, err := compute()
		if err != nil {
			return result, err
		}
		c.Set(key, result)
		return result, nil
	})
	return v.(V), err
}

// encodeID renders an int64 ID as a fixed-width big-endian key, used by
// BadgerStore for lexicographic key ordering.
func encodeID(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func decodeID(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf))
}
