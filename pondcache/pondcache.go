// Package pondcache provides a bounded read-through cache of recently-read
// pond.Pool values, using github.com/hashicorp/golang-lru/v2 (a teacher
// dependency). A generic slot pool has no interning story of its own the
// way the teacher's arena package does for strings
// (alex60217101990-opa/v1/storage/interning.go); pondcache gives repeated
// Get calls an analogous cheap-repeated-read path without requiring T to
// be internable.
package pondcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arenapool/pond"
)

// Cache sits in front of a pond.Pool[T], caching the last N distinct
// occupied indices read through Get. It is not coherent across mutation:
// callers must call Invalidate (or InvalidateAll) after any Write/Release/
// Resize/Defragment/Trim that could change the value at a cached index.
type Cache[T any] struct {
	pool *pond.Pool[T]
	lru  *lru.Cache[int, T]
}

// New wraps pool with an LRU cache holding up to size distinct indices.
func New[T any](pool *pond.Pool[T], size int) (*Cache[T], error) {
	c, err := lru.New[int, T](size)
	if err != nil {
		return nil, err
	}
	return &Cache[T]{pool: pool, lru: c}, nil
}

// Get returns the value at i, serving from the cache when possible and
// falling through to the underlying pool (populating the cache) on a
// miss. It reports false exactly when pool.Get would.
func (c *Cache[T]) Get(i int) (T, bool) {
	if v, ok := c.lru.Get(i); ok {
		return v, true
	}
	v, ok := c.pool.Get(i)
	if ok {
		c.lru.Add(i, v)
	}
	return v, ok
}

// Invalidate evicts i from the cache, if present.
func (c *Cache[T]) Invalidate(i int) { c.lru.Remove(i) }

// InvalidateAll empties the cache without touching the underlying pool.
func (c *Cache[T]) InvalidateAll() { c.lru.Purge() }

// Pool returns the wrapped pond.Pool[T].
func (c *Cache[T]) Pool() *pond.Pool[T] { return c.pool }

// Len returns the number of indices currently cached.
func (c *Cache[T]) Len() int { return c.lru.Len() }
