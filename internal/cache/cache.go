// Package cache implements the per-tree memoization store used by
// TreeContext for expensive analyzer results.
package cache

import "sync"

// DefaultSize is the default entry bound for a context cache.
const DefaultSize = 256

// Cache is a bounded key→value store. Values are arbitrary analyzer
// results; keys are chosen by callers.
type Cache struct {
	maxSize int
	items   map[string]any
	mu      sync.RWMutex
}

// New creates a cache bounded to maxSize entries. Non-positive sizes
// fall back to DefaultSize.
func New(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}
	return &Cache{
		maxSize: maxSize,
		items:   make(map[string]any),
	}
}

// Get retrieves a memoized value.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

// Put stores a value, evicting an arbitrary entry when full. Analyzer
// memoization tolerates eviction: a dropped entry is just recomputed.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok && len(c.items) >= c.maxSize {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}
	c.items[key] = value
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]any)
}
