package cypher

import "sync"

type cacheEntry struct {
	val string
	err error
}

// SimpleCache stores computed text fragments keyed by a string. Failed
// computations are cached as well, since every producer stored here is
// deterministic. Thread-safe with RWMutex and FIFO eviction.
type SimpleCache struct {
	mu      sync.RWMutex
	cache   map[string]cacheEntry
	order   []string // FIFO insertion order
	maxSize int
}

// NewSimpleCache creates a cache with default size limit.
func NewSimpleCache() *SimpleCache {
	return NewSimpleCacheWithSize(1000)
}

// NewSimpleCacheWithSize creates a cache holding at most maxSize entries.
func NewSimpleCacheWithSize(maxSize int) *SimpleCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &SimpleCache{
		cache:   make(map[string]cacheEntry),
		order:   make([]string, 0),
		maxSize: maxSize,
	}
}

// Fetch retrieves the cached result or builds and stores it using fn.
func (c *SimpleCache) Fetch(key string, fn func() (string, error)) (string, error) {
	// Fast path: check if key exists with read lock
	c.mu.RLock()
	if e, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return e.val, e.err
	}
	c.mu.RUnlock()

	// Slow path: acquire write lock and check again (double-check locking)
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.cache[key]; ok {
		return e.val, e.err
	}

	val, err := fn()

	// FIFO eviction: remove oldest entry if at capacity
	if len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}

	c.cache[key] = cacheEntry{val: val, err: err}
	c.order = append(c.order, key)
	return val, err
}

// Len returns the number of cached entries.
func (c *SimpleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
