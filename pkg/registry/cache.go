// Package registry provides the process-lifetime keyed cache backing proxy
// and field class lookup. The cache guarantees identity: a key maps to
// exactly one stored value for as long as the cache lives, so repeated
// lookups of one logical target hand back the same class object.
package registry

import "sync"

// Cache is a mutex-guarded map from key to a lazily built value. Entries
// are never evicted; the key space is the set of distinct targets named in
// source code, not request volume.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// GetOrCreate returns the value stored under key, invoking build to create
// and store it on first use. The check-then-insert is atomic with respect
// to concurrent callers, so one key never yields two distinct values.
// Build failures are not cached; a later lookup retries.
func (c *Cache[K, V]) GetOrCreate(key K, build func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.entries[key]; ok {
		return value, nil
	}

	value, err := build()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = value
	return value, nil
}

// Get returns the stored value without building.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	return value, ok
}

// Has reports whether a key is present.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Keys returns a snapshot of the cached keys in unspecified order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Reset discards all entries. Test support; production caches live for the
// process.
func (c *Cache[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]V)
}
