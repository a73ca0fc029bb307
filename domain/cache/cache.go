package cache

import (
	"sync"
	"time"
)

// Cache is a simple in-memory key-value store with per-entry expiration.
// The zero duration means no expiration.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// NoExpiration is the sentinel expiration meaning the entry never expires.
const NoExpiration time.Duration = 0

// New creates a new cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Set adds an item to the cache with a specified key, value and expiration duration.
// If the expiration is NoExpiration, the item never expires.
func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	var expiresAt time.Time
	if expiration != NoExpiration {
		expiresAt = time.Now().Add(expiration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: expiresAt}
}

// Get retrieves the value associated with a key from the cache.
// Returns false if the key does not exist or has expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}

	return e.value, true
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of entries, including any that have expired
// but have not yet been evicted by a Get.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
