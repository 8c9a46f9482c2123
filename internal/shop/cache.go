package shop

import (
	"sync"
	"time"
)

// ListCache provides thread-safe caching of the shop list with TTL support.
// Directory reads vastly outnumber writes, so list responses are held here
// instead of hitting the store on every request.
type ListCache struct {
	mu      sync.RWMutex
	data    []*Shop
	expires time.Time
	ttl     time.Duration
}

// NewListCache creates a new shop list cache with the specified TTL
func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{ttl: ttl}
}

// Get returns the cached shop list if it exists and hasn't expired
func (c *ListCache) Get() ([]*Shop, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || time.Now().After(c.expires) {
		return nil, false
	}
	return c.data, true
}

// Set stores the shop list in the cache with the configured TTL
func (c *ListCache) Set(shops []*Shop) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = shops
	c.expires = time.Now().Add(c.ttl)
}

// Clear removes any cached data
func (c *ListCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = nil
}
