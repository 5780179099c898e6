// Package cache provides the short-lived response caches used to avoid
// repeating identical upstream calls.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a response stays fresh.
const DefaultTTL = 5 * time.Minute

// ResponseCache maps request keys to values of a single result type.
// Expired entries are reported as absent and removed on lookup; there is no
// background sweep.
type ResponseCache[V any] struct {
	name  string
	ttl   time.Duration
	items *gocache.Cache
}

// New creates a cache. A non-positive ttl selects DefaultTTL.
func New[V any](name string, ttl time.Duration) *ResponseCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache[V]{
		name: name,
		ttl:  ttl,
		// A zero cleanup interval disables the janitor goroutine.
		items: gocache.New(ttl, 0),
	}
}

// Name identifies the cache in logs.
func (c *ResponseCache[V]) Name() string { return c.name }

// TTL returns the freshness window.
func (c *ResponseCache[V]) TTL() time.Duration { return c.ttl }

// Get returns the value stored under key if it is still fresh.
func (c *ResponseCache[V]) Get(key string) (V, bool) {
	var zero V

	item, found := c.items.Get(key)
	if !found {
		// Drop an expired entry still held by the underlying map.
		c.items.Delete(key)
		return zero, false
	}
	v, ok := item.(V)
	if !ok {
		c.items.Delete(key)
		return zero, false
	}
	return v, true
}

// Set stores value under key with the cache's TTL.
func (c *ResponseCache[V]) Set(key string, value V) {
	c.items.Set(key, value, gocache.DefaultExpiration)
}

// Len returns the number of stored entries, including expired ones that
// have not been looked up yet.
func (c *ResponseCache[V]) Len() int {
	return c.items.ItemCount()
}

// Flush removes every entry.
func (c *ResponseCache[V]) Flush() {
	c.items.Flush()
}
