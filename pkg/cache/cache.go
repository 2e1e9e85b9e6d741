// Package cache is a short-lived memo layer in front of normalized
// results. Entries expire lazily on read; there is no background sweep.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the original dashboard's five-minute window.
const DefaultTTL = 300 * time.Second

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded key/value store with a fixed per-entry TTL.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is swapped out by tests to drive expiry deterministically.
	now func() time.Time
}

// New returns a cache with the given TTL; zero or negative falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, entries: map[string]entry{}, now: time.Now}
}

// Get returns the stored value, or a miss when the key is absent or past
// expiry. Expired entries are removed on the way out.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores the value, resetting its expiry clock.
func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, expiresAt: c.now().Add(c.ttl)}
}

// Delete removes one entry if present; no-op otherwise.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Flush drops every entry. Mutations call this because list-view keys
// enumerate filter/sort permutations that are not individually tracked;
// flushing the whole namespace is conservative but always correct.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]entry{}
}

// Len reports the number of live entries, counting not-yet-collected
// expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
