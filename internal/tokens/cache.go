package tokens

import (
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fake clock.
type Clock func() time.Time

// Cache memoises token tables per document key. Entries expire according to
// the TTL supplied on lookup, not on insert.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     Clock
}

type cacheEntry struct {
	tokens    DesignTokens
	fetchedAt time.Time
}

// CacheOption customises a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source used for entry ages.
func WithClock(clock Clock) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewCache constructs an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: map[string]cacheEntry{},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns a copy of the entry for key when ttl is positive and the entry
// is younger than ttl.
func (c *Cache) Get(key string, ttl time.Duration) (DesignTokens, bool) {
	if c == nil || ttl <= 0 {
		return DesignTokens{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return DesignTokens{}, false
	}
	if c.now().Sub(entry.fetchedAt) >= ttl {
		return DesignTokens{}, false
	}
	return entry.tokens.Clone(), true
}

// Put stores a copy of tokens under key, stamped with the current time.
func (c *Cache) Put(key string, tokens DesignTokens) {
	if c == nil {
		return
	}
	entry := cacheEntry{tokens: tokens.Clone(), fetchedAt: c.now()}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Invalidate drops the given keys, or every entry when called without keys.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		clear(c.entries)
		return
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
