package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a bounded in-process TTL store for hot reads (channel lists,
// search results). When full, the oldest inserted entry is evicted —
// insertion order, not LRU: a read does not refresh an entry's position.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string
	maxEntries int
	defaultTTL time.Duration
	now        func() time.Time
}

func New(maxEntries int, defaultTTL time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Set stores value under key. A zero ttl uses the cache default.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.order = append(c.order, key)
}

// Get returns the live value for key. Expired entries are deleted on read
// and reported as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil, false
	}

	return e.value, true
}

// Invalidate removes every entry whose key contains substr.
func (c *Cache) Invalidate(substr string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, key := range c.order {
		if strings.Contains(key, substr) {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
