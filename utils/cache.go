package utils

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is used when Set is called with a non-positive TTL
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	key       string
	data      interface{}
	expiresAt time.Time
}

// Cache is a size-bounded in-memory TTL cache used by the read-heavy list
// endpoints. Entries expire lazily on Get; CleanExpired does an eager full
// scan. When the capacity bound is hit the least recently used entry is
// dropped. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	lru      *list.List // front = most recently used
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache holding at most capacity entries with the given
// default TTL. A capacity <= 0 falls back to 256, a ttl <= 0 to 5 minutes.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the cache's time source. Tests use this to make expiry
// deterministic.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached value for key, or (nil, false) when absent or
// expired. An expired entry is evicted on the spot.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	if !c.now().Before(entry.expiresAt) {
		c.removeElement(el)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return entry.data, true
}

// Set stores data under key. A non-positive ttl uses the cache default.
// Storing past capacity evicts the least recently used entry.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.data = data
		entry.expiresAt = c.now().Add(ttl)
		c.lru.MoveToFront(el)
		return
	}

	el := c.lru.PushFront(&cacheEntry{
		key:       key,
		data:      data,
		expiresAt: c.now().Add(ttl),
	})
	c.entries[key] = el

	if c.lru.Len() > c.capacity {
		if back := c.lru.Back(); back != nil {
			c.removeElement(back)
		}
	}
}

// Delete removes key from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
}

// DeletePrefix removes every key starting with prefix. Controllers use this
// to invalidate a whole entity family after a mutation.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *list.Element
	for el := c.lru.Front(); el != nil; el = next {
		next = el.Next()
		entry := el.Value.(*cacheEntry)
		if len(entry.key) >= len(prefix) && entry.key[:len(prefix)] == prefix {
			c.removeElement(el)
		}
	}
}

// CleanExpired eagerly removes every expired entry and returns how many were
// dropped
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	var next *list.Element
	for el := c.lru.Front(); el != nil; el = next {
		next = el.Next()
		entry := el.Value.(*cacheEntry)
		if !c.now().Before(entry.expiresAt) {
			c.removeElement(el)
			removed++
		}
	}
	return removed
}

// CleanLoop runs CleanExpired on a ticker until ctx is cancelled
func (c *Cache) CleanLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCacheTTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanExpired()
		}
	}
}

// Len returns the number of entries currently held, expired or not
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *Cache) removeElement(el *list.Element) {
	entry := el.Value.(*cacheEntry)
	c.lru.Remove(el)
	delete(c.entries, entry.key)
}
