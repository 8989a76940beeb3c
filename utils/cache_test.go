package utils

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := NewCache(capacity, ttl)
	c.SetClock(clock.Now)
	return c, clock
}

func TestCacheExpiry(t *testing.T) {
	c, clock := newTestCache(16, 100*time.Millisecond)

	c.Set("k", "v", 0)

	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Fatalf("Get before expiry = (%v, %t), want (v, true)", got, ok)
	}

	clock.Advance(150 * time.Millisecond)

	if got, ok := c.Get("k"); ok {
		t.Fatalf("Get after expiry = (%v, %t), want miss", got, ok)
	}
	if c.Len() != 0 {
		t.Fatalf("Len after expired Get = %d, want 0 (lazy eviction)", c.Len())
	}
}

func TestCachePerEntryTTL(t *testing.T) {
	c, clock := newTestCache(16, time.Hour)

	c.Set("short", 1, 100*time.Millisecond)
	c.Set("long", 2, 0) // default TTL

	clock.Advance(150 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Fatal("short-lived entry survived past its TTL")
	}
	if _, ok := c.Get("long"); !ok {
		t.Fatal("default-TTL entry expired too early")
	}
}

func TestCacheLRUBound(t *testing.T) {
	c, _ := newTestCache(3, time.Hour)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("c", 3, 0)

	// Touch "a" so "b" becomes the least recently used
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be present")
	}

	c.Set("d", 4, 0)

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted as least recently used")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("expected %s to survive eviction", key)
		}
	}
}

func TestCacheCleanExpired(t *testing.T) {
	c, clock := newTestCache(16, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("old%d", i), i, 0)
	}
	clock.Advance(150 * time.Millisecond)
	c.Set("fresh", "x", 0)

	if removed := c.CleanExpired(); removed != 5 {
		t.Fatalf("CleanExpired = %d, want 5", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("Len after clean = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh entry removed by CleanExpired")
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c, _ := newTestCache(16, time.Hour)

	c.Set("products:list:page=1", 1, 0)
	c.Set("products:list:page=2", 2, 0)
	c.Set("categories:list", 3, 0)

	c.DeletePrefix("products:")

	if c.Len() != 1 {
		t.Fatalf("Len after DeletePrefix = %d, want 1", c.Len())
	}
	if _, ok := c.Get("categories:list"); !ok {
		t.Fatal("unrelated entry removed by DeletePrefix")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(16, time.Hour)

	c.Set("k", "old", 0)
	c.Set("k", "new", 0)

	if got, _ := c.Get("k"); got != "new" {
		t.Fatalf("Get after overwrite = %v, want new", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len after overwrite = %d, want 1", c.Len())
	}
}
