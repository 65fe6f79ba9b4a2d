package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := New[string](2, 0)
	if c == nil {
		t.Fatalf("expected cache instance")
	}

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.Set("key", "value", now)

	value, ok := c.Get("key", now)
	if !ok {
		t.Fatalf("expected cached value to be present")
	}

	if value != "value" {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestLRUWithoutTTLNeverExpires(t *testing.T) {
	c := New[string](2, 0)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.Set("key", "value", now)

	if _, ok := c.Get("key", now.Add(365*24*time.Hour)); !ok {
		t.Fatalf("expected entry without TTL to stay cached")
	}
}

func TestLRUExpiresEntries(t *testing.T) {
	c := New[string](2, time.Minute)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.Set("key", "value", now)

	if _, ok := c.Get("key", now.Add(2*time.Minute)); ok {
		t.Fatalf("expected cache entry to expire")
	}

	if len(c.entries) != 0 {
		t.Fatalf("expected expired cache entry to be removed")
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string](2, 0)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	c.Set("a", "value-a", now)
	c.Set("b", "value-b", now)

	if _, ok := c.Get("a", now); !ok {
		t.Fatalf("expected entry a to exist before eviction check")
	}

	c.Set("c", "value-c", now)

	if _, ok := c.Get("a", now); !ok {
		t.Fatalf("expected entry a to remain after evicting least recently used")
	}

	if _, ok := c.Get("b", now); ok {
		t.Fatalf("expected entry b to be evicted")
	}

	if _, ok := c.Get("c", now); !ok {
		t.Fatalf("expected entry c to be cached")
	}

	if got := c.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestLRUSetOverwritesValue(t *testing.T) {
	c := New[int](2, 0)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	c.Set("key", 1, now)
	c.Set("key", 2, now)

	value, ok := c.Get("key", now)
	if !ok || value != 2 {
		t.Fatalf("expected overwritten value 2, got %d (ok = %t)", value, ok)
	}

	if got := c.Len(); got != 1 {
		t.Fatalf("expected single entry, got %d", got)
	}
}

func TestLRUNilIsNoop(t *testing.T) {
	c := New[string](0, 0)
	if c != nil {
		t.Fatalf("expected nil cache for zero capacity")
	}

	now := time.Now()
	c.Set("key", "value", now)

	if _, ok := c.Get("key", now); ok {
		t.Fatalf("expected nil cache to never hit")
	}

	if got := c.Len(); got != 0 {
		t.Fatalf("expected nil cache length 0, got %d", got)
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := New[int](128, 0)
	now := time.Now()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Go(func() {
			for i := range 500 {
				key := fmt.Sprintf("%d-%d", w, i%200)
				c.Set(key, i, now)
				c.Get(key, now)
			}
		})
	}
	wg.Wait()

	if got := c.Len(); got > 128 {
		t.Fatalf("expected at most 128 entries, got %d", got)
	}
}
