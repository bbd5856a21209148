package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/arjunmehra/shopscout/internal/types"
)

func TestCacheHitAndMiss(t *testing.T) {
	c := New(5 * time.Minute)

	if _, err := c.Get("cheapest phone", "https://shop.example.com/s?k=phone"); !errors.Is(err, types.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}

	c.Set("cheapest phone", "https://shop.example.com/s?k=phone", "the answer")

	got, err := c.Get("cheapest phone", "https://shop.example.com/s?k=phone")
	if err != nil {
		t.Fatalf("expected hit, got %v", err)
	}
	if got != "the answer" {
		t.Errorf("answer = %q", got)
	}
}

func TestCacheKeyNormalizesQuery(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("Cheapest Phone", "https://shop.example.com/", "a")

	if _, err := c.Get("  cheapest phone  ", "https://shop.example.com/"); err != nil {
		t.Errorf("case/whitespace variants should hit the same entry: %v", err)
	}
}

func TestCacheSeparatesURLs(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("best laptop", "https://shop.example.com/a", "answer-a")

	if _, err := c.Get("best laptop", "https://shop.example.com/b"); !errors.Is(err, types.ErrCacheMiss) {
		t.Error("same query on another URL must miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(5 * time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("q", "u", "stale soon")

	// Just inside the TTL.
	now = now.Add(5 * time.Minute)
	if _, err := c.Get("q", "u"); err != nil {
		t.Fatalf("entry at exactly the TTL should still hit: %v", err)
	}

	// Past the TTL: lazy eviction on read.
	now = now.Add(time.Second)
	if _, err := c.Get("q", "u"); !errors.Is(err, types.ErrCacheMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted, Len = %d", c.Len())
	}
}

func TestCacheClear(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("a", "u", "1")
	c.Set("b", "u", "2")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}
