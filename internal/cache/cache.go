// Package cache holds recently computed answers so repeated questions on
// the same page are served without another scrape-and-ask round trip.
// Entries expire lazily on read; there is no background sweeper.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/arjunmehra/shopscout/internal/types"
)

type entry struct {
	answer    string
	createdAt time.Time
}

// ResultCache is a TTL map keyed by normalized query plus page URL. Safe
// for concurrent use.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// New creates a ResultCache with the given entry lifetime.
func New(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached answer for a query on a page. Expired entries are
// evicted on the spot and reported as misses via types.ErrCacheMiss.
func (c *ResultCache) Get(query, pageURL string) (string, error) {
	k := key(query, pageURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return "", types.ErrCacheMiss
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, k)
		return "", types.ErrCacheMiss
	}
	return e.answer, nil
}

// Set stores an answer for a query on a page, replacing any prior entry.
func (c *ResultCache) Set(query, pageURL, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(query, pageURL)] = entry{answer: answer, createdAt: c.now()}
}

// Clear drops all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// key normalizes the query so casing and surrounding whitespace do not
// fragment the cache. The URL is kept verbatim.
func key(query, pageURL string) string {
	return strings.ToLower(strings.TrimSpace(query)) + "::" + pageURL
}
