package stats

// Results live in an in-process LRU. Entries carry their own expiry because
// golang-lru v1 has no notion of age. The LRU is safe for concurrent use on
// its own; mu only makes the get, expiry check and remove in get atomic, so a
// fresh value added between the check and the remove is never dropped.

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

type resultCache struct {
	mu  sync.Mutex
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func newResultCache(size int, ttl time.Duration, now func() time.Time) (*resultCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &resultCache{lru: c, ttl: ttl, now: now}, nil
}

func (c *resultCache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	entry := raw.(cacheEntry)
	if !c.now().Before(entry.expires) {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (c *resultCache) add(key string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, cacheEntry{value: value, expires: c.now().Add(c.ttl)})
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
