package metadata

import (
	"sync"
	"time"

	"solana-batch-auction/internal/domain"
)

// cacheEntry holds a cached metadata record and its expiry.
type cacheEntry struct {
	meta      domain.TokenMetadata
	expiresAt time.Time
}

// cache is a TTL-bounded map of token metadata keyed by mint address. When
// full, inserting evicts the entry closest to expiry.
type cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newCache(ttl time.Duration, maxEntries int) *cache {
	return &cache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *cache) get(address string) (domain.TokenMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[address]
	if !ok {
		return domain.TokenMetadata{}, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, address)
		return domain.TokenMetadata{}, false
	}
	return entry.meta, true
}

func (c *cache) put(meta domain.TokenMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[meta.Address]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[meta.Address] = cacheEntry{
		meta:      meta,
		expiresAt: c.now().Add(c.ttl),
	}
}

// evictLocked removes the entry closest to expiry. Callers hold c.mu.
func (c *cache) evictLocked() {
	var victim string
	var earliest time.Time
	for addr, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(earliest) {
			victim = addr
			earliest = entry.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
