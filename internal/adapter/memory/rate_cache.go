package memory

import (
	"sync"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// RateCache is a mutex-guarded in-memory cache of one rate table per base
// currency. Entries are never evicted, only superseded; the set of base
// currencies is small and fixed, so the cache is bounded.
type RateCache struct {
	mu     sync.RWMutex
	tables map[domain.CurrencyCode]domain.RateTable
}

// NewRateCache creates an empty rate cache.
func NewRateCache() *RateCache {
	return &RateCache{tables: make(map[domain.CurrencyCode]domain.RateTable)}
}

// Get returns the cached table for base regardless of freshness.
func (c *RateCache) Get(base domain.CurrencyCode) (domain.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[base]
	return t, ok
}

// IsFresh reports whether an entry exists and now - FetchedAt < ttl.
func (c *RateCache) IsFresh(base domain.CurrencyCode, now time.Time, ttl time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[base]
	if !ok {
		return false
	}
	return now.Sub(t.FetchedAt) < ttl
}

// Put overwrites any existing entry for the table's base currency.
func (c *RateCache) Put(table domain.RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[table.Base] = table
}
