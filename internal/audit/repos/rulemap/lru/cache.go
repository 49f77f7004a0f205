package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

// setCache is an LRU-backed implementation of rulemap.SetCache. It keeps
// recently decoded per-domain rules in memory and tracks basic metrics:
// hits, misses, and evictions.
type setCache struct {
	lru       *lru.Cache[string, rulemap.DomainRules]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op SetCache used when size <= 0.
type disabledCache struct{}

// New creates a new SetCache with the given capacity. If size <= 0, a
// disabled no-op cache is returned that always misses and tracks no metrics.
func New(size int) (rulemap.SetCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var sc setCache
	// Use NewWithEvict to observe evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ rulemap.DomainRules) {
		atomic.AddUint64(&sc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	sc.lru = cache
	return &sc, nil
}

// Get looks up rules by domain. When found, increments hits; otherwise increments misses.
func (c *setCache) Get(domain string) (rulemap.DomainRules, bool) {
	if val, ok := c.lru.Get(domain); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return nil, false
}

// Put stores rules by domain.
func (c *setCache) Put(domain string, r rulemap.DomainRules) {
	c.lru.Add(domain, r)
}

// Len returns the number of entries in the cache.
func (c *setCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *setCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *setCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

// disabledCache implementation

func (d *disabledCache) Get(string) (rulemap.DomainRules, bool) { return nil, false }

func (d *disabledCache) Put(string, rulemap.DomainRules) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ rulemap.SetCache = (*setCache)(nil)
var _ rulemap.SetCache = (*disabledCache)(nil)
