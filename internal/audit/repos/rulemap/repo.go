package rulemap

import "sync"

// repository implements Repository by composing a Store, a Bloom filter
// (via factory), and a SetCache. Reads follow a bloom -> cache -> store
// pipeline; RebuildAll performs an atomic snapshot update.
type repository struct {
	mu      sync.RWMutex
	store   Store
	cache   SetCache
	bloom   BloomFilter
	factory BloomFactory
	fpRate  float64
}

// NewRepository constructs a Repository.
// fpRate is the target false-positive rate for the Bloom filter when rebuilding.
func NewRepository(store Store, cache SetCache, factory BloomFactory, fpRate float64) Repository {
	r := &repository{store: store, cache: cache, factory: factory, fpRate: fpRate}
	r.rebuildBloom()
	return r
}

// Rules returns the persisted rules for a domain. Policy: on internal
// errors, report the domain as absent (implicit allow-all downstream).
func (r *repository) Rules(domain string) (DomainRules, bool) {
	// 1) bloom: early-out if definitively absent
	if !r.checkBloom(domain) {
		return nil, false
	}
	// 2) cache
	r.mu.RLock()
	cached, ok := r.cache.Get(domain)
	r.mu.RUnlock()
	if ok {
		return cached, true
	}
	// 3) store
	rules, found, err := r.store.Get(domain)
	if err != nil || !found {
		return nil, false
	}
	// 4) cache the decoded result
	r.mu.Lock()
	r.cache.Put(domain, rules)
	r.mu.Unlock()
	return rules, true
}

// RebuildAll replaces the persisted snapshot, refreshes the Bloom filter,
// and purges the cache.
func (r *repository) RebuildAll(m Map, version uint64, updatedUnix int64) error {
	if err := r.store.RebuildAll(m, version, updatedUnix); err != nil {
		return err
	}

	bf := r.factory.New(uint64(len(m)), r.fpRate)
	for dom := range m {
		bf.Add([]byte(dom))
	}

	r.mu.Lock()
	r.bloom = bf
	r.cache.Purge()
	r.mu.Unlock()
	return nil
}

// RepoStats returns cache counters plus the underlying store stats.
func (r *repository) RepoStats() RepoStats {
	hits, misses, evictions := r.cache.Stats()
	return RepoStats{
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		Store:     r.store.Stats(),
	}
}

// Close releases the underlying store.
func (r *repository) Close() error { return r.store.Close() }

// checkBloom returns true if we should consult cache/store (maybe-present),
// or false if we can early-out (definitely absent). If no bloom is loaded,
// returns true to allow authoritative checking.
func (r *repository) checkBloom(domain string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true
	}
	return bf.MightContain([]byte(domain))
}

// rebuildBloom seeds the filter from an existing store snapshot so a
// reopened repository keeps its negative-lookup fast path.
func (r *repository) rebuildBloom() {
	domains, err := r.store.Domains()
	if err != nil || len(domains) == 0 {
		return
	}
	bf := r.factory.New(uint64(len(domains)), r.fpRate)
	for _, d := range domains {
		bf.Add([]byte(d))
	}
	r.mu.Lock()
	r.bloom = bf
	r.mu.Unlock()
}
