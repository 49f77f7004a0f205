package rulemap

// BloomSizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFilter is the minimal interface the repository needs from Bloom
// filters. It prefilters domain keys so lookups for rule-less domains skip
// the store entirely.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
	Clear()
}

// BloomFactory builds filters sized for a dataset.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// SetCache caches decoded per-domain rules with basic metrics.
type SetCache interface {
	Get(domain string) (DomainRules, bool)
	Put(domain string, r DomainRules)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// StoreStats captures high-level counts and metadata for the persistent store.
type StoreStats struct {
	DomainCount uint64
	Version     uint64
	UpdatedUnix int64 // seconds since epoch
}

// Store abstracts the persistent rule map index.
type Store interface {
	Get(domain string) (DomainRules, bool, error)
	Domains() ([]string, error)
	RebuildAll(m Map, version uint64, updatedUnix int64) error
	Stats() StoreStats
	Close() error
}

// RepoStats exposes repository-level counters and underlying store stats.
type RepoStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Store     StoreStats
}

// Repository is the composition layer that wires cache -> bloom -> store.
type Repository interface {
	Rules(domain string) (DomainRules, bool)
	RebuildAll(m Map, version uint64, updatedUnix int64) error
	RepoStats() RepoStats
	Close() error
}
