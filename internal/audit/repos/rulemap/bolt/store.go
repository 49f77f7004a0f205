package bolt

import (
	"encoding/binary"
	"encoding/json"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

var (
	bucketRules = []byte("rules")
	bucketMeta  = []byte("meta")
)

// boltStore implements rulemap.Store using bbolt. One key per domain in the
// rules bucket, value is the JSON-encoded DomainRules; snapshot version and
// update time live in the meta bucket.
type boltStore struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
func New(path string) (rulemap.Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRules); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

func (s *boltStore) Get(domain string) (rulemap.DomainRules, bool, error) {
	var (
		out   rulemap.DomainRules
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRules)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(domain))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &out); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (s *boltStore) Domains() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRules)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RebuildAll replaces the entire snapshot in one transaction so readers
// never observe a half-written map.
func (s *boltStore) RebuildAll(m rulemap.Map, version uint64, updatedUnix int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketRules); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(bucketRules)
		if err != nil {
			return err
		}
		for dom, rules := range m {
			v, err := json.Marshal(rules)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(dom), v); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		vbuf := make([]byte, 8)
		ubuf := make([]byte, 8)
		binary.BigEndian.PutUint64(vbuf, version)
		binary.BigEndian.PutUint64(ubuf, uint64(updatedUnix))
		if err := meta.Put([]byte("version"), vbuf); err != nil {
			return err
		}
		return meta.Put([]byte("updated"), ubuf)
	})
}

func (s *boltStore) Stats() rulemap.StoreStats {
	st := rulemap.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketRules); b != nil {
			st.DomainCount = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get([]byte("version")); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get([]byte("updated")); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}
