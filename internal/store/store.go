package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/mediaclubs/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMembers = []byte("members")
	bucketMeta    = []byte("meta")
)

var allBuckets = [][]byte{bucketMembers, bucketMeta}

// MemberStore implements domain.Store using BoltDB.
type MemberStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewMemberStore opens the cache for one backend. An empty baseCacheDir
// selects memory-only mode.
func NewMemberStore(baseCacheDir, serverURL string) (*MemberStore, error) {
	if baseCacheDir == "" {
		return &MemberStore{cache: make(map[string][]byte), now: time.Now}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "mediaclubs.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &MemberStore{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *MemberStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *MemberStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *MemberStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *MemberStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func memberKey(id int) string {
	return "member:" + strconv.Itoa(id)
}

// savedAtKey holds the unix time a member was last saved
func savedAtKey(id int) string {
	return memberKey(id) + ":saved_at"
}

// === Members ===

func (s *MemberStore) GetMember(id int) (*domain.Member, bool) {
	var m domain.Member
	if !s.get(bucketMembers, memberKey(id), &m) {
		return nil, false
	}
	return &m, true
}

func (s *MemberStore) SaveMember(m *domain.Member) error {
	if m == nil {
		return fmt.Errorf("cannot save nil member")
	}
	if err := s.set(bucketMembers, memberKey(m.ID), m); err != nil {
		return err
	}
	// Save timestamp separately for freshness checks
	return s.set(bucketMeta, savedAtKey(m.ID), s.now().Unix())
}

// IsFresh returns true if the member was saved within maxAge.
// A non-positive maxAge means cached members never expire.
func (s *MemberStore) IsFresh(id int, maxAge time.Duration) bool {
	var savedAt int64
	if !s.get(bucketMeta, savedAtKey(id), &savedAt) {
		return false
	}
	if maxAge <= 0 {
		return true
	}
	return s.now().Sub(time.Unix(savedAt, 0)) < maxAge
}

// === Invalidation ===

func (s *MemberStore) InvalidateMember(id int) {
	s.delete(bucketMembers, memberKey(id))
	s.delete(bucketMeta, savedAtKey(id))
}

func (s *MemberStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ domain.Store = (*MemberStore)(nil)
