package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kavach-labs/kavach/internal/model"
)

// MemoryStore keeps records in memory with TTL-based expiry
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a memory store. Records expire after ttl; the
// janitor runs at cleanupInterval.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = DefaultDedupTTL
	}
	return &MemoryStore{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Get retrieves a record from the store
func (s *MemoryStore) Get(key string) (*model.CallRecord, bool) {
	if val, found := s.cache.Get(key); found {
		return val.(*model.CallRecord), true
	}
	return nil, false
}

// Put stores a record with the default TTL
func (s *MemoryStore) Put(key string, record *model.CallRecord) error {
	s.cache.Set(key, record, gocache.DefaultExpiration)
	return nil
}

// Delete removes a record
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all records
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
