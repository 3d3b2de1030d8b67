package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kavach-labs/kavach/internal/model"
)

// DiskStore archives records as JSON files, one per call
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	if ttl == 0 {
		ttl = DefaultDedupTTL
	}
	return &DiskStore{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Record    *model.CallRecord `json:"record"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Get retrieves a record from disk
func (s *DiskStore) Get(key string) (*model.CallRecord, bool) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check expiration
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Record, true
}

// Put archives a record to disk
func (s *DiskStore) Put(key string, record *model.CallRecord) error {
	entry := diskEntry{
		Record:    record,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	path := s.path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}

	return nil
}

// Delete removes a record
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes all archived records
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path generates the file path for a record key. Colons in the key
// namespace are not valid in file names everywhere.
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".json")
}
