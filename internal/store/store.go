// Package store archives pipeline results and deduplicates repeat
// analyses of the same transcript.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/kavach-labs/kavach/internal/model"
)

// Store persists call records keyed by transcript hash
type Store interface {
	// Get returns the archived record for a key, if present
	Get(key string) (*model.CallRecord, bool)

	// Put archives a record under a key
	Put(key string, record *model.CallRecord) error

	// Delete removes a record
	Delete(key string) error

	// Clear removes all records
	Clear() error
}

// RecordKey derives the archive key from a transcript. Identical
// transcripts map to the same key, which is what makes deduplication
// work.
func RecordKey(transcript string) string {
	hash := sha256.Sum256([]byte(transcript))
	return "kavach:v1:" + hex.EncodeToString(hash[:])
}

// DefaultDedupTTL is how long a record suppresses re-analysis of the
// same transcript
const DefaultDedupTTL = 24 * time.Hour
