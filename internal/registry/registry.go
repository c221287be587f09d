// Package registry is the idempotency ledger for processed moments. It
// guarantees at most one clip-generation attempt per (video, time bucket)
// across runs while letting an existing moment gain additional platforms
// without regenerating media.
package registry

import (
	"fmt"
	"sync"
	"time"

	"buzzcut/internal/fileutil"
)

// Record is one processed moment. VideoID, TimestampSec and CreatedAt are
// immutable once written; Platforms only ever grows.
type Record struct {
	VideoID      string    `json:"video_id"`
	TimestampSec int       `json:"timestamp_sec"`
	Platforms    []string  `json:"platforms"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists the ledger as a single JSON document. Every operation
// performs the full read-mutate-write under the store mutex; callers must
// never interleave their own read/write pairs around it.
type Store struct {
	mu            sync.Mutex
	path          string
	bucketSeconds int
	now           func() time.Time
}

// NewStore creates a ledger at path. A non-positive bucket width falls back
// to the 10-second default.
func NewStore(path string, bucketSeconds int) *Store {
	if bucketSeconds <= 0 {
		bucketSeconds = 10
	}
	return &Store{path: path, bucketSeconds: bucketSeconds, now: time.Now}
}

// BucketKey collapses a raw timestamp into its bucket identifier. Two
// timestamps in the same bucket map to the same record on purpose.
func (s *Store) BucketKey(videoID string, timestampSec int) string {
	return fmt.Sprintf("%s_%d", videoID, timestampSec/s.bucketSeconds)
}

// IsProcessed reports whether any moment in the same bucket has already
// produced a clip.
func (s *Store) IsProcessed(videoID string, timestampSec int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := records[s.BucketKey(videoID, timestampSec)]
	return ok, nil
}

// MarkProcessed records a moment for a platform. A new bucket gets a fresh
// record; an existing bucket only unions the platform in, leaving the
// original timestamp and creation time untouched.
func (s *Store) MarkProcessed(videoID string, timestampSec int, platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	key := s.BucketKey(videoID, timestampSec)
	rec, ok := records[key]
	if !ok {
		rec = Record{
			VideoID:      videoID,
			TimestampSec: timestampSec,
			Platforms:    []string{platform},
			CreatedAt:    s.now().UTC(),
		}
	} else if !contains(rec.Platforms, platform) {
		rec.Platforms = append(rec.Platforms, platform)
	}
	records[key] = rec

	return fileutil.WriteJSON(s.path, records)
}

// Records returns a copy of the full ledger keyed by bucket.
func (s *Store) Records() (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(records))
	for k, v := range records {
		out[k] = v
	}
	return out, nil
}

func (s *Store) load() (map[string]Record, error) {
	records := make(map[string]Record)
	if _, err := fileutil.ReadJSON(s.path, &records); err != nil {
		return nil, fmt.Errorf("load processed moments: %w", err)
	}
	return records, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
