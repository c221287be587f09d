package videostore

import (
	"fmt"
	"sync"

	"buzzcut/internal/buzz"
	"buzzcut/internal/fileutil"
)

// maxSnapshots bounds the per-video history kept in video_snapshots.json.
const maxSnapshots = 10

// Store persists the video catalog and snapshot history as two JSON
// documents. All mutations run the full read-mutate-write inside the
// store mutex.
type Store struct {
	mu            sync.Mutex
	videosPath    string
	snapshotsPath string
}

// NewStore creates a store writing videos to videosPath and snapshot
// history to snapshotsPath.
func NewStore(videosPath, snapshotsPath string) *Store {
	return &Store{videosPath: videosPath, snapshotsPath: snapshotsPath}
}

// SaveVideo appends a record to the catalog. The catalog is append-only
// and deduplicated by video id: the first write wins and a later save of
// the same id reports false without touching the stored record.
func (s *Store) SaveVideo(rec buzz.VideoRecord) (bool, error) {
	if rec.VideoID == "" {
		return false, fmt.Errorf("video id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.loadVideos()
	if err != nil {
		return false, err
	}
	for _, existing := range videos {
		if existing.VideoID == rec.VideoID {
			return false, nil
		}
	}

	videos = append(videos, rec)
	if err := fileutil.WriteJSON(s.videosPath, videos); err != nil {
		return false, fmt.Errorf("save videos: %w", err)
	}
	return true, nil
}

// Video returns the stored record for the given id, or nil when absent.
func (s *Store) Video(videoID string) (*buzz.VideoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.loadVideos()
	if err != nil {
		return nil, err
	}
	for _, rec := range videos {
		if rec.VideoID == videoID {
			cp := rec
			return &cp, nil
		}
	}
	return nil, nil
}

// Videos returns the full catalog in insertion order.
func (s *Store) Videos() ([]buzz.VideoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.loadVideos()
	if err != nil {
		return nil, err
	}
	return append([]buzz.VideoRecord(nil), videos...), nil
}

// AppendSnapshot records one view-count observation for a video. Only the
// most recent entries are kept; the oldest is evicted past the cap.
func (s *Store) AppendSnapshot(videoID string, snap buzz.Snapshot) error {
	if videoID == "" {
		return fmt.Errorf("video id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.loadSnapshots()
	if err != nil {
		return err
	}
	entries := append(history[videoID], snap)
	if len(entries) > maxSnapshots {
		entries = entries[len(entries)-maxSnapshots:]
	}
	history[videoID] = entries

	if err := fileutil.WriteJSON(s.snapshotsPath, history); err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}
	return nil
}

// Snapshots returns the stored history for a video, oldest first.
func (s *Store) Snapshots(videoID string) ([]buzz.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.loadSnapshots()
	if err != nil {
		return nil, err
	}
	return append([]buzz.Snapshot(nil), history[videoID]...), nil
}

func (s *Store) loadVideos() ([]buzz.VideoRecord, error) {
	var videos []buzz.VideoRecord
	if _, err := fileutil.ReadJSON(s.videosPath, &videos); err != nil {
		return nil, fmt.Errorf("load videos: %w", err)
	}
	return videos, nil
}

func (s *Store) loadSnapshots() (map[string][]buzz.Snapshot, error) {
	history := make(map[string][]buzz.Snapshot)
	if _, err := fileutil.ReadJSON(s.snapshotsPath, &history); err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	if history == nil {
		history = make(map[string][]buzz.Snapshot)
	}
	return history, nil
}
