package publishqueue

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"buzzcut/internal/fileutil"
)

var (
	// ErrNothingToRestore is returned when a restore is requested for a
	// clip whose caption was never edited.
	ErrNothingToRestore = errors.New("no original caption recorded")

	// ErrNotApproved is returned when a clip is marked posted without
	// having been approved first.
	ErrNotApproved = errors.New("clip must be approved before posted")
)

type document struct {
	Clips []ClipTask `json:"clips"`
}

// Store persists the publish queue as one JSON document. All mutations run
// the full read-mutate-write inside the store mutex.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore creates a queue store backed by the document at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Enqueue appends a new pending task. Enqueueing an ID already present is a
// no-op reported through the boolean; at-most-once semantics are the point.
func (s *Store) Enqueue(task ClipTask) (bool, error) {
	if task.ID == "" {
		return false, errors.New("clip id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	for _, c := range doc.Clips {
		if c.ID == task.ID {
			return false, nil
		}
	}

	if len(task.Platforms) == 0 {
		task.Platforms = []string{"tiktok", "snap"}
	}
	task.Status = StatusPending
	task.Edited = false
	task.CreatedAt = s.now().UTC()
	task.ApprovedAt = nil
	task.PostedAt = nil
	task.CaptionOriginal = nil
	task.UpdatedAt = nil

	doc.Clips = append(doc.Clips, task)
	if err := s.save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns a copy of the task with the given ID, or nil when absent.
func (s *Store) Get(clipID string) (*ClipTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Clips {
		if c.ID == clipID {
			clip := c
			return &clip, nil
		}
	}
	return nil, nil
}

// SetStatus transitions a task. Approval stamps approved_at; posting stamps
// posted_at and is only legal from approved. An unknown ID reports false
// without error so a reviewer's loop keeps going.
func (s *Store) SetStatus(clipID string, status Status) (bool, error) {
	if _, ok := statusSet[status]; !ok {
		return false, fmt.Errorf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range doc.Clips {
		clip := &doc.Clips[i]
		if clip.ID != clipID {
			continue
		}
		if status == StatusPosted && clip.Status != StatusApproved {
			return false, ErrNotApproved
		}

		now := s.now().UTC()
		clip.Status = status
		switch status {
		case StatusApproved:
			clip.ApprovedAt = &now
		case StatusPosted:
			clip.PostedAt = &now
		}
		clip.UpdatedAt = &now

		if err := s.save(doc); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// NextPending returns the first pending task in stable enqueue order, or
// nil when the queue has nothing left to review.
func (s *Store) NextPending() (*ClipTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Clips {
		if c.Status == StatusPending {
			clip := c
			return &clip, nil
		}
	}
	return nil, nil
}

// List returns all tasks in enqueue order.
func (s *Store) List() ([]ClipTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]ClipTask(nil), doc.Clips...), nil
}

// ClipsByStatus returns tasks matching status in enqueue order.
func (s *Store) ClipsByStatus(status Status) ([]ClipTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []ClipTask
	for _, c := range doc.Clips {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

// EditCaption replaces the caption text on disk and in the task. The first
// edit snapshots the current file content into caption_original; later
// edits leave the snapshot alone.
func (s *Store) EditCaption(clipID, newText string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range doc.Clips {
		clip := &doc.Clips[i]
		if clip.ID != clipID {
			continue
		}

		if clip.CaptionOriginal == nil {
			original := ""
			if data, readErr := os.ReadFile(clip.CaptionPath); readErr == nil {
				original = string(data)
			}
			clip.CaptionOriginal = &original
		}

		if err := fileutil.WriteFileAtomic(clip.CaptionPath, []byte(newText), 0o644); err != nil {
			return false, fmt.Errorf("write caption file: %w", err)
		}

		now := s.now().UTC()
		clip.CaptionCurrent = newText
		clip.Edited = true
		clip.UpdatedAt = &now

		if err := s.save(doc); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// RestoreCaption rewrites the caption file and caption_current from the
// original snapshot. The edited flag stays set: the task was touched, even
// if the text is back to what the generator produced.
func (s *Store) RestoreCaption(clipID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	for i := range doc.Clips {
		clip := &doc.Clips[i]
		if clip.ID != clipID {
			continue
		}
		if clip.CaptionOriginal == nil {
			return false, ErrNothingToRestore
		}

		if err := fileutil.WriteFileAtomic(clip.CaptionPath, []byte(*clip.CaptionOriginal), 0o644); err != nil {
			return false, fmt.Errorf("write caption file: %w", err)
		}

		now := s.now().UTC()
		clip.CaptionCurrent = *clip.CaptionOriginal
		clip.UpdatedAt = &now

		if err := s.save(doc); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Stats recounts the queue by status.
func (s *Store) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(doc.Clips)}
	for _, c := range doc.Clips {
		switch c.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (s *Store) load() (*document, error) {
	doc := &document{}
	if _, err := fileutil.ReadJSON(s.path, doc); err != nil {
		return nil, fmt.Errorf("load publish queue: %w", err)
	}
	return doc, nil
}

func (s *Store) save(doc *document) error {
	if doc.Clips == nil {
		doc.Clips = []ClipTask{}
	}
	return fileutil.WriteJSON(s.path, doc)
}
