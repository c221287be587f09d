package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"buzzcut/internal/logging"
	"buzzcut/internal/notifications"
	"buzzcut/internal/publishqueue"
)

// Service exposes the human moderation operations over the publish queue:
// approve, reject, defer, edit, and restore. Unknown clip ids are reported
// through the boolean result so a review loop keeps going.
type Service struct {
	queue    *publishqueue.Store
	notifier notifications.Service
	logger   *slog.Logger
}

// NewService builds a review service. A nil notifier disables notifications.
func NewService(queue *publishqueue.Store, notifier notifications.Service, logger *slog.Logger) (*Service, error) {
	if queue == nil {
		return nil, errors.New("review requires a publish queue")
	}
	return &Service{
		queue:    queue,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "review"),
	}, nil
}

// Next returns the oldest pending clip, or nil when the queue is drained.
func (s *Service) Next() (*publishqueue.ClipTask, error) {
	return s.queue.NextPending()
}

// Approve marks a clip ready for publishing.
func (s *Service) Approve(ctx context.Context, clipID string) (bool, error) {
	ok, err := s.queue.SetStatus(clipID, publishqueue.StatusApproved)
	if err != nil || !ok {
		return ok, err
	}
	s.logger.Info("clip approved", logging.String(logging.FieldClipID, clipID))
	if s.notifier != nil {
		if notifyErr := s.notifier.NotifyClipApproved(ctx, clipID); notifyErr != nil {
			s.logger.Warn("approve notification failed", logging.Error(notifyErr))
		}
	}
	return true, nil
}

// Reject discards a clip. The clip file stays on disk; only the queue entry
// changes state.
func (s *Service) Reject(ctx context.Context, clipID string) (bool, error) {
	ok, err := s.queue.SetStatus(clipID, publishqueue.StatusRejected)
	if err != nil || !ok {
		return ok, err
	}
	s.logger.Info("clip rejected", logging.String(logging.FieldClipID, clipID))
	if s.notifier != nil {
		if notifyErr := s.notifier.NotifyClipRejected(ctx, clipID); notifyErr != nil {
			s.logger.Warn("reject notification failed", logging.Error(notifyErr))
		}
	}
	return true, nil
}

// Defer leaves the clip untouched and only reports whether it exists. The
// clip stays pending and will come back on the next review pass.
func (s *Service) Defer(clipID string) (bool, error) {
	task, err := s.queue.Get(clipID)
	if err != nil {
		return false, err
	}
	return task != nil, nil
}

// Edit replaces the clip's caption text. The first edit snapshots the
// generated caption so Restore can bring it back.
func (s *Service) Edit(clipID, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, errors.New("caption text is required")
	}
	return s.queue.EditCaption(clipID, text)
}

// Restore rewrites the caption from the original snapshot.
func (s *Service) Restore(clipID string) (bool, error) {
	return s.queue.RestoreCaption(clipID)
}

// MarkPosted records that an approved clip went out. Posting an unapproved
// clip fails with publishqueue.ErrNotApproved.
func (s *Service) MarkPosted(clipID string) (bool, error) {
	return s.queue.SetStatus(clipID, publishqueue.StatusPosted)
}

// Stats returns the queue counters for operator display.
func (s *Service) Stats() (publishqueue.Stats, error) {
	return s.queue.Stats()
}

// List returns all tasks, or only those in the given status when filter is
// non-empty.
func (s *Service) List(filter publishqueue.Status) ([]publishqueue.ClipTask, error) {
	if filter == "" {
		return s.queue.List()
	}
	return s.queue.ClipsByStatus(filter)
}
