package publishqueue

import (
	"strings"
	"time"
)

// Status represents the moderation lifecycle of a clip task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPosted   Status = "posted"
)

var allStatuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusPosted,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// ClipTask is one candidate short-form clip awaiting moderation.
// CaptionOriginal is set at most once, on the first caption edit, so the
// reviewer can always get back to the generated text.
type ClipTask struct {
	ID              string     `json:"id"`
	ClipPath        string     `json:"clip_path"`
	CaptionPath     string     `json:"caption_path"`
	Creator         string     `json:"creator"`
	VideoID         string     `json:"video_id"`
	MomentSec       int        `json:"moment_sec"`
	Platforms       []string   `json:"platforms"`
	Status          Status     `json:"status"`
	Edited          bool       `json:"edited"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at"`
	PostedAt        *time.Time `json:"posted_at"`
	CaptionOriginal *string    `json:"caption_original,omitempty"`
	CaptionCurrent  string     `json:"caption_current,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Stats aggregates queue counts for operator display. Always recomputed
// from the full queue, never cached.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
