package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"buzzcut/internal/config"
)

const userAgent = "Buzzcut-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyScanStarted(ctx context.Context, channelCount int) error
	NotifyScanCompleted(ctx context.Context, videos, clips int, duration time.Duration) error
	NotifyBuzzDetected(ctx context.Context, videoTitle, verdict string) error
	NotifyClipQueued(ctx context.Context, clipID, videoTitle string) error
	NotifyClipApproved(ctx context.Context, clipID string) error
	NotifyClipRejected(ctx context.Context, clipID string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:    topic,
		client:      &http.Client{Timeout: timeout},
		scanEvents:  cfg.Notifications.Scan,
		clipEvents:  cfg.Notifications.Clips,
		reviewEvent: cfg.Notifications.Review,
		errorEvents: cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint    string
	client      *http.Client
	scanEvents  bool
	clipEvents  bool
	reviewEvent bool
	errorEvents bool
}

func (n *ntfyService) NotifyScanStarted(ctx context.Context, channelCount int) error {
	if !n.scanEvents {
		return nil
	}
	data := payload{
		title:   "Buzzcut - Scan Started",
		message: fmt.Sprintf("🔍 Scanning %d channels for buzz", channelCount),
		tags:    []string{"buzzcut", "scan", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, videos, clips int, duration time.Duration) error {
	if !n.scanEvents {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	data := payload{
		title:   "Buzzcut - Scan Complete",
		message: fmt.Sprintf("Scan complete: %d videos evaluated, %d clips created in %s", videos, clips, durationText),
		tags:    []string{"buzzcut", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBuzzDetected(ctx context.Context, videoTitle, verdict string) error {
	if !n.scanEvents {
		return nil
	}
	videoTitle = strings.TrimSpace(videoTitle)
	verdict = strings.TrimSpace(verdict)
	if verdict == "" {
		verdict = "unknown"
	}
	data := payload{
		title:    "Buzzcut - Buzz Detected",
		message:  fmt.Sprintf("🔥 %s (%s)", videoTitle, verdict),
		tags:     []string{"buzzcut", "buzz", "detected"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyClipQueued(ctx context.Context, clipID, videoTitle string) error {
	if !n.clipEvents {
		return nil
	}
	clipID = strings.TrimSpace(clipID)
	videoTitle = strings.TrimSpace(videoTitle)
	message := fmt.Sprintf("🎬 Clip ready for review: %s", clipID)
	if videoTitle != "" {
		message = fmt.Sprintf("%s\nFrom: %s", message, videoTitle)
	}
	data := payload{
		title:   "Buzzcut - Clip Queued",
		message: message,
		tags:    []string{"buzzcut", "clip", "queued"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyClipApproved(ctx context.Context, clipID string) error {
	if !n.reviewEvent {
		return nil
	}
	data := payload{
		title:   "Buzzcut - Clip Approved",
		message: fmt.Sprintf("✅ Approved for publishing: %s", strings.TrimSpace(clipID)),
		tags:    []string{"buzzcut", "review", "approved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyClipRejected(ctx context.Context, clipID string) error {
	if !n.reviewEvent {
		return nil
	}
	data := payload{
		title:   "Buzzcut - Clip Rejected",
		message: fmt.Sprintf("Rejected: %s", strings.TrimSpace(clipID)),
		tags:    []string{"buzzcut", "review", "rejected"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorEvents {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Buzzcut - Error",
		message:  builder.String(),
		tags:     []string{"buzzcut", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Buzzcut - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"buzzcut", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanStarted(context.Context, int) error { return nil }
func (noopService) NotifyScanCompleted(context.Context, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyBuzzDetected(context.Context, string, string) error { return nil }
func (noopService) NotifyClipQueued(context.Context, string, string) error   { return nil }
func (noopService) NotifyClipApproved(context.Context, string) error         { return nil }
func (noopService) NotifyClipRejected(context.Context, string) error         { return nil }
func (noopService) NotifyError(context.Context, error, string) error         { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
