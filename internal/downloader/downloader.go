// Package downloader fetches source videos through yt-dlp with a local
// cache so a video is downloaded exactly once across scans.
package downloader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"buzzcut/internal/services"
)

// Downloader caches yt-dlp fetches under BaseDir/<video_id>/video.mp4.
type Downloader struct {
	Binary  string
	BaseDir string

	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New returns a downloader storing videos under baseDir. An empty binary
// uses yt-dlp from PATH.
func New(binary, baseDir string) *Downloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Downloader{Binary: binary, BaseDir: baseDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (d *Downloader) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	d.commandRunner = runner
}

// VideoPath returns where the cached file for a video lives.
func (d *Downloader) VideoPath(videoID string) string {
	return filepath.Join(d.BaseDir, videoID, "video.mp4")
}

// Fetch returns the local path for a video, downloading it on the first
// call. A single pre-merged mp4 format keeps ffmpeg out of the download.
func (d *Downloader) Fetch(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", services.Wrap(services.ErrValidation, "download", "fetch", "video id required", nil)
	}

	videoPath := d.VideoPath(videoID)
	if _, err := os.Stat(videoPath); err == nil {
		return videoPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(videoPath), 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "download", "fetch", "create cache dir", err)
	}

	url := "https://www.youtube.com/watch?v=" + videoID
	args := []string{"-f", "mp4", "-o", videoPath, url}
	if err := d.run(ctx, d.Binary, args...); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "fetch", videoID, err)
	}

	if _, err := os.Stat(videoPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "download", "fetch", "file missing after download", err)
	}
	return videoPath, nil
}

func (d *Downloader) run(ctx context.Context, name string, args ...string) error {
	if d.commandRunner != nil {
		return d.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
