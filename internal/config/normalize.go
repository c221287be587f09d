package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeScan()
	c.normalizeDetection()
	c.normalizePublish()
	c.normalizeTranscribe()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StorageDir, err = expandPath(c.Paths.StorageDir); err != nil {
		return fmt.Errorf("paths.storage_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.VideosDir) == "" {
		c.Paths.VideosDir = defaultVideosDir
	}
	if c.Paths.VideosDir, err = expandPath(c.Paths.VideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ClipsDir) == "" {
		c.Paths.ClipsDir = defaultClipsDir
	}
	if c.Paths.ClipsDir, err = expandPath(c.Paths.ClipsDir); err != nil {
		return fmt.Errorf("paths.clips_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.MaxVideosPerChannel <= 0 {
		c.YouTube.MaxVideosPerChannel = defaultMaxVideos
	}

	channels := make([]string, 0, len(c.YouTube.Channels))
	seen := make(map[string]struct{}, len(c.YouTube.Channels))
	for _, name := range c.YouTube.Channels {
		normalized := strings.TrimSpace(name)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		channels = append(channels, normalized)
	}
	c.YouTube.Channels = channels
}

func (c *Config) normalizeScan() {
	if c.Scan.IntervalMinutes <= 0 {
		c.Scan.IntervalMinutes = defaultScanInterval
	}
	if c.Scan.ReportTopN <= 0 {
		c.Scan.ReportTopN = defaultReportTopN
	}
}

func (c *Config) normalizeDetection() {
	d := &c.Detection
	if d.SampleRate <= 0 {
		d.SampleRate = defaultSampleRate
	}
	if d.WindowSec <= 0 {
		d.WindowSec = defaultWindowSec
	}
	if d.ThresholdRatio <= 0 {
		d.ThresholdRatio = defaultThresholdRatio
	}
	if d.MinGapSeconds <= 0 {
		d.MinGapSeconds = defaultMinGapSeconds
	}
	if d.ClipPaddingSeconds <= 0 {
		d.ClipPaddingSeconds = defaultClipPadding
	}
	if d.MaxClipsPerVideo <= 0 {
		d.MaxClipsPerVideo = defaultMaxClips
	}
	if d.RegistryBucketSeconds <= 0 {
		d.RegistryBucketSeconds = defaultBucketSeconds
	}
	if d.AnomalyRatio <= 0 {
		d.AnomalyRatio = defaultAnomalyRatio
	}
	if d.AboveAverageRatio <= 0 {
		d.AboveAverageRatio = defaultAboveAverage
	}
	if d.PotentialVPHFloor <= 0 {
		d.PotentialVPHFloor = defaultPotentialFloor
	}
}

func (c *Config) normalizePublish() {
	platforms := make([]string, 0, len(c.Publish.Platforms))
	seen := make(map[string]struct{}, len(c.Publish.Platforms))
	for _, platform := range c.Publish.Platforms {
		normalized := strings.ToLower(strings.TrimSpace(platform))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		platforms = append(platforms, normalized)
	}
	if len(platforms) == 0 {
		platforms = []string{"tiktok", "snap"}
	}
	c.Publish.Platforms = platforms
}

func (c *Config) normalizeTranscribe() {
	c.Transcribe.Binary = strings.TrimSpace(c.Transcribe.Binary)
	if c.Transcribe.Binary == "" {
		c.Transcribe.Binary = "whisper"
	}
	c.Transcribe.Model = strings.TrimSpace(c.Transcribe.Model)
	if c.Transcribe.Model == "" {
		c.Transcribe.Model = defaultTranscribeModel
	}
	c.Transcribe.Language = strings.ToLower(strings.TrimSpace(c.Transcribe.Language))
	if c.Transcribe.Language == "" {
		c.Transcribe.Language = defaultLanguage
	}
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = "ffprobe"
	}
	if strings.TrimSpace(c.Tools.YtDlp) == "" {
		c.Tools.YtDlp = "yt-dlp"
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
