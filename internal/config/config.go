package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StorageDir string `toml:"storage_dir"`
	VideosDir  string `toml:"videos_dir"`
	ClipsDir   string `toml:"clips_dir"`
	LogDir     string `toml:"log_dir"`
}

// YouTube contains configuration for the YouTube Data API and the channels
// to watch.
type YouTube struct {
	APIKey              string   `toml:"api_key"`
	BaseURL             string   `toml:"base_url"`
	Channels            []string `toml:"channels"`
	MaxVideosPerChannel int      `toml:"max_videos_per_channel"`
}

// Scan contains configuration for scan scheduling and reporting.
type Scan struct {
	IntervalMinutes int `toml:"interval_minutes"`
	ReportTopN      int `toml:"report_top_n"`
}

// Detection contains the audio-peak and buzz thresholds.
type Detection struct {
	SampleRate            int     `toml:"sample_rate"`
	WindowSec             float64 `toml:"window_sec"`
	ThresholdRatio        float64 `toml:"threshold_ratio"`
	MinGapSeconds         int     `toml:"min_gap_seconds"`
	ClipPaddingSeconds    int     `toml:"clip_padding_seconds"`
	MaxClipsPerVideo      int     `toml:"max_clips_per_video"`
	RegistryBucketSeconds int     `toml:"registry_bucket_seconds"`
	AnomalyRatio          float64 `toml:"anomaly_ratio"`
	AboveAverageRatio     float64 `toml:"above_average_ratio"`
	PotentialVPHFloor     float64 `toml:"potential_vph_floor"`
}

// Publish contains configuration for the publish queue.
type Publish struct {
	Platforms []string `toml:"platforms"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Scan           bool   `toml:"scan"`
	Clips          bool   `toml:"clips"`
	Review         bool   `toml:"review"`
	Errors         bool   `toml:"errors"`
}

// Transcribe contains configuration for subtitle generation.
type Transcribe struct {
	Enabled  bool   `toml:"enabled"`
	Binary   string `toml:"binary"`
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

// Tools pins the external binaries the pipeline shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	YtDlp   string `toml:"yt_dlp"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for the buzz pipeline.
//
// Configuration sections by subsystem:
//   - Paths: storage root, download cache, clip output, logs
//   - YouTube: Data API credentials and watched channels
//   - Scan: daemon interval and report size
//   - Detection: audio-peak and buzz thresholds
//   - Publish: target platforms for generated clips
//   - Notifications: ntfy push notification settings
//   - Transcribe: subtitle generation via an external whisper CLI
//   - Tools: external binary names
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	YouTube       YouTube       `toml:"youtube"`
	Scan          Scan          `toml:"scan"`
	Detection     Detection     `toml:"detection"`
	Publish       Publish       `toml:"publish"`
	Notifications Notifications `toml:"notifications"`
	Transcribe    Transcribe    `toml:"transcribe"`
	Tools         Tools         `toml:"tools"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/buzzcut/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("buzzcut.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.StorageDir,
		c.Paths.VideosDir,
		c.Paths.ClipsDir,
		c.CaptionsDir(),
		c.SubtitlesDir(),
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RegistryPath is the processed-moment ledger document.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.Paths.StorageDir, "processed_moments.json")
}

// QueuePath is the publish queue document.
func (c *Config) QueuePath() string {
	return filepath.Join(c.Paths.StorageDir, "publish_queue.json")
}

// VideosPath is the append-only video catalog document.
func (c *Config) VideosPath() string {
	return filepath.Join(c.Paths.StorageDir, "videos.json")
}

// SnapshotsPath is the bounded view-history document.
func (c *Config) SnapshotsPath() string {
	return filepath.Join(c.Paths.StorageDir, "video_snapshots.json")
}

// ScanLogPath is the SQLite scan journal.
func (c *Config) ScanLogPath() string {
	return filepath.Join(c.Paths.LogDir, "scanlog.db")
}

// CaptionsDir is where generated caption text files live.
func (c *Config) CaptionsDir() string {
	return filepath.Join(c.Paths.ClipsDir, "captions")
}

// SubtitlesDir is where SRT and ASS intermediates live.
func (c *Config) SubtitlesDir() string {
	return filepath.Join(c.Paths.ClipsDir, "subtitles")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
