package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"buzzcut/internal/config"
)

func TestLoadWithoutChannelsFails(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("HOME", t.TempDir())

	// A key alone is not enough; the scanner needs channels to watch.
	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error for empty channel list")
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "buzzcut.toml")

	type payload struct {
		YouTube struct {
			APIKey   string   `toml:"api_key"`
			BaseURL  string   `toml:"base_url"`
			Channels []string `toml:"channels"`
		} `toml:"youtube"`
		Detection struct {
			ThresholdRatio float64 `toml:"threshold_ratio"`
		} `toml:"detection"`
		Scan struct {
			IntervalMinutes int `toml:"interval_minutes"`
		} `toml:"scan"`
	}
	custom := payload{}
	custom.YouTube.APIKey = "abc123"
	custom.YouTube.BaseURL = "https://example.com/yt/"
	custom.YouTube.Channels = []string{"inoxtag", " GMK ", "inoxtag"}
	custom.Detection.ThresholdRatio = 3.0
	custom.Scan.IntervalMinutes = 15
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.YouTube.APIKey != "abc123" {
		t.Fatalf("expected api key from file, got %q", cfg.YouTube.APIKey)
	}
	// Base URL trailing slash trimmed, channel list deduplicated and trimmed.
	if cfg.YouTube.BaseURL != "https://example.com/yt" {
		t.Fatalf("unexpected base url: %q", cfg.YouTube.BaseURL)
	}
	if len(cfg.YouTube.Channels) != 2 || cfg.YouTube.Channels[1] != "GMK" {
		t.Fatalf("unexpected channels: %v", cfg.YouTube.Channels)
	}
	if cfg.Detection.ThresholdRatio != 3.0 {
		t.Fatalf("expected threshold override, got %v", cfg.Detection.ThresholdRatio)
	}
	if cfg.Scan.IntervalMinutes != 15 {
		t.Fatalf("expected interval override, got %d", cfg.Scan.IntervalMinutes)
	}
	// Untouched sections keep defaults.
	if cfg.Detection.SampleRate != 16000 {
		t.Fatalf("expected default sample rate, got %d", cfg.Detection.SampleRate)
	}
	if len(cfg.Publish.Platforms) != 2 {
		t.Fatalf("expected default platforms, got %v", cfg.Publish.Platforms)
	}
}

func TestEnvVarFallbackForAPIKey(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "buzzcut.toml")

	type payload struct {
		YouTube struct {
			Channels []string `toml:"channels"`
		} `toml:"youtube"`
	}
	custom := payload{}
	custom.YouTube.Channels = []string{"inoxtag"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("YOUTUBE_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.YouTube.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.YouTube.APIKey)
	}
}

func TestEnsureDirectoriesAndPathAccessors(t *testing.T) {
	tempDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StorageDir = filepath.Join(tempDir, "storage")
	cfg.Paths.VideosDir = filepath.Join(tempDir, "storage", "videos")
	cfg.Paths.ClipsDir = filepath.Join(tempDir, "storage", "clips")
	cfg.Paths.LogDir = filepath.Join(tempDir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StorageDir, cfg.Paths.VideosDir, cfg.Paths.ClipsDir, cfg.CaptionsDir(), cfg.SubtitlesDir(), cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}

	if cfg.RegistryPath() != filepath.Join(cfg.Paths.StorageDir, "processed_moments.json") {
		t.Fatalf("unexpected registry path: %q", cfg.RegistryPath())
	}
	if cfg.QueuePath() != filepath.Join(cfg.Paths.StorageDir, "publish_queue.json") {
		t.Fatalf("unexpected queue path: %q", cfg.QueuePath())
	}
	if cfg.VideosPath() != filepath.Join(cfg.Paths.StorageDir, "videos.json") {
		t.Fatalf("unexpected videos path: %q", cfg.VideosPath())
	}
	if cfg.SnapshotsPath() != filepath.Join(cfg.Paths.StorageDir, "video_snapshots.json") {
		t.Fatalf("unexpected snapshots path: %q", cfg.SnapshotsPath())
	}
	if cfg.ScanLogPath() != filepath.Join(cfg.Paths.LogDir, "scanlog.db") {
		t.Fatalf("unexpected scan log path: %q", cfg.ScanLogPath())
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[youtube]") {
		t.Fatalf("sample config missing youtube section: %s", contents)
	}

	// Validate it decodes.
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.YouTube.APIKey = "key"
		cfg.YouTube.Channels = []string{"chan"}
		return cfg
	}

	cfg := valid()
	cfg.YouTube.Channels = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty channel list")
	}

	cfg = valid()
	cfg.Detection.ThresholdRatio = 1.0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold ratio <= 1")
	}

	cfg = valid()
	cfg.Detection.AnomalyRatio = cfg.Detection.AboveAverageRatio
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when anomaly ratio <= above-average ratio")
	}

	cfg = valid()
	cfg.Scan.IntervalMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive interval")
	}

	cfg = valid()
	cfg.Notifications.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive request timeout")
	}
}
