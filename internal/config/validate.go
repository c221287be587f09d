package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/buzzcut/config.toml"
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'buzzcut config init')", defaultPath)
	}
	if len(c.YouTube.Channels) == 0 {
		return errors.New("youtube.channels must list at least one channel to watch")
	}
	return nil
}

func (c *Config) validateScan() error {
	if err := ensurePositiveMap(map[string]int{
		"scan.interval_minutes": c.Scan.IntervalMinutes,
		"scan.report_top_n":     c.Scan.ReportTopN,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	d := c.Detection
	if err := ensurePositiveMap(map[string]int{
		"detection.sample_rate":             d.SampleRate,
		"detection.min_gap_seconds":         d.MinGapSeconds,
		"detection.clip_padding_seconds":    d.ClipPaddingSeconds,
		"detection.max_clips_per_video":     d.MaxClipsPerVideo,
		"detection.registry_bucket_seconds": d.RegistryBucketSeconds,
	}); err != nil {
		return err
	}
	if d.WindowSec <= 0 {
		return errors.New("detection.window_sec must be positive")
	}
	if d.ThresholdRatio <= 1 {
		return errors.New("detection.threshold_ratio must be greater than 1")
	}
	if d.AnomalyRatio <= d.AboveAverageRatio {
		return errors.New("detection.anomaly_ratio must be greater than detection.above_average_ratio")
	}
	if d.AboveAverageRatio <= 1 {
		return errors.New("detection.above_average_ratio must be greater than 1")
	}
	if d.PotentialVPHFloor <= 0 {
		return errors.New("detection.potential_vph_floor must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
