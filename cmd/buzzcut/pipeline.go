package main

import (
	"fmt"
	"log/slog"

	"buzzcut/internal/catalog"
	"buzzcut/internal/category"
	"buzzcut/internal/config"
	"buzzcut/internal/downloader"
	"buzzcut/internal/media"
	"buzzcut/internal/notifications"
	"buzzcut/internal/publishqueue"
	"buzzcut/internal/registry"
	"buzzcut/internal/review"
	"buzzcut/internal/scanlog"
	"buzzcut/internal/scanner"
	"buzzcut/internal/transcribe"
	"buzzcut/internal/videostore"
)

// buildScanner assembles the full pipeline from configuration. The returned
// close function releases the scan journal and must be called when done.
func buildScanner(cfg *config.Config, logger *slog.Logger) (*scanner.Scanner, func() error, error) {
	client, err := catalog.NewClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog client: %w", err)
	}
	classifier, err := category.NewClassifier()
	if err != nil {
		return nil, nil, fmt.Errorf("category classifier: %w", err)
	}
	journal, err := scanlog.Open(cfg.ScanLogPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open scan journal: %w", err)
	}

	var transcriber transcribe.Service = transcribe.Noop{}
	if cfg.Transcribe.Enabled {
		transcriber = transcribe.NewCLI(cfg.Transcribe.Binary, cfg.Transcribe.Model, cfg.Transcribe.Language)
	}

	s, err := scanner.New(cfg, logger, scanner.Deps{
		Catalog:     client,
		Videos:      videostore.NewStore(cfg.VideosPath(), cfg.SnapshotsPath()),
		Registry:    registry.NewStore(cfg.RegistryPath(), cfg.Detection.RegistryBucketSeconds),
		Queue:       publishqueue.NewStore(cfg.QueuePath()),
		ScanLog:     journal,
		Downloader:  downloader.New(cfg.Tools.YtDlp, cfg.Paths.VideosDir),
		Media:       media.NewProcessor(cfg.Tools.FFmpeg),
		Transcriber: transcriber,
		Classifier:  classifier,
		Notifier:    notifications.NewService(cfg),
	})
	if err != nil {
		journal.Close()
		return nil, nil, err
	}
	return s, journal.Close, nil
}

func buildReviewService(cfg *config.Config, logger *slog.Logger) (*review.Service, error) {
	queue := publishqueue.NewStore(cfg.QueuePath())
	return review.NewService(queue, notifications.NewService(cfg), logger)
}
