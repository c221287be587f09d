package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"buzzcut/internal/buzz"
	"buzzcut/internal/caption"
	"buzzcut/internal/catalog"
	"buzzcut/internal/category"
	"buzzcut/internal/config"
	"buzzcut/internal/downloader"
	"buzzcut/internal/logging"
	"buzzcut/internal/media"
	"buzzcut/internal/notifications"
	"buzzcut/internal/publishqueue"
	"buzzcut/internal/registry"
	"buzzcut/internal/scanlog"
	"buzzcut/internal/services"
	"buzzcut/internal/transcribe"
	"buzzcut/internal/videostore"
)

// Deps collects the collaborators a Scanner drives. Catalog, Videos,
// Registry and Queue are required; the rest degrade gracefully when nil.
type Deps struct {
	Catalog     *catalog.Client
	Videos      *videostore.Store
	Registry    *registry.Store
	Queue       *publishqueue.Store
	ScanLog     *scanlog.Store
	Downloader  *downloader.Downloader
	Media       *media.Processor
	Transcriber transcribe.Service
	Classifier  *category.Classifier
	Notifier    notifications.Service
}

// Scanner runs the channel → video → verdict → clip pipeline.
type Scanner struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   Deps

	evaluator buzz.Evaluator
	captions  *caption.Generator
}

// Summary reports the outcome of one scan cycle.
type Summary struct {
	ScanID        string
	VideosScanned int
	ClipsCreated  int
	Report        []ReportLine
}

// New builds a scanner from configuration and collaborators.
func New(cfg *config.Config, logger *slog.Logger, deps Deps) (*Scanner, error) {
	if cfg == nil {
		return nil, errors.New("scanner requires config")
	}
	if deps.Catalog == nil || deps.Videos == nil || deps.Registry == nil || deps.Queue == nil {
		return nil, errors.New("scanner requires catalog, video store, registry, and publish queue")
	}
	if deps.Notifier == nil {
		deps.Notifier = notifications.NewService(cfg)
	}
	if deps.Transcriber == nil {
		deps.Transcriber = transcribe.Noop{}
	}
	return &Scanner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "scanner"),
		deps:   deps,
		evaluator: buzz.NewEvaluator(
			cfg.Detection.AnomalyRatio,
			cfg.Detection.AboveAverageRatio,
			cfg.Detection.PotentialVPHFloor,
		),
		captions: caption.NewGenerator(nil),
	}, nil
}

// Scan runs one full cycle over every configured channel. Per-channel and
// per-video failures are logged and skipped; only configuration problems
// abort the cycle.
func (s *Scanner) Scan(ctx context.Context) (*Summary, error) {
	scanID := uuid.NewString()
	ctx = services.WithScanID(ctx, scanID)
	logger := logging.WithContext(ctx, s.logger)

	started := time.Now()
	summary := &Summary{ScanID: scanID}

	logger.Info("scan started", logging.Int("channels", len(s.cfg.YouTube.Channels)))
	if err := s.deps.Notifier.NotifyScanStarted(ctx, len(s.cfg.YouTube.Channels)); err != nil {
		logger.Warn("scan-start notification failed", logging.Error(err))
	}

	var scanned []buzz.VideoRecord
	for _, channel := range s.cfg.YouTube.Channels {
		records, clips, err := s.scanChannel(ctx, channel)
		if err != nil {
			if services.IsFatalForVideo(err) {
				return summary, err
			}
			logger.Warn("channel scan failed",
				logging.String(logging.FieldChannel, channel),
				logging.Error(err),
			)
			continue
		}
		scanned = append(scanned, records...)
		summary.ClipsCreated += clips
	}
	summary.VideosScanned = len(scanned)
	summary.Report = buildReport(scanned, s.deps.Videos, s.cfg.Scan.ReportTopN)

	s.logReport(logger, summary.Report)
	logger.Info("scan completed",
		logging.Int("videos", summary.VideosScanned),
		logging.Int("clips", summary.ClipsCreated),
		logging.Duration("elapsed", time.Since(started)),
	)
	if err := s.deps.Notifier.NotifyScanCompleted(ctx, summary.VideosScanned, summary.ClipsCreated, time.Since(started)); err != nil {
		logger.Warn("scan-complete notification failed", logging.Error(err))
	}
	return summary, nil
}

func (s *Scanner) scanChannel(ctx context.Context, channel string) ([]buzz.VideoRecord, int, error) {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldChannel, channel))

	channelID, err := s.deps.Catalog.ChannelIDByName(ctx, channel)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve channel %q: %w", channel, err)
	}
	if channelID == "" {
		logger.Warn("channel not found, skipping")
		return nil, 0, nil
	}

	videoIDs, err := s.deps.Catalog.RecentVideoIDs(ctx, channelID, s.cfg.YouTube.MaxVideosPerChannel)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos for %q: %w", channel, err)
	}

	var records []buzz.VideoRecord
	var clipTotal int
	for _, videoID := range videoIDs {
		if ctx.Err() != nil {
			return records, clipTotal, ctx.Err()
		}
		rec, clips, err := s.scanVideo(services.WithVideoID(ctx, videoID), channel, videoID)
		if err != nil {
			if services.IsFatalForVideo(err) {
				return records, clipTotal, err
			}
			logger.Warn("video scan failed",
				logging.String(logging.FieldVideoID, videoID),
				logging.Error(err),
			)
			continue
		}
		if rec != nil {
			records = append(records, *rec)
		}
		clipTotal += clips
	}
	return records, clipTotal, nil
}

func (s *Scanner) scanVideo(ctx context.Context, channel, videoID string) (*buzz.VideoRecord, int, error) {
	logger := logging.WithContext(ctx, s.logger)

	info, err := s.deps.Catalog.VideoInfo(ctx, videoID)
	if err != nil {
		return nil, 0, err
	}
	if info == nil {
		logger.Warn("video metadata unavailable, skipping")
		return nil, 0, nil
	}

	// Channel baseline comes from the records persisted by earlier scans,
	// before this video is saved.
	history, err := s.deps.Videos.Videos()
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	rec := buzz.VideoRecord{
		VideoID:     videoID,
		ChannelName: channel,
		Title:       info.Title,
		PublishedAt: info.PublishedAt,
		Views:       info.Views,
		Likes:       info.Likes,
		Comments:    info.Comments,
	}
	score := buzz.ComputeScore(rec, now)
	rec.Buzz = &score

	avgVPH, hasAvg := buzz.ChannelAverageVPH(history, channel)
	rec.AnomalyStatus = s.evaluator.Anomaly(score.ViewsPerHour, avgVPH, hasAvg)
	verdict := s.evaluator.Verdict(rec.AnomalyStatus, score.ViewsPerHour)
	rec.Verdict = &verdict

	if s.deps.Classifier != nil {
		rec.Category = s.deps.Classifier.Classify(info.Title, channel)
	}

	if _, err := s.deps.Videos.SaveVideo(rec); err != nil {
		return nil, 0, err
	}
	if err := s.deps.Videos.AppendSnapshot(videoID, buzz.Snapshot{
		Timestamp:    now.UTC(),
		Views:        rec.Views,
		ViewsPerHour: score.ViewsPerHour,
	}); err != nil {
		return nil, 0, err
	}

	logger.Info("video evaluated",
		logging.String(logging.FieldVerdict, verdict.Label),
		logging.Float64("views_per_hour", score.ViewsPerHour),
		logging.Float64("buzz_score", score.Score),
	)

	if verdict.Tier == buzz.TierBuzzing {
		if err := s.deps.Notifier.NotifyBuzzDetected(ctx, info.Title, verdict.Label); err != nil {
			logger.Warn("buzz notification failed", logging.Error(err))
		}
	}

	var clipsCreated int
	if verdict.Clippable() {
		clipsCreated = s.generateClips(ctx, rec)
	}

	s.journal(ctx, scanlog.Entry{
		VideoID:      videoID,
		ChannelName:  channel,
		VerdictTier:  string(verdict.Tier),
		ViewsPerHour: score.ViewsPerHour,
		BuzzScore:    score.Score,
		ClipsCreated: clipsCreated,
	})

	return &rec, clipsCreated, nil
}

func (s *Scanner) journal(ctx context.Context, entry scanlog.Entry) {
	if s.deps.ScanLog == nil {
		return
	}
	if scanID, ok := services.ScanIDFromContext(ctx); ok {
		entry.ScanID = scanID
	}
	if err := s.deps.ScanLog.Record(ctx, entry); err != nil {
		logging.WithContext(ctx, s.logger).Warn("scan journal write failed", logging.Error(err))
	}
}
