package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"buzzcut/internal/audio"
	"buzzcut/internal/buzz"
	"buzzcut/internal/caption"
	"buzzcut/internal/clips"
	"buzzcut/internal/logging"
	"buzzcut/internal/media/ffprobe"
	"buzzcut/internal/publishqueue"
	"buzzcut/internal/services"
	"buzzcut/internal/subtitles"
)

// generateClips runs moment detection and clip export for one qualifying
// video. Failures are isolated per moment: a failed moment is logged and
// left unregistered so the next scan retries it.
func (s *Scanner) generateClips(ctx context.Context, rec buzz.VideoRecord) int {
	ctx = services.WithStage(ctx, "clips")
	logger := logging.WithContext(ctx, s.logger)

	if s.deps.Downloader == nil || s.deps.Media == nil {
		logger.Warn("clip generation disabled, downloader or media processor missing")
		return 0
	}

	moments, videoPath, err := s.detectMoments(ctx, rec.VideoID)
	if err != nil {
		logger.Warn("moment detection failed", logging.Error(err))
		return 0
	}
	if len(moments) == 0 {
		logger.Info("no peak moments found")
		return 0
	}

	scorer := clips.NewScorer(s.cfg.Detection.ClipPaddingSeconds, s.cfg.Detection.MaxClipsPerVideo)
	candidates := scorer.Build(moments, rec.Verdict.Tier)

	var created int
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return created
		}
		queued, err := s.exportMoment(ctx, rec, videoPath, candidate)
		if err != nil {
			logger.Warn("moment export failed",
				logging.Int("moment_sec", candidate.MomentSec),
				logging.Error(err),
			)
			continue
		}
		if queued {
			created++
		}
	}
	return created
}

// detectMoments downloads the video, extracts its mono audio track, and
// returns the deduplicated peak moments.
func (s *Scanner) detectMoments(ctx context.Context, videoID string) ([]audio.Moment, string, error) {
	videoPath, err := s.deps.Downloader.Fetch(ctx, videoID)
	if err != nil {
		return nil, "", err
	}

	// The probe is advisory. A failed probe (missing binary, truncated
	// download) falls through to extraction, which produces its own error.
	if probe, err := ffprobe.Inspect(ctx, s.cfg.Tools.FFprobe, videoPath); err != nil {
		logging.WithContext(ctx, s.logger).Debug("ffprobe inspection failed", logging.Error(err))
	} else if !probe.HasAudio() {
		return nil, "", fmt.Errorf("video %s has no audio stream", videoID)
	}

	wavPath := filepath.Join(filepath.Dir(videoPath), "audio.wav")
	if err := s.deps.Media.ExtractAudio(ctx, videoPath, wavPath); err != nil {
		return nil, "", err
	}

	samples, sampleRate, err := audio.LoadWAV(wavPath)
	if err != nil {
		return nil, "", err
	}

	detector := audio.NewDetector(sampleRate, s.cfg.Detection.WindowSec, s.cfg.Detection.ThresholdRatio)
	moments := detector.DetectPeaks(samples)
	moments = audio.FilterClose(moments, s.cfg.Detection.MinGapSeconds)
	return moments, videoPath, nil
}

// exportMoment turns one scored moment into a queued clip. The registry is
// consulted before any work and updated only after the clip has been
// enqueued, so a crash mid-export leaves the moment retryable.
func (s *Scanner) exportMoment(ctx context.Context, rec buzz.VideoRecord, videoPath string, candidate clips.ScoredMoment) (bool, error) {
	logger := logging.WithContext(ctx, s.logger)

	processed, err := s.deps.Registry.IsProcessed(rec.VideoID, candidate.MomentSec)
	if err != nil {
		return false, err
	}
	if processed {
		logger.Debug("moment already processed", logging.Int("moment_sec", candidate.MomentSec))
		return false, nil
	}

	platforms := s.cfg.Publish.Platforms
	clipID := clips.ClipID(rec.VideoID, candidate.MomentSec, strings.Join(platforms, "_"))
	clipPath := filepath.Join(s.cfg.Paths.ClipsDir, clipID+".mp4")

	if err := s.deps.Media.CropVertical(ctx, videoPath, clipPath, candidate.ClipStart, candidate.ClipEnd); err != nil {
		return false, err
	}

	if finalPath, err := s.burnSubtitles(ctx, clipID, clipPath); err != nil {
		logger.Warn("subtitle burn failed, keeping plain clip",
			logging.String(logging.FieldClipID, clipID),
			logging.Error(err),
		)
	} else if finalPath != "" {
		clipPath = finalPath
	}

	captionText := s.captions.Retention(rec.Verdict.Tier, rec.Category, candidate.Intensity, candidate.ClipScore)
	captionPath := filepath.Join(s.cfg.CaptionsDir(), clipID+".txt")
	if err := os.WriteFile(captionPath, []byte(captionText+"\n"), 0o644); err != nil {
		return false, fmt.Errorf("write caption: %w", err)
	}

	queued, err := s.deps.Queue.Enqueue(publishqueue.ClipTask{
		ID:             clipID,
		ClipPath:       clipPath,
		CaptionPath:    captionPath,
		Creator:        rec.ChannelName,
		VideoID:        rec.VideoID,
		MomentSec:      candidate.MomentSec,
		Platforms:      platforms,
		CaptionCurrent: captionText,
	})
	if err != nil {
		return false, err
	}

	for _, platform := range platforms {
		if err := s.deps.Registry.MarkProcessed(rec.VideoID, candidate.MomentSec, platform); err != nil {
			return queued, err
		}
	}

	if queued {
		logger.Info("clip queued for review",
			logging.String(logging.FieldClipID, clipID),
			logging.Float64("clip_score", candidate.ClipScore),
		)
		if err := s.deps.Notifier.NotifyClipQueued(ctx, clipID, rec.Title); err != nil {
			logger.Warn("clip notification failed", logging.Error(err))
		}
	}
	return queued, nil
}

// burnSubtitles transcribes the clip and renders the subtitles into a new
// file. Returns "" when transcription is unavailable.
func (s *Scanner) burnSubtitles(ctx context.Context, clipID, clipPath string) (string, error) {
	if s.deps.Transcriber == nil || !s.deps.Transcriber.Available() {
		return "", nil
	}

	srtPath := filepath.Join(s.cfg.SubtitlesDir(), clipID+".srt")
	if err := s.deps.Transcriber.Transcribe(ctx, clipPath, srtPath); err != nil {
		return "", err
	}

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", err
	}
	cues, err := subtitles.ParseSRT(string(data))
	if err != nil {
		return "", err
	}
	cues = subtitles.CleanForShorts(cues, 0)

	assPath := filepath.Join(s.cfg.SubtitlesDir(), clipID+".ass")
	if err := os.WriteFile(assPath, []byte(subtitles.WriteASS(cues)), 0o644); err != nil {
		return "", err
	}

	finalPath := filepath.Join(s.cfg.Paths.ClipsDir, clipID+"_sub.mp4")
	if err := s.deps.Media.RenderWithSubtitles(ctx, clipPath, assPath, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

// BackfillCaptions regenerates the caption of every queued clip with the
// current hook template and records the rewrite as an edit.
func (s *Scanner) BackfillCaptions(ctx context.Context) (int, error) {
	tasks, err := s.deps.Queue.List()
	if err != nil {
		return 0, err
	}

	var updated int
	for _, task := range tasks {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		rec, err := s.deps.Videos.Video(task.VideoID)
		if err != nil {
			return updated, err
		}
		tier := buzz.TierUnknown
		categoryTag := ""
		if rec != nil {
			if rec.Verdict != nil {
				tier = rec.Verdict.Tier
			}
			categoryTag = rec.Category
		}
		// The queue does not persist moment intensity, so backfill assumes
		// a middling peak.
		text := caption.Hook(3, tier, categoryTag)
		changed, err := s.deps.Queue.EditCaption(task.ID, text)
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}
