package scanner

import (
	"log/slog"

	"buzzcut/internal/buzz"
	"buzzcut/internal/logging"
	"buzzcut/internal/videostore"
)

// ReportLine is one row of the end-of-scan interest report.
type ReportLine struct {
	Rank         int
	VideoID      string
	Channel      string
	Title        string
	Verdict      string
	ViewsPerHour float64
	BuzzScore    float64
	Engagement   string
	Acceleration buzz.Acceleration
}

// buildReport ranks the scanned records by interest and keeps the top N.
func buildReport(records []buzz.VideoRecord, videos *videostore.Store, topN int) []ReportLine {
	if topN <= 0 {
		topN = 5
	}
	ranked := make([]buzz.VideoRecord, len(records))
	copy(ranked, records)
	buzz.SortByInterest(ranked)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	lines := make([]ReportLine, 0, len(ranked))
	for i, rec := range ranked {
		line := ReportLine{
			Rank:    i + 1,
			VideoID: rec.VideoID,
			Channel: rec.ChannelName,
			Title:   rec.Title,
		}
		if rec.Verdict != nil {
			line.Verdict = rec.Verdict.Label
		}
		if rec.Buzz != nil {
			line.ViewsPerHour = rec.Buzz.ViewsPerHour
			line.BuzzScore = rec.Buzz.Score
			line.Engagement = buzz.QualityLabel(rec.Buzz.LikeRatio, 0.02, 0.05)
		}
		if videos != nil {
			if snapshots, err := videos.Snapshots(rec.VideoID); err == nil {
				line.Acceleration = buzz.AccelerationLabel(snapshots)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Scanner) logReport(logger *slog.Logger, lines []ReportLine) {
	for _, line := range lines {
		logger.Info("scan report",
			logging.Int("rank", line.Rank),
			logging.String(logging.FieldVideoID, line.VideoID),
			logging.String(logging.FieldChannel, line.Channel),
			logging.String(logging.FieldVerdict, line.Verdict),
			logging.Float64("views_per_hour", line.ViewsPerHour),
			logging.Float64("buzz_score", line.BuzzScore),
			logging.String("engagement", line.Engagement),
			logging.String("acceleration", string(line.Acceleration.Tier)),
		)
	}
}
