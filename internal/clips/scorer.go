package clips

import (
	"fmt"
	"math"
	"sort"

	"buzzcut/internal/audio"
	"buzzcut/internal/buzz"
)

// ScoredMoment is an audio moment promoted to a clip candidate with its cut
// boundaries and ranking score.
type ScoredMoment struct {
	MomentSec int     `json:"moment_sec"`
	Intensity float64 `json:"intensity"`
	ClipStart int     `json:"clip_start"`
	ClipEnd   int     `json:"clip_end"`
	ClipScore float64 `json:"clip_score"`
}

// Scorer derives clip candidates from moments.
type Scorer struct {
	PaddingSeconds int
	MaxResults     int
}

// NewScorer applies defaults (25 s padding, top 5) for non-positive values.
func NewScorer(paddingSeconds, maxResults int) Scorer {
	if paddingSeconds <= 0 {
		paddingSeconds = 25
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return Scorer{PaddingSeconds: paddingSeconds, MaxResults: maxResults}
}

// Score computes the priority of a single candidate clip. Intensity is the
// main signal; early moments get a bonus (hooks near the start retain
// viewers better), and clips from strongly buzzing videos outrank the rest.
func Score(intensity float64, momentSec int, tier buzz.Tier) float64 {
	score := intensity * 10

	if momentSec < 300 {
		score += 15
	} else if momentSec < 900 {
		score += 8
	}

	switch tier {
	case buzz.TierBuzzing:
		score += 25
	case buzz.TierPotential:
		score += 12
	}

	return math.Round(score*100) / 100
}

// Build turns deduplicated moments into ranked clip candidates: score each,
// order by descending clip score (stable), truncate to MaxResults, and
// derive the cut window as moment ± padding clamped at zero.
func (s Scorer) Build(moments []audio.Moment, tier buzz.Tier) []ScoredMoment {
	scored := make([]ScoredMoment, 0, len(moments))
	for _, m := range moments {
		start := m.TimestampSec - s.PaddingSeconds
		if start < 0 {
			start = 0
		}
		scored = append(scored, ScoredMoment{
			MomentSec: m.TimestampSec,
			Intensity: m.Intensity,
			ClipStart: start,
			ClipEnd:   m.TimestampSec + s.PaddingSeconds,
			ClipScore: Score(m.Intensity, m.TimestampSec, tier),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].ClipScore > scored[j].ClipScore
	})

	if len(scored) > s.MaxResults {
		scored = scored[:s.MaxResults]
	}
	return scored
}

// ClipID derives the queue identifier for a clip: video, moment second, and
// target platform tag.
func ClipID(videoID string, momentSec int, platformTag string) string {
	return fmt.Sprintf("%s_%d_%s", videoID, momentSec, platformTag)
}
