package buzz

import (
	"math"
	"sort"
	"time"
)

// Score holds the derived buzz indicators for a single video at scan time.
type Score struct {
	Score        float64 `json:"score"`
	AgeDays      float64 `json:"age_days"`
	ViewsPerHour float64 `json:"views_per_hour"`
	LikeRatio    float64 `json:"like_ratio"`
	CommentRatio float64 `json:"comment_ratio"`
}

// VideoRecord is the scan-time view of a video: identity, counters as
// observed, and the derived buzz fields. Cross-references to other records
// are always by plain identifier, never by pointer.
type VideoRecord struct {
	VideoID       string    `json:"video_id"`
	ChannelName   string    `json:"channel_name"`
	Title         string    `json:"title"`
	PublishedAt   time.Time `json:"published_at"`
	Views         int64     `json:"views"`
	Likes         int64     `json:"likes"`
	Comments      int64     `json:"comments"`
	Buzz          *Score    `json:"buzz,omitempty"`
	AnomalyStatus Anomaly   `json:"anomaly_status,omitempty"`
	Verdict       *Verdict  `json:"verdict,omitempty"`
	Category      string    `json:"video_category,omitempty"`
}

// Snapshot is one point of a video's bounded view history.
type Snapshot struct {
	Timestamp    time.Time `json:"timestamp"`
	Views        int64     `json:"views"`
	ViewsPerHour float64   `json:"views_per_hour"`
}

// Evaluator carries the thresholds used to classify a video. Construct one
// per scan from configuration; the zero value is not usable.
type Evaluator struct {
	AnomalyRatio      float64
	AboveAverageRatio float64
	PotentialVPHFloor float64
}

// NewEvaluator returns an evaluator with the given thresholds, substituting
// the historical defaults for non-positive values.
func NewEvaluator(anomalyRatio, aboveAverageRatio, potentialFloor float64) Evaluator {
	if anomalyRatio <= 0 {
		anomalyRatio = 2.0
	}
	if aboveAverageRatio <= 0 {
		aboveAverageRatio = 1.3
	}
	if potentialFloor <= 0 {
		potentialFloor = 1500
	}
	return Evaluator{
		AnomalyRatio:      anomalyRatio,
		AboveAverageRatio: aboveAverageRatio,
		PotentialVPHFloor: potentialFloor,
	}
}

// ComputeScore derives the buzz indicators for a record as of now.
// Age is floored at one hour so a just-published video cannot divide the
// view count by a near-zero age.
func ComputeScore(rec VideoRecord, now time.Time) Score {
	ageHours := now.Sub(rec.PublishedAt).Hours()
	if ageHours < 1 {
		ageHours = 1
	}

	viewsPerHour := float64(rec.Views) / ageHours
	var likeRatio, commentRatio float64
	if rec.Views > 0 {
		likeRatio = float64(rec.Likes) / float64(rec.Views)
		commentRatio = float64(rec.Comments) / float64(rec.Views)
	}

	score := viewsPerHour*0.60 + likeRatio*1000*0.25 + commentRatio*2000*0.15

	return Score{
		Score:        round2(score),
		AgeDays:      round2(ageHours / 24),
		ViewsPerHour: round2(viewsPerHour),
		LikeRatio:    round4(likeRatio),
		CommentRatio: round4(commentRatio),
	}
}

// ChannelAverageVPH returns the mean views-per-hour across a channel's
// previously scored videos. The second result is false when the channel has
// no scored history.
func ChannelAverageVPH(history []VideoRecord, channelName string) (float64, bool) {
	var sum float64
	var count int
	for _, rec := range history {
		if rec.ChannelName != channelName || rec.Buzz == nil {
			continue
		}
		sum += rec.Buzz.ViewsPerHour
		count++
	}
	if count == 0 {
		return 0, false
	}
	return round2(sum / float64(count)), true
}

// QualityLabel maps a raw metric onto a coarse human reading.
func QualityLabel(value, low, high float64) string {
	switch {
	case value < low:
		return "weak"
	case value < high:
		return "fair"
	default:
		return "good"
	}
}

// SortByInterest orders records by descending real-world interest:
// verdict priority first, then views per hour, then composite score.
func SortByInterest(records []VideoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		ap, bp := a.Verdict.priority(), b.Verdict.priority()
		if ap != bp {
			return ap > bp
		}
		avph, bvph := a.vph(), b.vph()
		if avph != bvph {
			return avph > bvph
		}
		return a.score() > b.score()
	})
}

func (r VideoRecord) vph() float64 {
	if r.Buzz == nil {
		return 0
	}
	return r.Buzz.ViewsPerHour
}

func (r VideoRecord) score() float64 {
	if r.Buzz == nil {
		return 0
	}
	return r.Buzz.Score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
