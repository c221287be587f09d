package buzz

// Anomaly is the technical status of a video relative to its channel's
// historical views-per-hour baseline.
type Anomaly string

const (
	AnomalyUnknown      Anomaly = "unknown"
	AnomalyNormal       Anomaly = "normal"
	AnomalyAboveAverage Anomaly = "above-average"
	AnomalyDetected     Anomaly = "anomaly"
)

// Tier is the human-facing priority bucket assigned to a video.
type Tier string

const (
	TierBuzzing   Tier = "buzzing"
	TierPotential Tier = "potential"
	TierGood      Tier = "good"
	TierUnknown   Tier = "unknown"
	TierNoBuzz    Tier = "no-buzz"
)

// Verdict is the business-readable decision for a video.
type Verdict struct {
	Tier    Tier   `json:"tier"`
	Label   string `json:"label"`
	Meaning string `json:"meaning"`
	Action  string `json:"action"`
}

var tierPriority = map[Tier]int{
	TierBuzzing:   4,
	TierPotential: 3,
	TierGood:      2,
	TierUnknown:   1,
	TierNoBuzz:    0,
}

func (v *Verdict) priority() int {
	if v == nil {
		return 0
	}
	return tierPriority[v.Tier]
}

// Clippable reports whether a verdict qualifies the video for audio-moment
// detection. Only the top two tiers proceed to clipping.
func (v Verdict) Clippable() bool {
	return v.Tier == TierBuzzing || v.Tier == TierPotential
}

// Anomaly compares a video's current views-per-hour to the channel
// baseline. hasAvg is false when the channel has no scored history yet.
func (e Evaluator) Anomaly(currentVPH, avgVPH float64, hasAvg bool) Anomaly {
	if !hasAvg || avgVPH <= 0 {
		return AnomalyUnknown
	}
	ratio := currentVPH / avgVPH
	switch {
	case ratio >= e.AnomalyRatio:
		return AnomalyDetected
	case ratio >= e.AboveAverageRatio:
		return AnomalyAboveAverage
	default:
		return AnomalyNormal
	}
}

// Verdict maps an anomaly status and views-per-hour onto the final human
// verdict. An anomaly always wins regardless of absolute traffic; an
// above-average video needs the views-per-hour floor to count as potential.
func (e Evaluator) Verdict(status Anomaly, viewsPerHour float64) Verdict {
	switch status {
	case AnomalyDetected:
		return Verdict{
			Tier:    TierBuzzing,
			Label:   "BUZZING",
			Meaning: "The video is clearly blowing up.",
			Action:  "export clips immediately",
		}
	case AnomalyAboveAverage:
		if viewsPerHour >= e.PotentialVPHFloor {
			return Verdict{
				Tier:    TierPotential,
				Label:   "POTENTIAL BUZZ",
				Meaning: "Performing better than the channel usually does.",
				Action:  "test clips and keep watching",
			}
		}
		return Verdict{
			Tier:    TierGood,
			Label:   "GOOD VIDEO",
			Meaning: "Solid performance but not a priority.",
			Action:  "optional",
		}
	case AnomalyUnknown:
		return Verdict{
			Tier:    TierUnknown,
			Label:   "NOT ENOUGH DATA",
			Meaning: "No channel history to judge against.",
			Action:  "wait",
		}
	default:
		return Verdict{
			Tier:    TierNoBuzz,
			Label:   "NO BUZZ",
			Meaning: "No interesting signal.",
			Action:  "ignore",
		}
	}
}

// AccelTier classifies short-term growth between the last two snapshots.
type AccelTier string

const (
	AccelStrong       AccelTier = "strong"
	AccelModerate     AccelTier = "moderate"
	AccelStable       AccelTier = "stable"
	AccelInsufficient AccelTier = "insufficient-data"
)

// Acceleration is the short-term growth reading for a video.
type Acceleration struct {
	Tier   AccelTier `json:"tier"`
	Growth float64   `json:"growth"`
}

// AccelerationLabel compares the last two snapshots of a video's history.
// Growth is (curr-prev)/prev; fewer than two snapshots or a non-positive
// base gives a low-confidence reading.
func AccelerationLabel(history []Snapshot) Acceleration {
	if len(history) < 2 {
		return Acceleration{Tier: AccelInsufficient}
	}
	prev := history[len(history)-2].ViewsPerHour
	curr := history[len(history)-1].ViewsPerHour
	if prev <= 0 {
		return Acceleration{Tier: AccelInsufficient}
	}
	growth := (curr - prev) / prev
	switch {
	case growth >= 1:
		return Acceleration{Tier: AccelStrong, Growth: growth}
	case growth >= 0.3:
		return Acceleration{Tier: AccelModerate, Growth: growth}
	default:
		return Acceleration{Tier: AccelStable, Growth: growth}
	}
}
