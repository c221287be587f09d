package audio

import "math"

// Moment is a timestamped intensity peak. Intensity is the window's RMS
// energy relative to the track's mean window energy.
type Moment struct {
	TimestampSec int     `json:"timestamp_sec"`
	Intensity    float64 `json:"intensity"`
}

// Detector holds peak-detection parameters.
type Detector struct {
	SampleRate     int
	WindowSec      float64
	ThresholdRatio float64
}

// NewDetector returns a detector with defaults applied for non-positive
// parameters: 16 kHz sample rate, 0.5 s windows, 2.5x threshold.
func NewDetector(sampleRate int, windowSec, thresholdRatio float64) Detector {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if windowSec <= 0 {
		windowSec = 0.5
	}
	if thresholdRatio <= 0 {
		thresholdRatio = 2.5
	}
	return Detector{SampleRate: sampleRate, WindowSec: windowSec, ThresholdRatio: thresholdRatio}
}

// DetectPeaks partitions samples into contiguous non-overlapping windows,
// computes per-window RMS energy, and reports every window whose energy
// reaches the threshold ratio of the mean. A silent or empty track yields no
// peaks; the mean is only computed over windows that exist.
func (d Detector) DetectPeaks(samples []int16) []Moment {
	windowSize := int(float64(d.SampleRate) * d.WindowSec)
	if windowSize <= 0 || len(samples) == 0 {
		return nil
	}

	type windowEnergy struct {
		start  int
		energy float64
	}

	var windows []windowEnergy
	var total float64
	for start := 0; start < len(samples); start += windowSize {
		end := start + windowSize
		if end > len(samples) {
			end = len(samples)
		}
		energy := rms(samples[start:end])
		windows = append(windows, windowEnergy{start: start, energy: energy})
		total += energy
	}

	mean := total / float64(len(windows))
	if mean <= 0 {
		return nil
	}

	var moments []Moment
	for _, w := range windows {
		if w.energy >= mean*d.ThresholdRatio {
			moments = append(moments, Moment{
				TimestampSec: w.start / d.SampleRate,
				Intensity:    math.Round(w.energy/mean*100) / 100,
			})
		}
	}
	return moments
}

func rms(window []int16) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range window {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(window)))
}
