package clips_test

import (
	"testing"

	"buzzcut/internal/audio"
	"buzzcut/internal/buzz"
	"buzzcut/internal/clips"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name      string
		intensity float64
		momentSec int
		tier      buzz.Tier
		want      float64
	}{
		{"early buzzing burst", 5.0, 120, buzz.TierBuzzing, 90},
		{"mid video potential", 3.0, 600, buzz.TierPotential, 50},
		{"late no-buzz", 2.6, 1200, buzz.TierNoBuzz, 26},
		{"boundary 300s loses early bonus", 4.0, 300, buzz.TierGood, 48},
		{"boundary 899s keeps mid bonus", 4.0, 899, buzz.TierGood, 48},
		{"boundary 900s loses mid bonus", 4.0, 900, buzz.TierGood, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clips.Score(tc.intensity, tc.momentSec, tc.tier)
			if got != tc.want {
				t.Fatalf("Score(%v, %d, %q) = %v, want %v", tc.intensity, tc.momentSec, tc.tier, got, tc.want)
			}
		})
	}
}

func TestBuildRanksAndTruncates(t *testing.T) {
	moments := []audio.Moment{
		{TimestampSec: 1000, Intensity: 2.6},
		{TimestampSec: 100, Intensity: 4.0},
		{TimestampSec: 500, Intensity: 3.0},
	}

	s := clips.NewScorer(25, 2)
	got := s.Build(moments, buzz.TierBuzzing)
	if len(got) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(got))
	}
	if got[0].MomentSec != 100 {
		t.Fatalf("expected early intense moment first, got %+v", got[0])
	}
	if got[0].ClipScore < got[1].ClipScore {
		t.Fatal("results must be ordered by descending clip score")
	}
}

func TestBuildClampsClipStart(t *testing.T) {
	s := clips.NewScorer(25, 5)
	got := s.Build([]audio.Moment{{TimestampSec: 10, Intensity: 3.0}}, buzz.TierGood)
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	if got[0].ClipStart != 0 {
		t.Fatalf("clip start must clamp at 0, got %d", got[0].ClipStart)
	}
	if got[0].ClipEnd != 35 {
		t.Fatalf("clip end = %d, want 35", got[0].ClipEnd)
	}
}

func TestClipID(t *testing.T) {
	if got := clips.ClipID("abc123", 120, "tiktok"); got != "abc123_120_tiktok" {
		t.Fatalf("ClipID = %q", got)
	}
}
