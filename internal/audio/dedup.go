package audio

import "sort"

// FilterClose keeps the strongest moments while enforcing a minimum gap
// between any two selected timestamps. Candidates are considered in
// descending intensity order (stable, so equal intensities keep their input
// order) and accepted only when far enough from every moment already kept.
func FilterClose(moments []Moment, minGapSeconds int) []Moment {
	if minGapSeconds <= 0 {
		minGapSeconds = 30
	}

	candidates := make([]Moment, len(moments))
	copy(candidates, moments)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Intensity > candidates[j].Intensity
	})

	var selected []Moment
	for _, m := range candidates {
		ok := true
		for _, s := range selected {
			if abs(m.TimestampSec-s.TimestampSec) < minGapSeconds {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, m)
		}
	}
	return selected
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
