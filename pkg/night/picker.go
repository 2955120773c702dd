package night

import "math/rand/v2"

// Picker chooses the index of the correct candidate for a night.
type Picker interface {
	Pick(night, n int) int
}

// RandomPicker picks uniformly.
type RandomPicker struct {
	Rand *rand.Rand
}

// Pick ignores the night. A nil Rand uses the global source.
func (p RandomPicker) Pick(_ int, n int) int {
	if p.Rand == nil {
		return rand.IntN(n)
	}
	return p.Rand.IntN(n)
}

// FixedPicker always picks Index, clamped into range.
type FixedPicker struct {
	Index int
}

func (p FixedPicker) Pick(_ int, n int) int {
	return clamp(p.Index, 0, n-1)
}

// SequencePicker picks Indexes[night-1], repeating the last entry. It is
// meant for scripted runs and tests.
type SequencePicker struct {
	Indexes []int
}

// Pick returns the clamped index for night, or 0 with no Indexes.
func (p SequencePicker) Pick(night, n int) int {
	if len(p.Indexes) == 0 {
		return 0
	}
	i := clamp(night-1, 0, len(p.Indexes)-1)
	return clamp(p.Indexes[i], 0, n-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
