package tonality

import (
	"math"

	"github.com/pkg/errors"

	"github.com/TheoLvs/music-analysis/types"
)

// Summary is the chroma intensity summary: the energy of each pitch class
// summed over time and scaled so the strongest class is exactly 1.
type Summary [NumPitchClasses]float64

// Entry is one row of a Summary.
type Entry struct {
	PitchClass PitchClass `json:"key"`
	Intensity  float64    `json:"intensity"`
}

// Summarize builds the Summary of a chromagram indexed [pitch class][frame].
func Summarize(chroma [][]float64) (Summary, error) {
	var s Summary
	if len(chroma) != NumPitchClasses {
		return s, errors.Wrapf(types.ErrMalformedChroma, "expected %d pitch classes, got %d", NumPitchClasses, len(chroma))
	}
	frames := len(chroma[0])
	for pc, row := range chroma {
		if len(row) != frames {
			return s, errors.Wrapf(types.ErrMalformedChroma, "pitch class %s has %d frames, want %d", PitchClass(pc), len(row), frames)
		}
		for t, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return s, errors.Wrapf(types.ErrMalformedChroma, "bad energy %v at %s frame %d", v, PitchClass(pc), t)
			}
			s[pc] += v
		}
	}
	if frames == 0 {
		return Summary{}, errors.Wrap(types.ErrDegenerateInput, "chromagram has no frames")
	}
	if err := s.normalize(); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// NewSummary validates an already normalized intensity vector.
func NewSummary(values []float64) (Summary, error) {
	var s Summary
	if len(values) != NumPitchClasses {
		return s, errors.Wrapf(types.ErrMalformedChroma, "expected %d intensities, got %d", NumPitchClasses, len(values))
	}
	peak := false
	for i, v := range values {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return Summary{}, errors.Wrapf(types.ErrMalformedChroma, "intensity %v for %s outside [0, 1]", v, PitchClass(i))
		}
		if v == 1 {
			peak = true
		}
		s[i] = v
	}
	if !peak {
		return Summary{}, errors.Wrap(types.ErrMalformedChroma, "no intensity equals 1")
	}
	return s, nil
}

func (s *Summary) normalize() error {
	top := s.Argmax()
	max := s[top]
	if math.IsInf(max, 0) {
		return errors.Wrapf(types.ErrMalformedChroma, "summed energy overflows: %v", max)
	}
	if max <= 0 {
		return errors.Wrapf(types.ErrDegenerateInput, "peak energy %v", max)
	}
	for i := range s {
		s[i] /= max
	}
	s[top] = 1
	return nil
}

// Intensity returns the normalized energy of p.
func (s Summary) Intensity(p PitchClass) float64 {
	return s[p.Add(0)]
}

// Argmax returns the strongest pitch class, the lowest one on ties.
func (s Summary) Argmax() PitchClass {
	return PitchClass(argmax(s[:]))
}

// Entries lists the summary in pitch class order.
func (s Summary) Entries() []Entry {
	entries := make([]Entry, NumPitchClasses)
	for i, v := range s {
		entries[i] = Entry{PitchClass: PitchClass(i), Intensity: v}
	}
	return entries
}
