package dsp

import "math"

// Normalize scales samples into [-1, 1] when their peak exceeds 1.
// Signals already in range are returned unchanged.
func Normalize(samples []float64) []float64 {
	maxVal := 0.0
	for _, s := range samples {
		maxVal = math.Max(maxVal, math.Abs(s))
	}
	if maxVal <= 1.0 {
		return samples
	}

	normalized := make([]float64, len(samples))
	for i, s := range samples {
		normalized[i] = s / maxVal
	}
	return normalized
}
