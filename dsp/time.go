package dsp

// FramesToTime converts frame indices at the given hop size to seconds.
func FramesToTime(frames []int, sr, hop int) []float64 {
	times := make([]float64, len(frames))
	for i, f := range frames {
		times[i] = float64(f*hop) / float64(sr)
	}
	return times
}

// Duration is the length in seconds of n samples at rate sr.
func Duration(n, sr int) float64 {
	if sr <= 0 {
		return 0
	}
	return float64(n) / float64(sr)
}
