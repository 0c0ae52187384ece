package dsp

import (
	"math"
	"sort"
)

const (
	startBPM      = 120.0
	minBPM        = 30.0
	maxBPM        = 320.0
	tempoWindow   = 8.0 // seconds of onset envelope used for autocorrelation
	beatTightness = 100.0
)

// OnsetStrength computes the spectral flux of the log-power mel
// spectrogram of y. See OnsetStrengthMel.
func OnsetStrength(y []float64, sr int) ([]float64, error) {
	mel, err := MelSpectrogram(y, sr)
	if err != nil {
		return nil, err
	}
	return OnsetStrengthMel(mel), nil
}

// OnsetStrengthMel computes, for every frame of a power mel spectrogram,
// the mean positive dB increase over the previous frame across bands. The
// first frame is 0. mel is not modified.
func OnsetStrengthMel(mel [][]float64) []float64 {
	if len(mel) == 0 {
		return nil
	}
	db := PowerToDB(mel, 1, 1e-10, 80)
	frames := len(db[0])

	onset := make([]float64, frames)
	for t := 1; t < frames; t++ {
		var sum float64
		for _, band := range db {
			if d := band[t] - band[t-1]; d > 0 {
				sum += d
			}
		}
		onset[t] = sum / float64(len(db))
	}
	return onset
}

// EstimateTempo picks the onset autocorrelation lag with the strongest
// response, weighted by a log-normal prior centred on 120 BPM. It returns 0
// when the envelope carries no periodic energy.
func EstimateTempo(onset []float64, sr, hop int) float64 {
	framesPerSecond := float64(sr) / float64(hop)
	maxLag := min(len(onset)-1, int(tempoWindow*framesPerSecond))
	if maxLag < 1 {
		return 0
	}

	bestLag, bestScore := 0, 0.0
	for lag := 1; lag <= maxLag; lag++ {
		bpm := 60 * framesPerSecond / float64(lag)
		if bpm < minBPM || bpm > maxBPM {
			continue
		}
		var ac float64
		for t := lag; t < len(onset); t++ {
			ac += onset[t] * onset[t-lag]
		}
		prior := math.Exp(-0.5 * math.Pow(math.Log2(bpm)-math.Log2(startBPM), 2))
		if score := ac * prior; score > bestScore {
			bestLag, bestScore = lag, score
		}
	}
	if bestLag == 0 {
		return 0
	}
	return 60 * framesPerSecond / float64(bestLag)
}

// BeatTrack estimates the global tempo of y and places beats by dynamic
// programming over the onset envelope. Beat positions are frame indices at
// the default hop size. A signal without onsets yields tempo 0 and no
// beats.
func BeatTrack(y []float64, sr int) (float64, []int, error) {
	mel, err := MelSpectrogram(y, sr)
	if err != nil {
		return 0, nil, err
	}
	return BeatTrackMel(mel, sr)
}

// BeatTrackMel is BeatTrack on an already computed power mel spectrogram,
// indexed [mel][frame] at the default hop size.
func BeatTrackMel(mel [][]float64, sr int) (float64, []int, error) {
	if sr <= 0 {
		return 0, nil, ErrSampleRate
	}
	if len(mel) == 0 || len(mel[0]) == 0 {
		return 0, nil, ErrEmptySignal
	}
	onset := OnsetStrengthMel(mel)
	tempo := EstimateTempo(onset, sr, DefaultHopSize)
	if tempo == 0 {
		return 0, []int{}, nil
	}
	period := 60 * float64(sr) / float64(DefaultHopSize) / tempo
	return tempo, trackBeats(onset, period), nil
}

func trackBeats(onset []float64, period float64) []int {
	norm := stddev(onset)
	if norm == 0 {
		return []int{}
	}
	env := make([]float64, len(onset))
	for i, v := range onset {
		env[i] = v / norm
	}

	local := localScore(env, period)
	cum := make([]float64, len(local))
	back := make([]int, len(local))

	lo, hi := int(math.Round(2*period)), int(math.Round(period/2))
	for i := range local {
		back[i] = -1
		best := math.Inf(-1)
		for prev := i - lo; prev <= i-hi; prev++ {
			if prev < 0 {
				continue
			}
			txwt := -beatTightness * math.Pow(math.Log(float64(i-prev)/period), 2)
			if s := cum[prev] + txwt; s > best {
				best, back[i] = s, prev
			}
		}
		cum[i] = local[i]
		if back[i] >= 0 {
			cum[i] += best
		}
	}

	beats := []int{}
	for b := lastBeat(cum); b >= 0; b = back[b] {
		beats = append(beats, b)
	}
	for i, j := 0, len(beats)-1; i < j; i, j = i+1, j-1 {
		beats[i], beats[j] = beats[j], beats[i]
	}
	return trimBeats(local, beats)
}

// localScore smooths the envelope with a Gaussian spanning one beat period.
func localScore(env []float64, period float64) []float64 {
	half := int(math.Round(period))
	kernel := make([]float64, 2*half+1)
	for i := range kernel {
		x := float64(i-half) * 32 / period
		kernel[i] = math.Exp(-0.5 * x * x)
	}
	out := make([]float64, len(env))
	for i := range env {
		var sum float64
		for k, w := range kernel {
			if j := i + k - half; j >= 0 && j < len(env) {
				sum += w * env[j]
			}
		}
		out[i] = sum
	}
	return out
}

// lastBeat returns the final local maximum of the cumulative score that
// is above half the median of all local maxima.
func lastBeat(cum []float64) int {
	var peaks []int
	for i := range cum {
		left := i == 0 || cum[i] > cum[i-1]
		right := i == len(cum)-1 || cum[i] >= cum[i+1]
		if left && right {
			peaks = append(peaks, i)
		}
	}
	if len(peaks) == 0 {
		return len(cum) - 1
	}
	values := make([]float64, len(peaks))
	for i, p := range peaks {
		values[i] = cum[p]
	}
	threshold := 0.5 * median(values)
	for i := len(peaks) - 1; i >= 0; i-- {
		if cum[peaks[i]] > threshold {
			return peaks[i]
		}
	}
	return peaks[len(peaks)-1]
}

// trimBeats drops weak leading and trailing beats whose local score is at
// or below half the RMS of the smoothed beat scores.
func trimBeats(local []float64, beats []int) []int {
	if len(beats) == 0 {
		return beats
	}
	var sq float64
	for _, b := range beats {
		sq += local[b] * local[b]
	}
	threshold := 0.5 * math.Sqrt(sq/float64(len(beats)))

	start, end := 0, len(beats)
	for start < end && local[beats[start]] <= threshold {
		start++
	}
	for end > start && local[beats[end-1]] <= threshold {
		end--
	}
	return beats[start:end]
}

func stddev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

func median(x []float64) float64 {
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
