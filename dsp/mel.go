package dsp

import (
	"math"
)

const (
	melLinearStep = 200.0 / 3
	melLogMinHz   = 1000.0
	melLogMin     = melLogMinHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27.0

// HzToMel converts a frequency to the Slaney mel scale: linear below
// 1 kHz, logarithmic above.
func HzToMel(f float64) float64 {
	if f < melLogMinHz {
		return f / melLinearStep
	}
	return melLogMin + math.Log(f/melLogMinHz)/melLogStep
}

func MelToHz(m float64) float64 {
	if m < melLogMin {
		return m * melLinearStep
	}
	return melLogMinHz * math.Exp(melLogStep*(m-melLogMin))
}

// MelFilterBank builds nMels triangular filters over the STFT bins,
// indexed [mel][bin], each scaled to unit area.
func MelFilterBank(sr, nFFT, nMels int, fmin, fmax float64) [][]float64 {
	if fmax <= 0 {
		fmax = float64(sr) / 2
	}
	fftFreqs := FFTFrequencies(sr, nFFT)

	lo, hi := HzToMel(fmin), HzToMel(fmax)
	melFreqs := make([]float64, nMels+2)
	for i := range melFreqs {
		melFreqs[i] = MelToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
	}

	weights := make([][]float64, nMels)
	for m := range weights {
		weights[m] = make([]float64, len(fftFreqs))
		left, center, right := melFreqs[m], melFreqs[m+1], melFreqs[m+2]
		norm := 2 / (right - left)
		for j, f := range fftFreqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			w := math.Max(0, math.Min(lower, upper))
			weights[m][j] = w * norm
		}
	}
	return weights
}

// MelSpectrogram computes the power mel spectrogram of y, indexed
// [mel][frame], with the default FFT size, hop and number of bands.
func MelSpectrogram(y []float64, sr int) ([][]float64, error) {
	if sr <= 0 {
		return nil, ErrSampleRate
	}
	if len(y) == 0 {
		return nil, ErrEmptySignal
	}
	power := PowerSpectrogram(STFT(y, DefaultFFTSize, DefaultHopSize))
	bank := MelFilterBank(sr, DefaultFFTSize, DefaultMels, 0, 0)

	mel := make([][]float64, len(bank))
	for m, filter := range bank {
		mel[m] = make([]float64, len(power))
		for t, frame := range power {
			var sum float64
			for j, w := range filter {
				if w != 0 {
					sum += w * frame[j]
				}
			}
			mel[m][t] = sum
		}
	}
	return mel, nil
}

// PowerToDB converts a power spectrogram to decibels relative to ref.
// Values below amin are clamped, and the output is floored at topDB below
// its peak when topDB is positive.
func PowerToDB(s [][]float64, ref, amin, topDB float64) [][]float64 {
	offset := 10 * math.Log10(math.Max(amin, ref))
	peak := math.Inf(-1)

	out := make([][]float64, len(s))
	for i, row := range s {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			db := 10*math.Log10(math.Max(amin, v)) - offset
			out[i][j] = db
			peak = math.Max(peak, db)
		}
	}
	if topDB > 0 {
		floor := peak - topDB
		for _, row := range out {
			for j, v := range row {
				if v < floor {
					row[j] = floor
				}
			}
		}
	}
	return out
}

// PowerToDBMax is PowerToDB referenced to the spectrogram's own maximum,
// so the loudest cell is 0 dB.
func PowerToDBMax(s [][]float64) [][]float64 {
	return PowerToDB(s, Max(s), 1e-10, 80)
}

// Max returns the largest value of a matrix, 0 when it is empty.
func Max(s [][]float64) float64 {
	max := 0.0
	for _, row := range s {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}
