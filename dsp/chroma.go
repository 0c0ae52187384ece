package dsp

import (
	"math"
)

const (
	chromaMinHz = 65.0
	chromaMaxHz = 2100.0
)

func freqToMIDI(freq float64) float64 {
	return 12*math.Log2(freq/440.0) + 69
}

// ChromaFilterBank maps STFT bins onto the 12 pitch classes, indexed
// [pitch class][bin]. Each bin between 65 Hz and 2.1 kHz is shared
// between its two nearest pitch classes by distance in semitones.
func ChromaFilterBank(sr, nFFT int) [][]float64 {
	freqs := FFTFrequencies(sr, nFFT)
	bank := make([][]float64, 12)
	for pc := range bank {
		bank[pc] = make([]float64, len(freqs))
	}
	for bin, f := range freqs {
		if f < chromaMinHz || f > chromaMaxHz {
			continue
		}
		class := math.Mod(freqToMIDI(f), 12)
		for pc := range bank {
			d := math.Abs(class - float64(pc))
			d = math.Min(d, 12-d)
			if d < 1 {
				bank[pc][bin] = 1 - d
			}
		}
	}
	return bank
}

// Chromagram computes the chroma energy of y, indexed [pitch class][frame]
// with pitch class 0 = C. Each frame is scaled so its strongest class is 1;
// silent frames stay at zero.
func Chromagram(y []float64, sr int) ([][]float64, error) {
	if sr <= 0 {
		return nil, ErrSampleRate
	}
	if len(y) == 0 {
		return nil, ErrEmptySignal
	}
	power := PowerSpectrogram(STFT(y, DefaultFFTSize, DefaultHopSize))
	bank := ChromaFilterBank(sr, DefaultFFTSize)

	chroma := make([][]float64, 12)
	for pc := range chroma {
		chroma[pc] = make([]float64, len(power))
	}
	for t, frame := range power {
		peak := 0.0
		for pc, filter := range bank {
			var sum float64
			for bin, w := range filter {
				if w != 0 {
					sum += w * frame[bin]
				}
			}
			chroma[pc][t] = sum
			peak = math.Max(peak, sum)
		}
		if peak <= 0 {
			continue
		}
		for pc := range chroma {
			chroma[pc][t] /= peak
		}
	}
	return chroma, nil
}
