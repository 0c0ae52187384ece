package dsp

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
)

const (
	DefaultFFTSize = 2048 // Size of each FFT window
	DefaultHopSize = 512  // Hop size between windows
	DefaultMels    = 128
)

var ErrEmptySignal = errors.New("signal has no samples")
var ErrSampleRate = errors.New("sample rate must be positive")

// STFT computes the magnitude short-time Fourier transform of x, indexed
// [frame][bin] with nFFT/2+1 bins per frame. Frames are centered: the
// signal is reflect-padded by nFFT/2 on both sides.
func STFT(x []float64, nFFT, hop int) [][]float64 {
	if len(x) == 0 || nFFT <= 0 || hop <= 0 {
		return nil
	}
	padded := reflectPad(x, nFFT/2)
	hann := window.Hann(nFFT)
	bins := nFFT/2 + 1

	spectrogram := make([][]float64, 0, 1+(len(padded)-nFFT)/hop)
	frame := make([]float64, nFFT)
	for start := 0; start+nFFT <= len(padded); start += hop {
		for i := range frame {
			frame[i] = padded[start+i] * hann[i]
		}

		fftResult := fft.FFTReal(frame)

		magnitude := make([]float64, bins)
		for j := range magnitude {
			magnitude[j] = cmplx.Abs(fftResult[j])
		}
		spectrogram = append(spectrogram, magnitude)
	}
	return spectrogram
}

// PowerSpectrogram squares the magnitudes of an STFT in place.
func PowerSpectrogram(stft [][]float64) [][]float64 {
	for _, frame := range stft {
		for j, m := range frame {
			frame[j] = m * m
		}
	}
	return stft
}

// FFTFrequencies returns the center frequency in Hz of every STFT bin.
func FFTFrequencies(sr, nFFT int) []float64 {
	freqs := make([]float64, nFFT/2+1)
	for i := range freqs {
		freqs[i] = float64(i) * float64(sr) / float64(nFFT)
	}
	return freqs
}

// reflectPad mirrors n samples onto each end of x without repeating the
// edge sample. Signals too short to mirror are zero padded.
func reflectPad(x []float64, n int) []float64 {
	out := make([]float64, len(x)+2*n)
	copy(out[n:], x)
	if len(x) <= n {
		return out
	}
	for i := 1; i <= n; i++ {
		out[n-i] = x[i]
		out[n+len(x)-1+i] = x[len(x)-1-i]
	}
	return out
}
