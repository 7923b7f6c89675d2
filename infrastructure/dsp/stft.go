// Package dsp implements the short-time Fourier analysis used by the
// spectral voice mask: a centered STFT/ISTFT pair with a fixed window and
// hop, and the per-bin gain curve applied between them.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Window and hop are fixed; they set the frequency resolution and must match
// between decomposition and reconstruction.
const (
	DefaultFFTSize = 2048
	DefaultHopSize = 512
)

// STFT performs forward and inverse short-time Fourier transforms with a
// periodic Hann window. Frames are centered: the input is reflection-padded
// by half a window on both ends before analysis.
type STFT struct {
	fftSize int
	hopSize int
	window  []float64
	fft     *fourier.FFT
}

// NewSTFT creates a transform with the given window and hop sizes
func NewSTFT(fftSize, hopSize int) *STFT {
	return &STFT{
		fftSize: fftSize,
		hopSize: hopSize,
		window:  hannWindow(fftSize),
		fft:     fourier.NewFFT(fftSize),
	}
}

// Bins returns the number of frequency bins per frame
func (s *STFT) Bins() int {
	return s.fftSize/2 + 1
}

// Analyze decomposes a channel into overlapping windowed spectra.
// Each frame holds fftSize/2+1 complex coefficients. An empty channel
// yields no frames; there is nothing to reflect around.
func (s *STFT) Analyze(samples []float64) [][]complex128 {
	if len(samples) == 0 {
		return nil
	}

	padded := reflectPad(samples, s.fftSize/2)
	if len(padded) < s.fftSize {
		grown := make([]float64, s.fftSize)
		copy(grown, padded)
		padded = grown
	}

	numFrames := 1 + (len(padded)-s.fftSize)/s.hopSize
	frames := make([][]complex128, numFrames)
	frame := make([]float64, s.fftSize)
	for f := 0; f < numFrames; f++ {
		off := f * s.hopSize
		for i := range frame {
			frame[i] = padded[off+i] * s.window[i]
		}
		frames[f] = s.fft.Coefficients(nil, frame)
	}
	return frames
}

// Synthesize reconstructs a time-domain channel of the given length from
// analysis frames by windowed overlap-add with squared-window compensation.
func (s *STFT) Synthesize(frames [][]complex128, length int) []float64 {
	if len(frames) == 0 {
		return make([]float64, length)
	}

	total := s.fftSize + (len(frames)-1)*s.hopSize
	acc := make([]float64, total)
	wsum := make([]float64, total)
	tmp := make([]float64, s.fftSize)
	scale := 1.0 / float64(s.fftSize) // gonum's inverse is unnormalized

	for f, coeff := range frames {
		s.fft.Sequence(tmp, coeff)
		off := f * s.hopSize
		for i := 0; i < s.fftSize; i++ {
			acc[off+i] += tmp[i] * scale * s.window[i]
			wsum[off+i] += s.window[i] * s.window[i]
		}
	}
	for i := range acc {
		if wsum[i] > 1e-12 {
			acc[i] /= wsum[i]
		}
	}

	// Drop the centering pad and fit to the requested length
	out := make([]float64, length)
	start := s.fftSize / 2
	if start < len(acc) {
		copy(out, acc[start:])
	}
	return out
}

// hannWindow returns a periodic Hann window of size n
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// reflectPad mirrors the signal around its endpoints without repeating them
func reflectPad(x []float64, pad int) []float64 {
	out := make([]float64, len(x)+2*pad)
	for j := range out {
		out[j] = x[mirrorIndex(j-pad, len(x))]
	}
	return out
}

// mirrorIndex folds i into [0, n) by reflection. The mirrored signal has
// period 2*(n-1), so reduce modulo the period first; the loop form does not
// terminate for n < 2.
func mirrorIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i = ((i % period) + period) % period
	if i >= n {
		i = period - i
	}
	return i
}
