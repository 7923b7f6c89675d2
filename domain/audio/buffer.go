package audio

import "math"

// Buffer is an in-memory representation of decoded audio: one float64 sample
// slice per channel plus the sample rate. Samples are nominally in [-1, 1].
//
// Invariant: after any transform that changes length, all channels are
// trimmed to the shortest channel before the buffer is used further.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Len returns the length of the shortest channel
func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}
	n := len(b.Channels[0])
	for _, ch := range b.Channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// TrimToShortest cuts every channel to the length of the shortest one
func (b *Buffer) TrimToShortest() {
	n := b.Len()
	for i, ch := range b.Channels {
		b.Channels[i] = ch[:n]
	}
}

// PeakAbs returns the largest absolute sample value across all channels
func (b *Buffer) PeakAbs() float64 {
	peak := 0.0
	for _, ch := range b.Channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// NormalizePeak rescales the whole buffer so the peak absolute sample equals
// target. Applied unconditionally whenever the peak is greater than zero, so
// it also raises quiet material; this keeps headroom deterministic.
func (b *Buffer) NormalizePeak(target float64) {
	peak := b.PeakAbs()
	if peak <= 0 {
		return
	}
	scale := target / peak
	for _, ch := range b.Channels {
		for i := range ch {
			ch[i] *= scale
		}
	}
}

// MonoDownmix reduces the buffer to a single channel by averaging.
// A mono buffer is returned as a copy of its only channel.
func MonoDownmix(b *Buffer) []float64 {
	n := b.Len()
	mono := make([]float64, n)
	if b.NumChannels() == 1 {
		copy(mono, b.Channels[0][:n])
		return mono
	}
	for _, ch := range b.Channels {
		for i := 0; i < n; i++ {
			mono[i] += ch[i]
		}
	}
	for i := range mono {
		mono[i] /= float64(b.NumChannels())
	}
	return mono
}

// Antiphase builds a two-channel buffer where channel 0 is mono and channel 1
// is its exact negation, sample for sample.
//
// A binaural listener perceives the full mono content through either channel,
// while any linear downmix that sums left and right cancels to exactly zero
// before lossy encoding, and to near-zero after it. This cancellation is the
// mechanism that defeats mono-summing analysis and must be preserved.
func Antiphase(mono []float64, sampleRate int) *Buffer {
	left := make([]float64, len(mono))
	right := make([]float64, len(mono))
	copy(left, mono)
	for i, v := range mono {
		right[i] = -v
	}
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   [][]float64{left, right},
	}
}
