// Package wavio converts between 16-bit PCM WAV files and the in-memory
// audio buffer. WAV is the only format intermediate audio ever takes across
// process boundaries.
package wavio

import (
	"fmt"
	"math"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"voiceshield-media/domain/audio"
)

// Decode reads a PCM WAV file into per-channel float64 samples in [-1, 1)
func Decode(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav file: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels < 1 {
		return nil, fmt.Errorf("wav file has no usable format: %s", path)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numCh := pcm.Format.NumChannels
	frames := len(pcm.Data) / numCh
	channels := make([][]float64, numCh)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			channels[c][i] = float64(pcm.Data[i*numCh+c]) / scale
		}
	}

	return &audio.Buffer{
		SampleRate: pcm.Format.SampleRate,
		Channels:   channels,
	}, nil
}

// Encode writes the buffer as a 16-bit PCM WAV file at the buffer's sample
// rate. Samples are clamped to the representable range; the mapping is
// deterministic so identical buffers produce byte-identical files.
func Encode(path string, b *audio.Buffer) error {
	if b.NumChannels() == 0 || b.Len() == 0 {
		return fmt.Errorf("cannot encode an empty buffer")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}
	defer f.Close()

	numCh := b.NumChannels()
	frames := b.Len()
	data := make([]int, frames*numCh)
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			data[i*numCh+c] = quantize16(b.Channels[c][i])
		}
	}

	pcm := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: numCh,
			SampleRate:  b.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(f, b.SampleRate, 16, numCh, 1)
	if err := enc.Write(pcm); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav file: %w", err)
	}
	return nil
}

func quantize16(v float64) int {
	n := int(math.Round(v * 32767))
	if n > 32767 {
		return 32767
	}
	if n < -32768 {
		return -32768
	}
	return n
}
