// Package strategy holds the four interchangeable audio/video transforms.
// Each implements pipeline.Strategy and runs to completion inside the
// orchestrator's workspace.
package strategy

import (
	"context"
	"fmt"
	"path/filepath"

	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/dsp"
	"voiceshield-media/infrastructure/wavio"
)

// SpectralVoiceMask attenuates the voice band (0-4 kHz) by 99.9% while
// preserving frequencies above 8 kHz, with a quadratic transition between.
// The result is unintelligible to speech recognition while the high-band
// texture of the recording survives.
type SpectralVoiceMask struct{}

// NewSpectralVoiceMask creates the spectral masking strategy
func NewSpectralVoiceMask() *SpectralVoiceMask {
	return &SpectralVoiceMask{}
}

// Name implements pipeline.Strategy
func (s *SpectralVoiceMask) Name() string { return "mask" }

// NeedsAudio implements pipeline.Strategy
func (s *SpectralVoiceMask) NeedsAudio() bool { return true }

// Transform implements pipeline.Strategy
func (s *SpectralVoiceMask) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	req.Reporter.Progress("audio_analysis", 20, "Analyzing audio spectrum...")

	buf, err := wavio.Decode(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("spectral mask: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("spectral mask: audio stream is empty: %s", req.AudioPath)
	}
	if buf.NumChannels() == 1 {
		// Process mono input as two identical channels
		dup := make([]float64, len(buf.Channels[0]))
		copy(dup, buf.Channels[0])
		buf.Channels = append(buf.Channels, dup)
	}

	req.Reporter.Progress("voice_removal", 40, "Removing voice band...")

	stft := dsp.NewSTFT(dsp.DefaultFFTSize, dsp.DefaultHopSize)
	mask := dsp.VoiceMask(buf.SampleRate, dsp.DefaultFFTSize)
	for i, ch := range buf.Channels {
		frames := stft.Analyze(ch)
		dsp.ApplyMask(frames, mask)
		buf.Channels[i] = stft.Synthesize(frames, len(ch))
	}

	req.Reporter.Progress("masking", 60, "Applying auditory mask...")

	buf.TrimToShortest()
	buf.NormalizePeak(0.95)

	req.Reporter.Progress("encoding", 70, "Encoding processed audio...")

	outPath := filepath.Join(req.WorkspaceDir, "audio_processed.wav")
	if err := wavio.Encode(outPath, buf); err != nil {
		return nil, fmt.Errorf("spectral mask: %w", err)
	}

	return &pipeline.Artifact{Path: outPath, Kind: pipeline.ProcessedAudio}, nil
}

// Ensure SpectralVoiceMask implements pipeline.Strategy
var _ pipeline.Strategy = (*SpectralVoiceMask)(nil)
