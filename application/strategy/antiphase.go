package strategy

import (
	"context"
	"fmt"
	"path/filepath"

	"voiceshield-media/domain/audio"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/wavio"
)

// AntiphaseEncode downmixes the audio to mono and re-emits it as two
// channels in exact phase opposition. A stereo-aware human listener hears
// the full content through either ear; any analysis that sums the channels
// gets exact silence before lossy encoding and near-silence after.
type AntiphaseEncode struct{}

// NewAntiphaseEncode creates the phase-cancellation strategy
func NewAntiphaseEncode() *AntiphaseEncode {
	return &AntiphaseEncode{}
}

// Name implements pipeline.Strategy
func (s *AntiphaseEncode) Name() string { return "antiphase" }

// NeedsAudio implements pipeline.Strategy
func (s *AntiphaseEncode) NeedsAudio() bool { return true }

// Transform implements pipeline.Strategy
func (s *AntiphaseEncode) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	req.Reporter.Progress("antiphase", 30, "Building phase-opposed channels...")

	buf, err := wavio.Decode(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("antiphase encode: %w", err)
	}

	mono := audio.MonoDownmix(buf)
	out := audio.Antiphase(mono, buf.SampleRate)

	req.Reporter.Progress("encoding", 60, "Encoding processed audio...")

	outPath := filepath.Join(req.WorkspaceDir, "audio_antiphase.wav")
	if err := wavio.Encode(outPath, out); err != nil {
		return nil, fmt.Errorf("antiphase encode: %w", err)
	}

	return &pipeline.Artifact{Path: outPath, Kind: pipeline.ProcessedAudio}, nil
}

// Ensure AntiphaseEncode implements pipeline.Strategy
var _ pipeline.Strategy = (*AntiphaseEncode)(nil)
