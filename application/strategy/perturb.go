package strategy

import (
	"context"
	"path/filepath"

	"voiceshield-media/domain/pipeline"
)

// VideoPerturber is the port to the filter-chain video encoder.
type VideoPerturber interface {
	Perturb(ctx context.Context, sourcePath, outputPath string, intensity float64) error
}

// AdversarialPerturb is the video-domain sibling of the audio strategies: it
// applies a temporally- and spatially-varying noise filter plus a small hue
// perturbation directly to the video stream. No audio extraction happens;
// the remux stage copies the original audio track alongside the perturbed
// video.
type AdversarialPerturb struct {
	perturber VideoPerturber
	intensity float64
}

// NewAdversarialPerturb creates the video perturbation strategy
func NewAdversarialPerturb(perturber VideoPerturber, intensity float64) *AdversarialPerturb {
	return &AdversarialPerturb{perturber: perturber, intensity: intensity}
}

// Name implements pipeline.Strategy
func (s *AdversarialPerturb) Name() string { return "perturb" }

// NeedsAudio implements pipeline.Strategy
func (s *AdversarialPerturb) NeedsAudio() bool { return false }

// Transform implements pipeline.Strategy
func (s *AdversarialPerturb) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	req.Reporter.Progress("video_perturb", 15, "Applying adversarial perturbation...")

	outPath := filepath.Join(req.WorkspaceDir, "video_perturbed.mp4")

	req.Reporter.Progress("video_encode", 30, "Re-encoding perturbed video...")

	if err := s.perturber.Perturb(ctx, req.SourcePath, outPath, s.intensity); err != nil {
		return nil, err
	}

	return &pipeline.Artifact{Path: outPath, Kind: pipeline.PerturbedVideo}, nil
}

// Ensure AdversarialPerturb implements pipeline.Strategy
var _ pipeline.Strategy = (*AdversarialPerturb)(nil)
