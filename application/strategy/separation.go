package strategy

import (
	"context"
	"path/filepath"

	"voiceshield-media/domain/pipeline"
)

// StemSeparator is the port to the external two-stem separation tool.
// It returns the path of the non-vocal stem.
type StemSeparator interface {
	Separate(ctx context.Context, inputWAV, outputRoot string) (string, error)
}

// AISourceSeparation delegates to an external source-separation model and
// keeps the non-vocal stem. The located stem needs no further processing
// before the remux stage.
type AISourceSeparation struct {
	separator StemSeparator
}

// NewAISourceSeparation creates the source-separation strategy
func NewAISourceSeparation(separator StemSeparator) *AISourceSeparation {
	return &AISourceSeparation{separator: separator}
}

// Name implements pipeline.Strategy
func (s *AISourceSeparation) Name() string { return "separate" }

// NeedsAudio implements pipeline.Strategy
func (s *AISourceSeparation) NeedsAudio() bool { return true }

// Transform implements pipeline.Strategy
func (s *AISourceSeparation) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	req.Reporter.Progress("separation", 25, "Separating vocal stem...")

	outputRoot := filepath.Join(req.WorkspaceDir, "separated")
	stemPath, err := s.separator.Separate(ctx, req.AudioPath, outputRoot)
	if err != nil {
		return nil, err
	}

	req.Reporter.Progress("stem_select", 60, "Keeping non-vocal stem...")

	return &pipeline.Artifact{Path: stemPath, Kind: pipeline.ProcessedAudio}, nil
}

// Ensure AISourceSeparation implements pipeline.Strategy
var _ pipeline.Strategy = (*AISourceSeparation)(nil)
