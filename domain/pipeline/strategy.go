package pipeline

import "context"

// ArtifactKind identifies what a strategy produced and therefore how the
// remux stage must combine it with the original source.
type ArtifactKind int

const (
	// ProcessedAudio is a standalone audio file to be muxed with the
	// original video stream
	ProcessedAudio ArtifactKind = iota

	// PerturbedVideo is a video-only file to be muxed with the original
	// audio stream
	PerturbedVideo
)

// Artifact is the output of a transform strategy.
type Artifact struct {
	Path string
	Kind ArtifactKind
}

// TransformRequest carries everything a strategy needs for one run.
// AudioPath is set only for strategies that declare NeedsAudio.
type TransformRequest struct {
	SourcePath   string
	AudioPath    string
	WorkspaceDir string
	Reporter     ProgressReporter
}

// Strategy is the port implemented by each interchangeable transform.
// Transform runs to completion synchronously; any error is fatal to the run.
type Strategy interface {
	// Name returns the strategy identifier used on the command line
	Name() string

	// NeedsAudio reports whether the orchestrator must probe for and
	// extract an audio track before Transform is called
	NeedsAudio() bool

	// Transform consumes the extracted audio (or the source video) and
	// produces the processed artifact inside the workspace
	Transform(ctx context.Context, req TransformRequest) (*Artifact, error)
}
