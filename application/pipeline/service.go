// Package pipeline orchestrates one processing run: probe, extract,
// transform, remux, with a single progress stream and a single terminal
// outcome.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/workspace"
)

// WorkspaceFactory creates the scoped temporary directory for one run.
// Injected so tests can observe the workspace lifecycle.
type WorkspaceFactory func() (*workspace.Workspace, error)

// Orchestrator sequences the pipeline stages. Execution is strictly linear
// and synchronous; the only branch is the strategy fixed at start. Every
// failure is terminal: it is reported once and never retried.
type Orchestrator struct {
	prober       media.Prober
	extractor    media.AudioExtractor
	remuxer      media.Remuxer
	fileChecker  media.FileChecker
	reporter     pipeline.ProgressReporter
	newWorkspace WorkspaceFactory
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(
	prober media.Prober,
	extractor media.AudioExtractor,
	remuxer media.Remuxer,
	fileChecker media.FileChecker,
	reporter pipeline.ProgressReporter,
) *Orchestrator {
	return &Orchestrator{
		prober:       prober,
		extractor:    extractor,
		remuxer:      remuxer,
		fileChecker:  fileChecker,
		reporter:     reporter,
		newWorkspace: workspace.New,
	}
}

// WithWorkspaceFactory replaces the workspace constructor (for testing)
func (o *Orchestrator) WithWorkspaceFactory(f WorkspaceFactory) *Orchestrator {
	o.newWorkspace = f
	return o
}

// Input holds the parameters of one pipeline run
type Input struct {
	SourcePath string
	OutputPath string
	Strategy   pipeline.Strategy
}

// Run executes the pipeline. On failure it emits the terminal error event
// and returns the error so the caller can signal a nonzero exit. Any run
// that did not emit a complete event produced no usable output.
func (o *Orchestrator) Run(ctx context.Context, input Input) error {
	if err := o.run(ctx, input); err != nil {
		o.reporter.Fail(err.Error())
		return err
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, input Input) error {
	src, err := media.NewSource(input.SourcePath)
	if err != nil {
		return fmt.Errorf("%w: %v", pipeline.ErrUsage, err)
	}
	if !o.fileChecker.Exists(src.Path) {
		return fmt.Errorf("%w: %s", pipeline.ErrInputNotFound, src.Path)
	}

	o.reporter.Progress("start", 5, "Starting processing...")

	ws, err := o.newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Release()

	req := pipeline.TransformRequest{
		SourcePath:   src.Path,
		WorkspaceDir: ws.Dir(),
		Reporter:     o.reporter,
	}

	if input.Strategy.NeedsAudio() {
		streams, err := o.prober.AudioStreams(ctx, src.Path)
		if err != nil {
			return err
		}
		src.HasAudioStream = len(streams) > 0
		if !src.HasAudioStream {
			return fmt.Errorf("%w: %s", pipeline.ErrMissingAudioStream, src.Path)
		}

		o.reporter.Progress("extract", 10, "Extracting audio from video...")
		audioPath := filepath.Join(ws.Dir(), "audio_original.wav")
		if err := o.extractor.Extract(ctx, src.Path, audioPath); err != nil {
			return err
		}
		req.AudioPath = audioPath
	}

	artifact, err := input.Strategy.Transform(ctx, req)
	if err != nil {
		return err
	}

	o.reporter.Progress("reencoding", 80, "Combining processed streams...")

	switch artifact.Kind {
	case pipeline.PerturbedVideo:
		err = o.remuxer.CombineVideo(ctx, artifact.Path, src.Path, input.OutputPath)
	default:
		err = o.remuxer.CombineAudio(ctx, src.Path, artifact.Path, input.OutputPath)
	}
	if err != nil {
		return err
	}

	o.reporter.Progress("complete", 100, "Processing complete")
	return nil
}
