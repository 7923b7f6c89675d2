//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"

	apppipeline "voiceshield-media/application/pipeline"
	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/reporting"

	"github.com/cucumber/godog"
)

type fakeProber struct {
	streams []media.StreamInfo
}

func (f *fakeProber) AudioStreams(ctx context.Context, path string) ([]media.StreamInfo, error) {
	return f.streams, nil
}

type fakeExtractor struct{}

func (f *fakeExtractor) Extract(ctx context.Context, sourcePath, outputPath string) error {
	return nil
}

type fakeRemuxer struct{}

func (f *fakeRemuxer) CombineAudio(ctx context.Context, videoSource, audioPath, outputPath string) error {
	return nil
}

func (f *fakeRemuxer) CombineVideo(ctx context.Context, perturbedVideo, audioSource, outputPath string) error {
	return nil
}

type fakeChecker struct {
	exists bool
}

func (f *fakeChecker) Exists(path string) bool { return f.exists }

type fakeStrategy struct{}

func (f *fakeStrategy) Name() string     { return "mask" }
func (f *fakeStrategy) NeedsAudio() bool { return true }

func (f *fakeStrategy) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	req.Reporter.Progress("masking", 60, "Masking voice band...")
	return &pipeline.Artifact{Path: req.WorkspaceDir + "/out.wav", Kind: pipeline.ProcessedAudio}, nil
}

type pipelineContext struct {
	prober   *fakeProber
	checker  *fakeChecker
	reporter *reporting.MemoryReporter
	runErr   error
}

func InitializePipelineScenario(ctx *godog.ScenarioContext) {
	testCtx := &pipelineContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		*testCtx = pipelineContext{
			prober:   &fakeProber{},
			checker:  &fakeChecker{},
			reporter: reporting.NewMemoryReporter(),
		}
		return c, nil
	})

	ctx.Step(`^an input video with an audio stream$`, testCtx.anInputVideoWithAudio)
	ctx.Step(`^an input video without an audio stream$`, testCtx.anInputVideoWithoutAudio)
	ctx.Step(`^no input video exists$`, testCtx.noInputVideoExists)
	ctx.Step(`^I run the processing pipeline$`, testCtx.iRunTheProcessingPipeline)
	ctx.Step(`^the run should succeed$`, testCtx.theRunShouldSucceed)
	ctx.Step(`^the run should fail with input not found$`, testCtx.theRunShouldFailWithInputNotFound)
	ctx.Step(`^the run should fail with missing audio stream$`, testCtx.theRunShouldFailWithMissingAudioStream)
	ctx.Step(`^exactly one complete event at 100 percent should be emitted$`, testCtx.exactlyOneCompleteEvent)
	ctx.Step(`^progress percents should never decrease$`, testCtx.progressPercentsNeverDecrease)
	ctx.Step(`^exactly one error event should be emitted$`, testCtx.exactlyOneErrorEvent)
	ctx.Step(`^no progress events should be emitted$`, testCtx.noProgressEvents)
}

func (c *pipelineContext) anInputVideoWithAudio() error {
	c.checker.exists = true
	c.prober.streams = []media.StreamInfo{{Channels: 2}}
	return nil
}

func (c *pipelineContext) anInputVideoWithoutAudio() error {
	c.checker.exists = true
	c.prober.streams = nil
	return nil
}

func (c *pipelineContext) noInputVideoExists() error {
	c.checker.exists = false
	return nil
}

func (c *pipelineContext) iRunTheProcessingPipeline() error {
	o := apppipeline.NewOrchestrator(c.prober, &fakeExtractor{}, &fakeRemuxer{}, c.checker, c.reporter)
	c.runErr = o.Run(context.Background(), apppipeline.Input{
		SourcePath: "in.mp4",
		OutputPath: "out.mp4",
		Strategy:   &fakeStrategy{},
	})
	return nil
}

func (c *pipelineContext) theRunShouldSucceed() error {
	if c.runErr != nil {
		return fmt.Errorf("run failed: %w", c.runErr)
	}
	return nil
}

func (c *pipelineContext) theRunShouldFailWithInputNotFound() error {
	if !errors.Is(c.runErr, pipeline.ErrInputNotFound) {
		return fmt.Errorf("expected input-not-found, got %v", c.runErr)
	}
	return nil
}

func (c *pipelineContext) theRunShouldFailWithMissingAudioStream() error {
	if !errors.Is(c.runErr, pipeline.ErrMissingAudioStream) {
		return fmt.Errorf("expected missing-audio-stream, got %v", c.runErr)
	}
	return nil
}

func (c *pipelineContext) exactlyOneCompleteEvent() error {
	completes := 0
	for _, ev := range c.reporter.Events {
		if ev.Step == "complete" {
			completes++
			if ev.Percent != 100 {
				return fmt.Errorf("complete event at %d percent, want 100", ev.Percent)
			}
		}
	}
	if completes != 1 {
		return fmt.Errorf("expected exactly one complete event, got %d", completes)
	}
	return nil
}

func (c *pipelineContext) progressPercentsNeverDecrease() error {
	last := -1
	for _, ev := range c.reporter.Events {
		if ev.Percent < last {
			return fmt.Errorf("percent %d after %d", ev.Percent, last)
		}
		last = ev.Percent
	}
	return nil
}

func (c *pipelineContext) exactlyOneErrorEvent() error {
	if len(c.reporter.Errors) != 1 {
		return fmt.Errorf("expected exactly one error event, got %d", len(c.reporter.Errors))
	}
	return nil
}

func (c *pipelineContext) noProgressEvents() error {
	if len(c.reporter.Events) != 0 {
		return fmt.Errorf("expected no progress events, got %d", len(c.reporter.Events))
	}
	return nil
}
