package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/reporting"
	"voiceshield-media/infrastructure/workspace"
)

// --- Mock implementations for testing ---

type mockProber struct {
	streams []media.StreamInfo
	err     error
	called  bool
}

func (m *mockProber) AudioStreams(ctx context.Context, path string) ([]media.StreamInfo, error) {
	m.called = true
	return m.streams, m.err
}

type mockExtractor struct {
	err    error
	called bool
}

func (m *mockExtractor) Extract(ctx context.Context, sourcePath, outputPath string) error {
	m.called = true
	return m.err
}

type mockRemuxer struct {
	audioErr    error
	videoErr    error
	audioCalled bool
	videoCalled bool
}

func (m *mockRemuxer) CombineAudio(ctx context.Context, videoSource, audioPath, outputPath string) error {
	m.audioCalled = true
	return m.audioErr
}

func (m *mockRemuxer) CombineVideo(ctx context.Context, perturbedVideo, audioSource, outputPath string) error {
	m.videoCalled = true
	return m.videoErr
}

type mockFileChecker struct {
	existing map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existing[path]
}

type mockStrategy struct {
	name       string
	needsAudio bool
	kind       pipeline.ArtifactKind
	err        error
	gotAudio   string
	gotWS      string
}

func (m *mockStrategy) Name() string     { return m.name }
func (m *mockStrategy) NeedsAudio() bool { return m.needsAudio }

func (m *mockStrategy) Transform(ctx context.Context, req pipeline.TransformRequest) (*pipeline.Artifact, error) {
	m.gotAudio = req.AudioPath
	m.gotWS = req.WorkspaceDir
	if m.err != nil {
		return nil, m.err
	}
	req.Reporter.Progress("transform", 50, "working")
	return &pipeline.Artifact{Path: req.WorkspaceDir + "/out", Kind: m.kind}, nil
}

func newTestOrchestrator(
	prober *mockProber,
	extractor *mockExtractor,
	remuxer *mockRemuxer,
	checker *mockFileChecker,
	rep pipeline.ProgressReporter,
) *Orchestrator {
	return NewOrchestrator(prober, extractor, remuxer, checker, rep)
}

func stereoProber() *mockProber {
	return &mockProber{streams: []media.StreamInfo{{Channels: 2}}}
}

func checkerWith(paths ...string) *mockFileChecker {
	m := &mockFileChecker{existing: make(map[string]bool)}
	for _, p := range paths {
		m.existing[p] = true
	}
	return m
}

func TestRunSuccessAudioStrategy(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	prober := stereoProber()
	extractor := &mockExtractor{}
	remuxer := &mockRemuxer{}
	strategy := &mockStrategy{name: "mask", needsAudio: true, kind: pipeline.ProcessedAudio}

	o := newTestOrchestrator(prober, extractor, remuxer, checkerWith("in.mp4"), rep)
	err := o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !prober.called || !extractor.called {
		t.Error("audio strategy must probe and extract")
	}
	if !remuxer.audioCalled || remuxer.videoCalled {
		t.Error("processed audio must be remuxed in audio mode")
	}
	if strategy.gotAudio == "" {
		t.Error("strategy did not receive the extracted audio path")
	}
	if len(rep.Errors) != 0 {
		t.Fatalf("unexpected error events: %v", rep.Errors)
	}

	// Exactly one complete event, at 100, as the final event
	completes := 0
	last := -1
	for _, ev := range rep.Events {
		if ev.Percent < last {
			t.Fatalf("progress went backwards: %d after %d", ev.Percent, last)
		}
		last = ev.Percent
		if ev.Step == "complete" {
			completes++
			if ev.Percent != 100 {
				t.Errorf("complete percent = %d, want 100", ev.Percent)
			}
		}
	}
	if completes != 1 {
		t.Errorf("complete events = %d, want 1", completes)
	}
	if rep.Last().Step != "complete" {
		t.Errorf("final event step = %s, want complete", rep.Last().Step)
	}
}

func TestRunSuccessPerturbStrategy(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	prober := &mockProber{}
	extractor := &mockExtractor{}
	remuxer := &mockRemuxer{}
	strategy := &mockStrategy{name: "perturb", needsAudio: false, kind: pipeline.PerturbedVideo}

	o := newTestOrchestrator(prober, extractor, remuxer, checkerWith("in.mp4"), rep)
	err := o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if prober.called || extractor.called {
		t.Error("perturb strategy must not probe or extract audio")
	}
	if !remuxer.videoCalled || remuxer.audioCalled {
		t.Error("perturbed video must be remuxed in video mode")
	}
}

func TestRunEmptySourcePath(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	prober := stereoProber()
	extractor := &mockExtractor{}
	remuxer := &mockRemuxer{}
	strategy := &mockStrategy{name: "mask", needsAudio: true}

	o := newTestOrchestrator(prober, extractor, remuxer, checkerWith(), rep)
	err := o.Run(context.Background(), Input{SourcePath: "", OutputPath: "out.mp4", Strategy: strategy})
	if !errors.Is(err, pipeline.ErrUsage) {
		t.Fatalf("error = %v, want ErrUsage", err)
	}

	if len(rep.Errors) != 1 {
		t.Fatalf("error events = %d, want exactly 1", len(rep.Errors))
	}
	if len(rep.Events) != 0 {
		t.Errorf("no progress should precede a source validation failure, got %v", rep.Events)
	}
	if prober.called || extractor.called || remuxer.audioCalled || remuxer.videoCalled {
		t.Error("nothing may run after source validation fails")
	}
}

func TestRunInputNotFound(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	prober := stereoProber()
	extractor := &mockExtractor{}
	remuxer := &mockRemuxer{}
	strategy := &mockStrategy{name: "mask", needsAudio: true}

	o := newTestOrchestrator(prober, extractor, remuxer, checkerWith(), rep)
	err := o.Run(context.Background(), Input{SourcePath: "missing.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if !errors.Is(err, pipeline.ErrInputNotFound) {
		t.Fatalf("error = %v, want ErrInputNotFound", err)
	}

	if len(rep.Errors) != 1 {
		t.Fatalf("error events = %d, want exactly 1", len(rep.Errors))
	}
	if len(rep.Events) != 0 {
		t.Errorf("no progress should precede an input-not-found failure, got %v", rep.Events)
	}
	if prober.called || extractor.called || remuxer.audioCalled || remuxer.videoCalled {
		t.Error("nothing may run after input validation fails")
	}
}

func TestRunMissingAudioStream(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	prober := &mockProber{} // no audio streams
	extractor := &mockExtractor{}
	remuxer := &mockRemuxer{}
	strategy := &mockStrategy{name: "mask", needsAudio: true}

	o := newTestOrchestrator(prober, extractor, remuxer, checkerWith("in.mp4"), rep)
	err := o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if !errors.Is(err, pipeline.ErrMissingAudioStream) {
		t.Fatalf("error = %v, want ErrMissingAudioStream", err)
	}
	if extractor.called {
		t.Error("extraction must not run when the probe finds no audio")
	}
	if len(rep.Errors) != 1 {
		t.Errorf("error events = %d, want exactly 1", len(rep.Errors))
	}
}

func TestRunStrategyFailure(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	strategy := &mockStrategy{name: "separate", needsAudio: true, err: pipeline.ErrSeparationFailed}
	remuxer := &mockRemuxer{}

	o := newTestOrchestrator(stereoProber(), &mockExtractor{}, remuxer, checkerWith("in.mp4"), rep)
	err := o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if !errors.Is(err, pipeline.ErrSeparationFailed) {
		t.Fatalf("error = %v, want ErrSeparationFailed", err)
	}
	if remuxer.audioCalled || remuxer.videoCalled {
		t.Error("remux must not run after a failed transform")
	}
}

func TestRunRemuxFailure(t *testing.T) {
	rep := reporting.NewMemoryReporter()
	strategy := &mockStrategy{name: "mask", needsAudio: true, kind: pipeline.ProcessedAudio}
	remuxer := &mockRemuxer{audioErr: pipeline.ErrRemuxFailed}

	o := newTestOrchestrator(stereoProber(), &mockExtractor{}, remuxer, checkerWith("in.mp4"), rep)
	err := o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: strategy})
	if !errors.Is(err, pipeline.ErrRemuxFailed) {
		t.Fatalf("error = %v, want ErrRemuxFailed", err)
	}
	for _, ev := range rep.Events {
		if ev.Step == "complete" {
			t.Error("failed run must not emit a complete event")
		}
	}
}

func TestWorkspaceReleasedOnSuccessAndFailure(t *testing.T) {
	var created []*workspace.Workspace
	factory := func() (*workspace.Workspace, error) {
		ws, err := workspace.New()
		if err == nil {
			created = append(created, ws)
		}
		return ws, err
	}

	runs := []struct {
		name     string
		strategy *mockStrategy
	}{
		{name: "success", strategy: &mockStrategy{name: "mask", needsAudio: true, kind: pipeline.ProcessedAudio}},
		{name: "failure", strategy: &mockStrategy{name: "mask", needsAudio: true, err: errors.New("boom")}},
	}

	for _, tt := range runs {
		t.Run(tt.name, func(t *testing.T) {
			dirs := map[string]bool{}
			o := newTestOrchestrator(stereoProber(), &mockExtractor{}, &mockRemuxer{}, checkerWith("in.mp4"), reporting.NewMemoryReporter()).
				WithWorkspaceFactory(func() (*workspace.Workspace, error) {
					ws, err := factory()
					if err == nil {
						dirs[ws.Dir()] = true
					}
					return ws, err
				})

			o.Run(context.Background(), Input{SourcePath: "in.mp4", OutputPath: "out.mp4", Strategy: tt.strategy})

			for dir := range dirs {
				if _, err := os.Stat(dir); !os.IsNotExist(err) {
					t.Errorf("workspace %s not released", dir)
				}
			}
		})
	}
}
