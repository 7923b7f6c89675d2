package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
)

// Prober implements media.Prober using ffprobe
type Prober struct {
	ffprobePath string
	runner      CommandRunner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithProberPath sets a custom ffprobe executable path
func WithProberPath(path string) ProberOption {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AudioStreams implements media.Prober. One output line per audio stream,
// each carrying the channel count; no lines means no audio track.
func (p *Prober) AudioStreams(ctx context.Context, path string) ([]media.StreamInfo, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=channels",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: probe: %s", pipeline.ErrToolExecutionFailed, err)
	}

	var streams []media.StreamInfo
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, ","))
		if line == "" {
			continue
		}
		channels, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		streams = append(streams, media.StreamInfo{Channels: channels})
	}
	return streams, nil
}

// Ensure Prober implements media.Prober
var _ media.Prober = (*Prober)(nil)
