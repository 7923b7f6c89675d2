package ffmpeg

import (
	"context"
	"fmt"

	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
)

// DefaultAudioBitrate is the fixed bitrate for the lossy audio encode at the
// remux stage.
const DefaultAudioBitrate = "226k"

// Remuxer implements media.Remuxer using ffmpeg. Both modes strip all
// container metadata, enable progressive-download layout and truncate to the
// shorter of the two inputs.
type Remuxer struct {
	ffmpegPath   string
	audioBitrate string
	runner       CommandRunner
}

// RemuxerOption is a functional option for configuring Remuxer
type RemuxerOption func(*Remuxer)

// WithRemuxerFFmpegPath sets a custom ffmpeg executable path
func WithRemuxerFFmpegPath(path string) RemuxerOption {
	return func(r *Remuxer) {
		r.ffmpegPath = path
	}
}

// WithRemuxerAudioBitrate sets the bitrate for the audio encode
func WithRemuxerAudioBitrate(bitrate string) RemuxerOption {
	return func(r *Remuxer) {
		r.audioBitrate = bitrate
	}
}

// WithRemuxerCommandRunner sets a custom command runner (for testing)
func WithRemuxerCommandRunner(runner CommandRunner) RemuxerOption {
	return func(r *Remuxer) {
		r.runner = runner
	}
}

// NewRemuxer creates a new FFmpeg-based remuxer
func NewRemuxer(opts ...RemuxerOption) *Remuxer {
	r := &Remuxer{
		ffmpegPath:   "ffmpeg",
		audioBitrate: DefaultAudioBitrate,
		runner:       &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// CombineAudio implements media.Remuxer. The video stream is copied
// unchanged; the processed audio is encoded as AAC at the fixed bitrate.
func (r *Remuxer) CombineAudio(ctx context.Context, videoSource, audioPath, outputPath string) error {
	args := []string{
		"-i", videoSource,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", r.audioBitrate,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-map_metadata", "-1",
		"-shortest",
		"-movflags", "+faststart",
		"-y",
		"-loglevel", "error",
		outputPath,
	}

	if err := r.runner.Run(ctx, r.ffmpegPath, args...); err != nil {
		return fmt.Errorf("%w: %s", pipeline.ErrRemuxFailed, err)
	}

	return nil
}

// CombineVideo implements media.Remuxer. Both the perturbed video stream and
// the original audio stream are copied without re-encoding.
func (r *Remuxer) CombineVideo(ctx context.Context, perturbedVideo, audioSource, outputPath string) error {
	args := []string{
		"-i", perturbedVideo,
		"-i", audioSource,
		"-c:v", "copy",
		"-c:a", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-map_metadata", "-1",
		"-shortest",
		"-movflags", "+faststart",
		"-y",
		"-loglevel", "error",
		outputPath,
	}

	if err := r.runner.Run(ctx, r.ffmpegPath, args...); err != nil {
		return fmt.Errorf("%w: %s", pipeline.ErrRemuxFailed, err)
	}

	return nil
}

// Ensure Remuxer implements media.Remuxer
var _ media.Remuxer = (*Remuxer)(nil)
