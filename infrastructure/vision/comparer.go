//go:build vision

package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"voiceshield-media/infrastructure/ffmpeg"

	"gocv.io/x/gocv"
)

// FrameComparer measures how far a perturbed video has drifted from its
// source by comparing a sampled frame from each. Used to verify that a
// perturbation pass changed the pixels without visibly degrading the
// picture; not part of the processing pipeline itself.
type FrameComparer struct {
	ffmpegPath string
	runner     ffmpeg.CommandRunner
}

// FrameComparerOption is a functional option for configuring FrameComparer
type FrameComparerOption func(*FrameComparer)

// WithComparerPath sets a custom ffmpeg binary path
func WithComparerPath(path string) FrameComparerOption {
	return func(c *FrameComparer) {
		c.ffmpegPath = path
	}
}

// WithComparerCommandRunner sets a custom command runner (for testing)
func WithComparerCommandRunner(runner ffmpeg.CommandRunner) FrameComparerOption {
	return func(c *FrameComparer) {
		c.runner = runner
	}
}

// NewFrameComparer creates a new frame comparer
func NewFrameComparer(opts ...FrameComparerOption) *FrameComparer {
	c := &FrameComparer{
		ffmpegPath: "ffmpeg",
		runner:     &ffmpeg.ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MeanPixelDelta extracts one frame from each video at the same offset and
// returns the mean absolute per-pixel difference in grayscale (0-255 range).
func (c *FrameComparer) MeanPixelDelta(ctx context.Context, originalPath, perturbedPath string) (float64, error) {
	tempDir, err := os.MkdirTemp("", "voiceshield-vision-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	originalFrame := filepath.Join(tempDir, "original.png")
	perturbedFrame := filepath.Join(tempDir, "perturbed.png")

	if err := c.extractFrame(ctx, originalPath, originalFrame); err != nil {
		return 0, err
	}
	if err := c.extractFrame(ctx, perturbedPath, perturbedFrame); err != nil {
		return 0, err
	}

	a := gocv.IMRead(originalFrame, gocv.IMReadGrayScale)
	if a.Empty() {
		return 0, fmt.Errorf("failed to load frame: %s", originalFrame)
	}
	defer a.Close()

	b := gocv.IMRead(perturbedFrame, gocv.IMReadGrayScale)
	if b.Empty() {
		return 0, fmt.Errorf("failed to load frame: %s", perturbedFrame)
	}
	defer b.Close()

	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return 0, fmt.Errorf("frame dimensions differ: %dx%d vs %dx%d", a.Cols(), a.Rows(), b.Cols(), b.Rows())
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	return diff.Mean().Val1, nil
}

// extractFrame grabs a single frame one second into the video
func (c *FrameComparer) extractFrame(ctx context.Context, videoPath, outputPath string) error {
	args := []string{
		"-ss", "1",
		"-i", videoPath,
		"-frames:v", "1",
		"-y",
		"-loglevel", "error",
		outputPath,
	}
	if err := c.runner.Run(ctx, c.ffmpegPath, args...); err != nil {
		return fmt.Errorf("failed to extract frame from %s: %w", videoPath, err)
	}
	return nil
}
