//go:build !vision

package vision

import (
	"context"
	"fmt"

	"voiceshield-media/infrastructure/ffmpeg"
)

// FrameComparer is a stub when GoCV/OpenCV is not available
type FrameComparer struct{}

// FrameComparerOption is a functional option for configuring FrameComparer
type FrameComparerOption func(*FrameComparer)

// WithComparerPath is a no-op in stub mode
func WithComparerPath(path string) FrameComparerOption {
	return func(c *FrameComparer) {}
}

// WithComparerCommandRunner is a no-op in stub mode
func WithComparerCommandRunner(runner ffmpeg.CommandRunner) FrameComparerOption {
	return func(c *FrameComparer) {}
}

// NewFrameComparer creates a stub comparer (requires building with -tags=vision)
func NewFrameComparer(opts ...FrameComparerOption) *FrameComparer {
	return &FrameComparer{}
}

// MeanPixelDelta returns an error indicating frame comparison is not available
func (c *FrameComparer) MeanPixelDelta(ctx context.Context, originalPath, perturbedPath string) (float64, error) {
	return 0, fmt.Errorf("frame comparison not available: build with '-tags=vision' and install OpenCV/GoCV")
}
