package ffmpeg

import (
	"context"
	"fmt"
	"math"

	"voiceshield-media/domain/pipeline"
)

// Noise strength bounds keep the perturbation effective but imperceptible.
const (
	minNoiseStrength = 5
	maxNoiseStrength = 12
)

// DefaultPerturbIntensity is the caller-facing intensity used when none is
// given on the command line.
const DefaultPerturbIntensity = 3.0

// Perturber applies an adversarial noise+hue filter chain to the video
// stream. The noise component varies both per frame and per pixel so a fixed
// pattern cannot be learned; the slight desaturation shifts color features.
type Perturber struct {
	ffmpegPath string
	runner     CommandRunner
}

// PerturberOption is a functional option for configuring Perturber
type PerturberOption func(*Perturber)

// WithPerturberFFmpegPath sets a custom ffmpeg executable path
func WithPerturberFFmpegPath(path string) PerturberOption {
	return func(p *Perturber) {
		p.ffmpegPath = path
	}
}

// WithPerturberCommandRunner sets a custom command runner (for testing)
func WithPerturberCommandRunner(runner CommandRunner) PerturberOption {
	return func(p *Perturber) {
		p.runner = runner
	}
}

// NewPerturber creates a new FFmpeg-based video perturber
func NewPerturber(opts ...PerturberOption) *Perturber {
	p := &Perturber{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NoiseStrength maps the caller-supplied intensity to the noise filter
// strength, clamped to the safe range. Intensity 0 still perturbs at the
// minimum strength, never at zero.
func NoiseStrength(intensity float64) int {
	n := int(math.Round(intensity * 2.8))
	if n < minNoiseStrength {
		return minNoiseStrength
	}
	if n > maxNoiseStrength {
		return maxNoiseStrength
	}
	return n
}

// Perturb re-encodes the video stream of sourcePath with the noise+hue
// filter chain into a video-only intermediate at outputPath. The high-quality
// encode (crf 17) preserves the perturbation through the final container.
func (p *Perturber) Perturb(ctx context.Context, sourcePath, outputPath string, intensity float64) error {
	filter := fmt.Sprintf("noise=alls=%d:allf=t+u,hue=s=0.97", NoiseStrength(intensity))

	args := []string{
		"-i", sourcePath,
		"-vf", filter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "17",
		"-pix_fmt", "yuv420p",
		"-an",
		"-movflags", "+faststart",
		"-y",
		"-loglevel", "error",
		outputPath,
	}

	if err := p.runner.Run(ctx, p.ffmpegPath, args...); err != nil {
		return fmt.Errorf("%w: video perturbation: %s", pipeline.ErrToolExecutionFailed, err)
	}

	return nil
}
