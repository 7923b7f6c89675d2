// Package demucs adapts the external two-stem source-separation tool.
package demucs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/ffmpeg"
)

// nonVocalMarker identifies the non-vocal stem in the model's output names.
const nonVocalMarker = "no_vocals"

// DefaultModel is the separation model requested when none is configured.
const DefaultModel = "htdemucs"

// Separator runs the separation tool on an extracted WAV and locates the
// non-vocal stem it produced. Stems are requested lossy-encoded to bound
// disk usage inside the workspace.
type Separator struct {
	demucsPath string
	model      string
	runner     ffmpeg.CommandRunner
}

// SeparatorOption is a functional option for configuring Separator
type SeparatorOption func(*Separator)

// WithSeparatorPath sets a custom demucs executable path
func WithSeparatorPath(path string) SeparatorOption {
	return func(s *Separator) {
		s.demucsPath = path
	}
}

// WithSeparatorModel sets the separation model name
func WithSeparatorModel(model string) SeparatorOption {
	return func(s *Separator) {
		s.model = model
	}
}

// WithSeparatorCommandRunner sets a custom command runner (for testing)
func WithSeparatorCommandRunner(runner ffmpeg.CommandRunner) SeparatorOption {
	return func(s *Separator) {
		s.runner = runner
	}
}

// NewSeparator creates a new demucs-based separator
func NewSeparator(opts ...SeparatorOption) *Separator {
	s := &Separator{
		demucsPath: "demucs",
		model:      DefaultModel,
		runner:     &ffmpeg.ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Separate runs the two-stem vocals split on inputWAV, directing output
// under outputRoot, and returns the path of the non-vocal stem.
//
// The stem is looked up at the model's conventional output location first.
// If it is not there, a bounded fallback scans outputRoot recursively and
// selects the first match in lexicographic path order; the tool does not
// promise a layout, so the scan order is pinned to keep the choice
// deterministic when several files match.
func (s *Separator) Separate(ctx context.Context, inputWAV, outputRoot string) (string, error) {
	args := []string{
		"--two-stems", "vocals",
		"--mp3",
		"-n", s.model,
		"-o", outputRoot,
		inputWAV,
	}

	if err := s.runner.Run(ctx, s.demucsPath, args...); err != nil {
		return "", fmt.Errorf("%w: %s", pipeline.ErrSeparationFailed, err)
	}

	base := strings.TrimSuffix(filepath.Base(inputWAV), filepath.Ext(inputWAV))
	conventional := filepath.Join(outputRoot, s.model, base, nonVocalMarker+".mp3")
	if _, err := os.Stat(conventional); err == nil {
		return conventional, nil
	}

	if found := scanForStem(outputRoot); found != "" {
		return found, nil
	}

	return "", fmt.Errorf("%w: no %q stem under %s", pipeline.ErrSeparationOutputMissing, nonVocalMarker, outputRoot)
}

// scanForStem walks the output tree for any file whose name contains the
// non-vocal marker and returns the lexicographically first match.
func scanForStem(root string) string {
	var matches []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.Contains(d.Name(), nonVocalMarker) {
			matches = append(matches, path)
		}
		return nil
	})
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}
