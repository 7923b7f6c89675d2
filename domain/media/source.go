package media

import "fmt"

// Source represents an input media container. It is read-only; the pipeline
// never mutates the file it points to.
type Source struct {
	Path string

	// HasAudioStream is set from the probe result before any strategy that
	// requires audio runs
	HasAudioStream bool
}

// NewSource creates a Source with validation
func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("source path is required")
	}
	return &Source{Path: path}, nil
}
