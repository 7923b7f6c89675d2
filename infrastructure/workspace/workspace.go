// Package workspace provides the scoped temporary directory that holds all
// intermediate files of one pipeline run.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is an exclusively-owned temporary directory. It is created at
// pipeline start and must be released on every exit path; intermediate files
// are never referenced after release.
type Workspace struct {
	dir string
}

// New creates a fresh workspace directory
func New() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "voiceshield-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of a named file inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Release removes the directory tree. Removal errors are ignored; the
// workspace is disposable and the run outcome is already decided by the time
// Release runs.
func (w *Workspace) Release() {
	if w.dir == "" {
		return
	}
	os.RemoveAll(w.dir)
	w.dir = ""
}
