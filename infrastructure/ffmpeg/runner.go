package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// stderrTailLimit bounds how much diagnostic output from a failed tool ends
// up in user-facing error messages.
const stderrTailLimit = 500

// CommandRunner defines the interface for running external commands.
// This allows mocking exec.Command in tests.
type CommandRunner interface {
	// Run executes a command to completion. On nonzero exit the returned
	// error carries the tail of the captured stderr.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
// Execution is synchronous and blocking; both streams are captured fully
// before the call returns. There is no retry at this level or above.
type ExecCommandRunner struct{}

// Run executes a command and returns any error with the stderr tail attached
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, StderrTail(stderr.String()))
	}
	return nil
}

// Output executes a command and returns its stdout
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, StderrTail(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// StderrTail returns the last portion of a diagnostic stream, enough for a
// user-facing message without dumping the full tool log.
func StderrTail(s string) string {
	if len(s) <= stderrTailLimit {
		return s
	}
	return s[len(s)-stderrTailLimit:]
}
