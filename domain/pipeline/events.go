package pipeline

// ProgressEvent is a single progress record emitted during a pipeline run.
// Percent is monotonically non-decreasing across the run; a successful run
// terminates with step "complete" at percent 100.
type ProgressEvent struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ErrorEvent is the terminal record of a failed run. A failed run emits
// exactly one ErrorEvent and no further progress.
type ErrorEvent struct {
	Error string `json:"error"`
}

// ProgressReporter receives pipeline progress and failure events.
// This is a port that can be implemented by different transports; the
// production implementation writes line-delimited JSON to stdout.
type ProgressReporter interface {
	// Progress reports a completed stage transition
	Progress(step string, percent int, message string)

	// Fail reports the terminal failure of the run
	Fail(message string)
}
