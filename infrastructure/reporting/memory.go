package reporting

import "voiceshield-media/domain/pipeline"

// MemoryReporter implements pipeline.ProgressReporter by collecting events
// in memory. It substitutes for the JSON transport in tests.
type MemoryReporter struct {
	Events []pipeline.ProgressEvent
	Errors []pipeline.ErrorEvent
}

// NewMemoryReporter creates an empty in-memory reporter
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// Progress implements pipeline.ProgressReporter
func (r *MemoryReporter) Progress(step string, percent int, message string) {
	r.Events = append(r.Events, pipeline.ProgressEvent{Step: step, Percent: percent, Message: message})
}

// Fail implements pipeline.ProgressReporter
func (r *MemoryReporter) Fail(message string) {
	r.Errors = append(r.Errors, pipeline.ErrorEvent{Error: message})
}

// Last returns the most recent progress event, or a zero event if none
func (r *MemoryReporter) Last() pipeline.ProgressEvent {
	if len(r.Events) == 0 {
		return pipeline.ProgressEvent{}
	}
	return r.Events[len(r.Events)-1]
}

// Ensure MemoryReporter implements pipeline.ProgressReporter
var _ pipeline.ProgressReporter = (*MemoryReporter)(nil)
