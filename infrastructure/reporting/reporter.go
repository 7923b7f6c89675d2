// Package reporting implements the progress protocol: one line-delimited
// JSON object per event, written unbuffered so a supervising process can
// parse them as they happen.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"

	"voiceshield-media/domain/pipeline"
)

// JSONReporter implements pipeline.ProgressReporter by writing one JSON
// object per line to the underlying writer.
type JSONReporter struct {
	out io.Writer
}

// NewJSONReporter creates a reporter writing to w
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{out: w}
}

// Progress implements pipeline.ProgressReporter
func (r *JSONReporter) Progress(step string, percent int, message string) {
	r.emit(pipeline.ProgressEvent{Step: step, Percent: percent, Message: message})
}

// Fail implements pipeline.ProgressReporter
func (r *JSONReporter) Fail(message string) {
	r.emit(pipeline.ErrorEvent{Error: message})
}

func (r *JSONReporter) emit(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintln(r.out, string(data))
}

// Ensure JSONReporter implements pipeline.ProgressReporter
var _ pipeline.ProgressReporter = (*JSONReporter)(nil)
