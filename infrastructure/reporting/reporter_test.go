package reporting

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONReporterProgressLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.Progress("start", 5, "Starting processing")
	r.Progress("extract", 10, "Extracting audio")
	r.Progress("complete", 100, "Done")

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}

	var first struct {
		Step    string `json:"step"`
		Percent int    `json:"percent"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if first.Step != "start" || first.Percent != 5 || first.Message != "Starting processing" {
		t.Errorf("first event = %+v", first)
	}

	var last map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("last line is not valid JSON: %v", err)
	}
	if last["step"] != "complete" || last["percent"] != float64(100) {
		t.Errorf("terminal event = %v", last)
	}
}

func TestJSONReporterFail(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.Fail("input file not found: missing.mp4")

	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "\n") != 0 {
		t.Fatalf("failure emitted more than one line: %q", out)
	}

	var ev struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &ev); err != nil {
		t.Fatalf("error line is not valid JSON: %v", err)
	}
	if ev.Error != "input file not found: missing.mp4" {
		t.Errorf("error = %q", ev.Error)
	}
}

func TestMemoryReporter(t *testing.T) {
	r := NewMemoryReporter()
	r.Progress("start", 5, "go")
	r.Progress("complete", 100, "done")
	r.Fail("boom")

	if len(r.Events) != 2 || len(r.Errors) != 1 {
		t.Fatalf("events = %d errors = %d", len(r.Events), len(r.Errors))
	}
	if r.Last().Step != "complete" {
		t.Errorf("Last().Step = %s", r.Last().Step)
	}
}
