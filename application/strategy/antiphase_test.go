package strategy

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"voiceshield-media/domain/audio"
	"voiceshield-media/infrastructure/reporting"
	"voiceshield-media/infrastructure/wavio"
)

func TestAntiphaseTransformCancelsExactly(t *testing.T) {
	ws := t.TempDir()
	n := 22050
	left := make([]float64, n)
	right := make([]float64, n)
	for i := range left {
		ts := float64(i) / 44100
		left[i] = 0.5 * math.Sin(2*math.Pi*440*ts)
		right[i] = 0.3 * math.Sin(2*math.Pi*660*ts)
	}
	src := filepath.Join(ws, "audio_original.wav")
	in := &audio.Buffer{SampleRate: 44100, Channels: [][]float64{left, right}}
	if err := wavio.Encode(src, in); err != nil {
		t.Fatal(err)
	}

	s := NewAntiphaseEncode()
	art, err := s.Transform(context.Background(), transformReq(src, ws, reporting.NewMemoryReporter()))
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	out, err := wavio.Decode(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	if out.NumChannels() != 2 {
		t.Fatalf("output channels = %d, want 2", out.NumChannels())
	}
	if out.Len() != n {
		t.Fatalf("output length = %d, want %d", out.Len(), n)
	}

	// The stored samples are exact negations, so the decoded downmix sums
	// to zero sample-for-sample even after 16-bit quantization.
	for i := 0; i < out.Len(); i++ {
		if sum := out.Channels[0][i] + out.Channels[1][i]; sum != 0 {
			t.Fatalf("sample %d: ch0+ch1 = %v, want exactly 0", i, sum)
		}
	}

	// Channel 0 carries the mono downmix of the decoded input
	decIn, err := wavio.Decode(src)
	if err != nil {
		t.Fatal(err)
	}
	mono := audio.MonoDownmix(decIn)
	for i := range mono {
		if diff := math.Abs(out.Channels[0][i] - mono[i]); diff > 1.0/32768 {
			t.Fatalf("sample %d: ch0 differs from mono downmix by %v", i, diff)
		}
	}
}

func TestAntiphaseMonoInput(t *testing.T) {
	ws := t.TempDir()
	n := 4096
	mono := make([]float64, n)
	for i := range mono {
		mono[i] = 0.25 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	src := filepath.Join(ws, "mono.wav")
	if err := wavio.Encode(src, &audio.Buffer{SampleRate: 44100, Channels: [][]float64{mono}}); err != nil {
		t.Fatal(err)
	}

	s := NewAntiphaseEncode()
	art, err := s.Transform(context.Background(), transformReq(src, ws, reporting.NewMemoryReporter()))
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}

	out, err := wavio.Decode(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	if out.NumChannels() != 2 {
		t.Fatalf("output channels = %d, want 2", out.NumChannels())
	}
	// Mono input is used directly as the in-phase channel
	decIn, _ := wavio.Decode(src)
	for i := 0; i < out.Len(); i++ {
		if out.Channels[0][i] != decIn.Channels[0][i] {
			t.Fatalf("sample %d: ch0 = %v, want %v", i, out.Channels[0][i], decIn.Channels[0][i])
		}
	}
}

func TestAntiphaseDeterministic(t *testing.T) {
	ws := t.TempDir()
	src := writeTestWAV(t, ws, "audio_original.wav")

	s := NewAntiphaseEncode()
	a1, err := s.Transform(context.Background(), transformReq(src, ws, reporting.NewMemoryReporter()))
	if err != nil {
		t.Fatal(err)
	}
	b1, err := os.ReadFile(a1.Path)
	if err != nil {
		t.Fatal(err)
	}

	a2, err := s.Transform(context.Background(), transformReq(src, ws, reporting.NewMemoryReporter()))
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(a2.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b1) != string(b2) {
		t.Error("same input produced different intermediate wav bytes")
	}
}
