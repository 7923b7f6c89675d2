package dsp

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return x
}

func rms(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestVoiceMaskCurve(t *testing.T) {
	mask := VoiceMask(44100, DefaultFFTSize)

	if len(mask) != DefaultFFTSize/2+1 {
		t.Fatalf("mask bins = %d, want %d", len(mask), DefaultFFTSize/2+1)
	}

	binHz := 44100.0 / float64(DefaultFFTSize)

	// Voice band sits at the floor
	for i := 0; float64(i)*binHz < 4000; i++ {
		if mask[i] != 0.001 {
			t.Fatalf("bin %d (%.0f Hz) gain = %v, want 0.001", i, float64(i)*binHz, mask[i])
		}
	}

	// Preserved band is untouched
	for i := int(math.Ceil(8000 / binHz)); i < len(mask); i++ {
		if mask[i] != 1.0 {
			t.Fatalf("bin %d (%.0f Hz) gain = %v, want 1.0", i, float64(i)*binHz, mask[i])
		}
	}

	// Transition follows the quadratic ease-in
	mid := int(math.Ceil(6000 / binHz))
	freq := float64(mid) * binHz
	tt := (freq - 4000) / 4000
	want := 0.001 + 0.999*tt*tt
	if math.Abs(mask[mid]-want) > 1e-12 {
		t.Errorf("bin %d gain = %v, want %v", mid, mask[mid], want)
	}
}

func TestVoiceMaskMonotoneAndBounded(t *testing.T) {
	mask := VoiceMask(44100, DefaultFFTSize)
	for i := 1; i < len(mask); i++ {
		if mask[i] < mask[i-1] {
			t.Fatalf("mask decreases at bin %d: %v -> %v", i, mask[i-1], mask[i])
		}
	}
	for i, g := range mask {
		if g < 0.001 || g > 1.0 {
			t.Fatalf("bin %d gain %v outside [0.001, 1.0]", i, g)
		}
	}
}

func TestSTFTRoundTrip(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)
	x := sine(440, 44100, 22050)

	frames := s.Analyze(x)
	y := s.Synthesize(frames, len(x))

	if len(y) != len(x) {
		t.Fatalf("length = %d, want %d", len(y), len(x))
	}
	maxErr := 0.0
	for i := range x {
		if e := math.Abs(y[i] - x[i]); e > maxErr {
			maxErr = e
		}
	}
	if maxErr > 1e-6 {
		t.Errorf("round-trip max error = %v", maxErr)
	}
}

func TestMaskAttenuatesVoiceBand(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)
	mask := VoiceMask(44100, DefaultFFTSize)

	x := sine(1000, 44100, 44100)
	inRMS := rms(x)

	frames := s.Analyze(x)
	ApplyMask(frames, mask)
	y := s.Synthesize(frames, len(x))

	if outRMS := rms(y); outRMS > 0.01*inRMS {
		t.Errorf("1 kHz content attenuated to %.2f%% of input, want <= 1%%", 100*outRMS/inRMS)
	}
}

func TestMaskPreservesHighBand(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)
	mask := VoiceMask(44100, DefaultFFTSize)

	x := sine(10000, 44100, 44100)
	inRMS := rms(x)

	frames := s.Analyze(x)
	ApplyMask(frames, mask)
	y := s.Synthesize(frames, len(x))

	outRMS := rms(y)
	if math.Abs(outRMS-inRMS) > 0.01*inRMS {
		t.Errorf("10 kHz content changed by %.2f%%, want <= 1%%", 100*math.Abs(outRMS-inRMS)/inRMS)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)
	x := sine(3000, 44100, 8192)

	a := s.Analyze(x)
	b := s.Analyze(x)
	for f := range a {
		for i := range a[f] {
			if a[f][i] != b[f][i] {
				t.Fatalf("frame %d bin %d differs between runs", f, i)
			}
		}
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)

	for _, x := range [][]float64{nil, {}} {
		frames := s.Analyze(x)
		if len(frames) != 0 {
			t.Fatalf("empty input produced %d frames, want 0", len(frames))
		}
		if y := s.Synthesize(frames, 0); len(y) != 0 {
			t.Fatalf("empty analysis synthesized %d samples, want 0", len(y))
		}
	}
}

func TestAnalyzeSingleSample(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)

	frames := s.Analyze([]float64{0.5})
	if len(frames) == 0 {
		t.Fatal("no frames for single-sample input")
	}
	if y := s.Synthesize(frames, 1); len(y) != 1 {
		t.Fatalf("length = %d, want 1", len(y))
	}
}

func TestMirrorIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 1, 0},
		{-5, 1, 0},
		{-1, 4, 1},
		{-3, 4, 3},
		{3, 4, 3},
		{4, 4, 2},
		{6, 4, 0},
		{7, 4, 1}, // past one full period
		{-7, 4, 1},
	}
	for _, tt := range tests {
		if got := mirrorIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("mirrorIndex(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestShortInput(t *testing.T) {
	s := NewSTFT(DefaultFFTSize, DefaultHopSize)
	x := sine(440, 44100, 256) // shorter than one window

	frames := s.Analyze(x)
	if len(frames) == 0 {
		t.Fatal("no frames for short input")
	}
	y := s.Synthesize(frames, len(x))
	if len(y) != len(x) {
		t.Fatalf("length = %d, want %d", len(y), len(x))
	}
}
