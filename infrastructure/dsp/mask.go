package dsp

// Voice band boundaries for the spectral mask, in Hz.
const (
	voiceBandCeiling  = 4000.0
	preservedBandFrom = 8000.0
	maskFloor         = 0.001
)

// VoiceMask builds the per-bin gain curve for one STFT configuration.
// Bins below 4 kHz are attenuated to the floor (99.9%); bins from 4 kHz to
// 8 kHz ramp up with a quadratic ease-in; bins at or above 8 kHz are
// preserved fully. The curve is monotonically non-decreasing and bounded to
// [maskFloor, 1.0].
func VoiceMask(sampleRate, fftSize int) []float64 {
	bins := fftSize/2 + 1
	mask := make([]float64, bins)
	for i := range mask {
		freq := float64(i) * float64(sampleRate) / float64(fftSize)
		switch {
		case freq < voiceBandCeiling:
			mask[i] = maskFloor
		case freq < preservedBandFrom:
			t := (freq - voiceBandCeiling) / (preservedBandFrom - voiceBandCeiling)
			mask[i] = maskFloor + (1-maskFloor)*t*t
		default:
			mask[i] = 1.0
		}
	}
	return mask
}

// ApplyMask scales every frame's coefficients by the per-bin gains.
// Multiplying the complex coefficient by a real gain scales the magnitude
// and leaves the phase unchanged.
func ApplyMask(frames [][]complex128, mask []float64) {
	for _, frame := range frames {
		for i := range frame {
			frame[i] *= complex(mask[i], 0)
		}
	}
}
