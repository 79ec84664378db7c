package fingerprint

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const magnitudeFloor = 1e-10

// frameSpectrum computes the forward real FFT of a windowed frame and
// returns len(frame)/2 linear magnitudes, each divided by len(frame) and
// floored at magnitudeFloor. The spectrum is never expressed in dB here —
// summing dB values before flooring silently zeros real energy, which is
// exactly the bug this layer exists to avoid.
func frameSpectrum(frame []float64, out []float64) []float64 {
	half := len(frame) / 2
	if cap(out) < half {
		out = make([]float64, half)
	}
	out = out[:half]

	spectrum := fft.FFTReal(frame)
	n := float64(len(frame))
	for k := 0; k < half; k++ {
		mag := cmplx.Abs(spectrum[k]) / n
		if mag < magnitudeFloor {
			mag = magnitudeFloor
		}
		out[k] = mag
	}
	return out
}

// binHz maps FFT bin k to its center frequency in Hz for a transform of
// the given size at the given sample rate.
func binHz(k, fftSize, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / float64(fftSize)
}

// hzToBin is the inverse of binHz, floored to the containing bin.
func hzToBin(hz float64, fftSize, sampleRate int) int {
	bin := int(hz * float64(fftSize) / float64(sampleRate))
	if bin < 0 {
		bin = 0
	}
	return bin
}
