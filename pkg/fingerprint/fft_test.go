package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameSpectrumFloorsAndLength(t *testing.T) {
	frame := make([]float64, 256) // silence
	out := frameSpectrum(frame, nil)

	require.Len(t, out, 128)
	for i, v := range out {
		require.GreaterOrEqualf(t, v, magnitudeFloor, "bin %d", i)
	}
}

func TestFrameSpectrumDetectsTone(t *testing.T) {
	n := 256
	frame := make([]float64, n)
	// a pure sinusoid at bin 8 of an n-point transform
	const bin = 8
	for i := range frame {
		frame[i] = sinTestTone(i, bin, n)
	}
	out := frameSpectrum(frame, nil)

	maxBin := 0
	for i, v := range out {
		if v > out[maxBin] {
			maxBin = i
		}
	}
	require.Equal(t, bin, maxBin)
}

func sinTestTone(i, bin, n int) float64 {
	return math.Sin(2 * math.Pi * float64(bin) * float64(i) / float64(n))
}

func TestBinHzAndHzToBinAreInverses(t *testing.T) {
	sampleRate := 44100
	for k := 0; k < FFTSize/2; k += 37 {
		hz := binHz(k, FFTSize, sampleRate)
		back := hzToBin(hz, FFTSize, sampleRate)
		require.InDelta(t, k, back, 1)
	}
}
