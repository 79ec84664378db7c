package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateTempoShortFluxDefaultsTo120(t *testing.T) {
	require.Equal(t, 120.0, estimateTempo([]float64{0.1}, 44100))
	require.Equal(t, 120.0, estimateTempo(nil, 44100))
}

func TestEstimateTempoFindsPeriodicPulse(t *testing.T) {
	sampleRate := 44100
	fps := float64(sampleRate) / float64(Hop)
	const targetBPM = 120.0
	period := int(math.Round(fps * 60 / targetBPM))

	flux := make([]float64, period*8)
	for i := range flux {
		if i%period == 0 {
			flux[i] = 1.0
		}
	}

	bpm := estimateTempo(flux, sampleRate)
	require.GreaterOrEqual(t, bpm, tempoOutputLo)
	require.LessOrEqual(t, bpm, tempoOutputHi)
	require.InDelta(t, targetBPM, bpm, 5)
}

func TestCorrectOctaveFallsBackTo120(t *testing.T) {
	require.Equal(t, 120.0, correctOctave(0))
}

func TestEstimateRhythmStabilityConstantIsMaximallyStable(t *testing.T) {
	sampleRate := 44100
	mono := make([]float64, sampleRate*2)
	for i := range mono {
		mono[i] = 0.5
	}
	stability := estimateRhythmStability(mono, sampleRate)
	require.Greater(t, stability, 0.95)
}

func TestEstimateSilenceRatioSilentBufferIsOne(t *testing.T) {
	mono := make([]float64, 1000)
	require.Equal(t, 1.0, estimateSilenceRatio(mono))
}

func TestEstimateTransientDensityEmptyIsZero(t *testing.T) {
	require.Zero(t, estimateTransientDensity(nil, 44100))
	require.Zero(t, estimateTransientDensity(make([]float64, 10), 44100))
}
