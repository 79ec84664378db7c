package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeVariationTooShortIsZeroValue(t *testing.T) {
	v := analyzeVariation(make([]float64, 10), 44100)
	require.Equal(t, variation{}, v)
}

func TestAnalyzeVariationConstantSignalIsMaximallyConsistent(t *testing.T) {
	sampleRate := 44100
	mono := make([]float64, sampleRate*2)
	for i := range mono {
		mono[i] = 0.5
	}
	v := analyzeVariation(mono, sampleRate)

	require.InDelta(t, 0.0, v.DynamicRangeVariation, 1e-6)
	require.Greater(t, v.PeakConsistency, 0.95)
	require.GreaterOrEqual(t, v.LoudnessVariationStd, 0.0)
}
