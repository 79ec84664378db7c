package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeSpectralShapeEmptyUsesDefaults(t *testing.T) {
	shape := analyzeSpectralShape(nil)
	require.Equal(t, spectralShape{Centroid: 0.5, Rolloff: 0.5, Flatness: 0.5}, shape)
}

func TestAnalyzeSpectralShapeSingleBinIsBrightAndPeaked(t *testing.T) {
	avg := make([]float64, 256)
	avg[250] = 1.0 // energy concentrated near the top of the range

	shape := analyzeSpectralShape(avg)
	require.Greater(t, shape.Centroid, 0.9)
	require.Greater(t, shape.Rolloff, 0.9)
	require.Less(t, shape.Flatness, 0.1) // a single spike is maximally non-flat
}

func TestAnalyzeSpectralShapeFlatSpectrumIsFlat(t *testing.T) {
	avg := make([]float64, 256)
	for i := range avg {
		avg[i] = 1.0
	}
	shape := analyzeSpectralShape(avg)
	require.Greater(t, shape.Flatness, 0.9)
}
