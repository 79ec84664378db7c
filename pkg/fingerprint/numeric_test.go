package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, clamp(-5, 0, 1))
	require.Equal(t, 1.0, clamp(5, 0, 1))
	require.Equal(t, 0.5, clamp(0.5, 0, 1))
}

func TestRMSOfConstantSignal(t *testing.T) {
	signal := make([]float64, 100)
	for i := range signal {
		signal[i] = 2.0
	}
	require.InDelta(t, 2.0, rms(signal), 1e-9)
	require.Zero(t, rms(nil))
}

func TestPeakAbs(t *testing.T) {
	require.Equal(t, 3.0, peakAbs([]float64{-1, 2, -3, 0}))
	require.Zero(t, peakAbs(nil))
}

func TestCoeffVariationZeroMean(t *testing.T) {
	require.Zero(t, coeffVariation([]float64{0, 0, 0}))
}

func TestToDBFloorsAtNegativeInfinityEquivalent(t *testing.T) {
	db := toDB(0)
	require.False(t, math.IsInf(db, -1))
	require.Less(t, db, -190.0)
}

func TestIsFinite(t *testing.T) {
	require.True(t, isFinite(1.5))
	require.False(t, isFinite(math.NaN()))
	require.False(t, isFinite(math.Inf(1)))
}
