package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validInputs() assembleInputs {
	return assembleInputs{
		bands:    [7]float64{10, 10, 10, 10, 10, 10, 10},
		dynamics: dynamics{LUFS: -20, CrestDB: 10, BassMidRatio: 0},
		temporal: temporal{TempoBPM: 120, RhythmStability: 0.8, TransientDensity: 0.3, SilenceRatio: 0.1},
		shape:    spectralShape{Centroid: 0.5, Rolloff: 0.6, Flatness: 0.3},
		harmonic: harmonicAnalysis{HarmonicRatio: 0.7, PitchStability: 0.6, ChromaEnergy: 0.2},
		variation: variation{DynamicRangeVariation: 0.2, LoudnessVariationStd: 1.5, PeakConsistency: 0.9},
		stereo:   stereoResult{Width: 0.4, Phase: 0.8},
	}
}

func TestAssembleFingerprintValidInputsStayValid(t *testing.T) {
	fp, validation := assembleFingerprint(validInputs())
	require.True(t, validation.Valid)
	require.Empty(t, validation.InvalidFields)
	require.Equal(t, 120.0, fp.TempoBPM)
	require.Equal(t, 0.7, fp.HarmonicRatio)
}

func TestAssembleFingerprintClampsOutOfRangeValues(t *testing.T) {
	in := validInputs()
	in.dynamics.LUFS = -500
	in.temporal.TempoBPM = 5
	in.stereo.Phase = 3

	fp, validation := assembleFingerprint(in)
	require.True(t, validation.Valid) // clamping still produces a finite, valid value
	require.Equal(t, -120.0, fp.LUFS)
	require.Equal(t, 40.0, fp.TempoBPM)
	require.Equal(t, 1.0, fp.PhaseCorrelation)
}

func TestAssembleFingerprintRepairsNonFiniteFields(t *testing.T) {
	in := validInputs()
	in.harmonic.HarmonicRatio = math.NaN()
	in.dynamics.BassMidRatio = math.Inf(1)

	fp, validation := assembleFingerprint(in)
	require.False(t, validation.Valid)
	require.ElementsMatch(t, []string{"harmonic_ratio", "bass_mid_ratio"}, validation.InvalidFields)
	require.True(t, isFinite(fp.HarmonicRatio))
	require.True(t, isFinite(fp.BassMidRatio))
}
