package fingerprint

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sineWave(seconds float64, freq float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestAnalyzeRejectsEmptyBuffer(t *testing.T) {
	_, _, err := Analyze(context.Background(), nil, 44100, 1)
	require.Error(t, err)
	require.Equal(t, KindInvalidAudio, KindOf(err))
}

func TestAnalyzeRejectsOutOfRangeSampleRate(t *testing.T) {
	samples := sineWave(1, 440, 44100)
	_, _, err := Analyze(context.Background(), samples, 500, 1)
	require.Error(t, err)
	require.Equal(t, KindInvalidAudio, KindOf(err))
}

func TestAnalyzeRejectsNonFiniteSamples(t *testing.T) {
	samples := sineWave(1, 440, 44100)
	samples[10] = math.NaN()
	_, _, err := Analyze(context.Background(), samples, 44100, 1)
	require.Error(t, err)
	require.Equal(t, KindInvalidAudio, KindOf(err))
}

func TestAnalyzeMonoFastStrategyProducesValidFingerprint(t *testing.T) {
	samples := sineWave(3, 440, 44100)
	fp, validation, err := Analyze(context.Background(), samples, 44100, 1, WithStrategy(Fast))
	require.NoError(t, err)
	require.True(t, validation.Valid)
	require.NotNil(t, fp)

	require.GreaterOrEqual(t, fp.SpectralCentroid, 0.0)
	require.LessOrEqual(t, fp.SpectralCentroid, 1.0)
	require.GreaterOrEqual(t, fp.TempoBPM, 40.0)
	require.LessOrEqual(t, fp.TempoBPM, 200.0)
	require.Equal(t, 0.0, fp.StereoWidth) // mono input
	require.Equal(t, 1.0, fp.PhaseCorrelation)
}

func TestAnalyzeFullStrategyProducesValidFingerprint(t *testing.T) {
	samples := sineWave(3, 220, 44100)
	fp, validation, err := Analyze(context.Background(), samples, 44100, 1, WithStrategy(Full), WithWorkerCount(2))
	require.NoError(t, err)
	require.True(t, validation.Valid)
	require.GreaterOrEqual(t, fp.HarmonicRatio, 0.0)
	require.LessOrEqual(t, fp.HarmonicRatio, 1.0)
	require.GreaterOrEqual(t, fp.PitchStability, 0.0)
	require.LessOrEqual(t, fp.PitchStability, 1.0)
	require.GreaterOrEqual(t, fp.ChromaEnergy, 0.0)
	require.LessOrEqual(t, fp.ChromaEnergy, 1.0)
}

func TestAnalyzeStereoInterleavedInput(t *testing.T) {
	mono := sineWave(2, 330, 44100)
	interleaved := make([]float64, len(mono)*2)
	for i, v := range mono {
		interleaved[2*i] = v
		interleaved[2*i+1] = v * 0.5
	}

	fp, validation, err := Analyze(context.Background(), interleaved, 44100, 2, WithStrategy(Fast))
	require.NoError(t, err)
	require.True(t, validation.Valid)
	require.Greater(t, fp.StereoWidth, 0.0)
}

func TestAnalyzeRespectsMemoryCeiling(t *testing.T) {
	samples := sineWave(1, 440, 44100)
	_, _, err := Analyze(context.Background(), samples, 44100, 1, WithMemoryCeiling(1024))
	require.Error(t, err)
	require.Equal(t, KindResourceExhausted, KindOf(err))
}

func TestAnalyzeCancellation(t *testing.T) {
	samples := sineWave(5, 440, 44100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Analyze(ctx, samples, 44100, 1)
	require.Error(t, err)
	require.Equal(t, KindCancelled, KindOf(err))
}
