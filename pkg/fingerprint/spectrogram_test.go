package fingerprint

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSpectrogramRejectsEmptyAndShortBuffers(t *testing.T) {
	ctx := context.Background()

	_, err := computeSpectrogram(ctx, nil, 44100)
	require.Error(t, err)
	require.Equal(t, KindInvalidAudio, KindOf(err))

	_, err = computeSpectrogram(ctx, make([]float64, FFTSize-1), 44100)
	require.Error(t, err)
	require.Equal(t, KindInvalidAudio, KindOf(err))
}

func TestComputeSpectrogramSilence(t *testing.T) {
	mono := make([]float64, FFTSize*4)
	spec, err := computeSpectrogram(context.Background(), mono, 44100)
	require.NoError(t, err)
	require.Equal(t, FFTSize/2, len(spec.AvgSpectrum))
	require.Greater(t, spec.FrameCount, 0)
	for _, v := range spec.AvgSpectrum {
		require.InDelta(t, magnitudeFloor, v, 1e-9)
	}
}

func TestComputeSpectrogramFluxNonNegative(t *testing.T) {
	mono := make([]float64, FFTSize*6)
	for i := range mono {
		mono[i] = math.Sin(float64(i) * 0.3)
	}
	spec, err := computeSpectrogram(context.Background(), mono, 44100)
	require.NoError(t, err)
	for i, f := range spec.Flux {
		require.GreaterOrEqualf(t, f, 0.0, "flux index %d", i)
	}
}

func TestComputeSpectrogramCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mono := make([]float64, FFTSize*4)
	_, err := computeSpectrogram(ctx, mono, 44100)
	require.Error(t, err)
	require.Equal(t, KindCancelled, KindOf(err))
}
