package fingerprint

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHarmonicRatioHPSSToneIsMostlyHarmonic(t *testing.T) {
	sampleRate := 44100
	mono := sineWave(2, 220, sampleRate)

	ratio, err := harmonicRatioHPSS(context.Background(), mono)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ratio, 0.0)
	require.LessOrEqual(t, ratio, 1.0)
	require.Greater(t, ratio, 0.5) // a sustained pure tone is harmonic-dominant
}

func TestHarmonicRatioHPSSSilenceDefaultsToHalf(t *testing.T) {
	mono := make([]float64, FFTSize*40)
	ratio, err := harmonicRatioHPSS(context.Background(), mono)
	require.NoError(t, err)
	require.Equal(t, 0.5, ratio)
}

func TestYinFrameDetectsKnownFrequency(t *testing.T) {
	sampleRate := 44100
	const freq = 220.0
	frame := make([]float64, FFTSize)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}

	hz, ok := yinFrame(frame, sampleRate)
	require.True(t, ok)
	require.InDelta(t, freq, hz, 5)
}

func TestYinFrameSilenceIsUnvoiced(t *testing.T) {
	_, ok := yinFrame(make([]float64, FFTSize), 44100)
	require.False(t, ok)
}

func TestPitchStabilityYINStableToneIsHigh(t *testing.T) {
	sampleRate := 44100
	mono := sineWave(3, 220, sampleRate)
	stability, err := pitchStabilityYIN(context.Background(), mono, sampleRate, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, stability, 0.0)
	require.LessOrEqual(t, stability, 1.0)
}

func TestChromaEnergyCQTZeroTotalEnergyIsZero(t *testing.T) {
	mono := sineWave(1, 220, 44100)
	energy, err := chromaEnergyCQT(context.Background(), mono, 44100, 0, 2)
	require.NoError(t, err)
	require.Zero(t, energy)
}

func TestHarmonicRatioPeakProxyPureToneIsHigh(t *testing.T) {
	avg := make([]float64, 512)
	avg[100] = 1.0
	require.Greater(t, harmonicRatioPeakProxy(avg), 0.8)
}

func TestAnalyzeHarmonicFastStaysInRange(t *testing.T) {
	mono := sineWave(2, 440, 44100)
	avg := make([]float64, FFTSize/2)
	avg[hzToBin(440, FFTSize, 44100)] = 1.0

	h := analyzeHarmonicFast(mono, avg, 44100)
	require.GreaterOrEqual(t, h.HarmonicRatio, 0.0)
	require.LessOrEqual(t, h.HarmonicRatio, 1.0)
	require.GreaterOrEqual(t, h.PitchStability, 0.0)
	require.LessOrEqual(t, h.PitchStability, 1.0)
	require.GreaterOrEqual(t, h.ChromaEnergy, 0.0)
	require.LessOrEqual(t, h.ChromaEnergy, 1.0)
}
