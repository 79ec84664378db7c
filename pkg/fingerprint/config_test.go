package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, Full, cfg.Strategy)
	require.Greater(t, cfg.WorkerCount, 0)
	require.Equal(t, int64(defaultMemoryCeiling), cfg.MemoryCeilingBytes)
	require.NotNil(t, cfg.Logger)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := newConfig(
		WithStrategy(Fast),
		WithWorkerCount(4),
		WithMemoryCeiling(1024),
		WithSampleRateBounds(16000, 48000),
	)
	require.Equal(t, Fast, cfg.Strategy)
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, int64(1024), cfg.MemoryCeilingBytes)
	require.Equal(t, 16000, cfg.MinSampleRate)
	require.Equal(t, 48000, cfg.MaxSampleRate)
}

func TestWithWorkerCountClampsNonPositive(t *testing.T) {
	cfg := newConfig(WithWorkerCount(-5))
	require.Equal(t, 1, cfg.WorkerCount)
}
