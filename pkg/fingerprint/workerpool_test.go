package fingerprint

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelForWritesEveryIndexRegardlessOfWorkerCount(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		out := make([]int, 50)
		err := parallelFor(context.Background(), len(out), workers, func(i int) error {
			out[i] = i * i
			return nil
		})
		require.NoError(t, err)
		for i, v := range out {
			require.Equal(t, i*i, v)
		}
	}
}

func TestParallelForPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	err := parallelFor(context.Background(), 10, 4, func(i int) error {
		if i == 5 {
			return wantErr
		}
		return nil
	})
	require.ErrorIs(t, err, wantErr)
}

func TestParallelForZeroN(t *testing.T) {
	require.NoError(t, parallelFor(context.Background(), 0, 4, func(int) error {
		t.Fatal("should never be called")
		return nil
	}))
}

func TestParallelForRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	_ = parallelFor(ctx, 100, 1, func(i int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})
	require.Zero(t, atomic.LoadInt64(&calls))
}
