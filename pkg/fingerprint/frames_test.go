package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHannWindow(t *testing.T) {
	sizes := []int{128, 256, 512, 2048}
	for _, size := range sizes {
		win := hannWindow(size)
		require.Len(t, win, size)
		for i, v := range win {
			require.GreaterOrEqualf(t, v, 0.0, "index %d", i)
			require.LessOrEqualf(t, v, 1.0, "index %d", i)
		}
		require.Less(t, win[0], win[size/2])
	}
}

func TestFrameCount(t *testing.T) {
	cases := []struct {
		numSamples int
		want       int
	}{
		{0, 0},
		{FFTSize/2 - 1, 0},
		{FFTSize, 3},
		{FFTSize + Hop, 4},
	}
	for _, c := range cases {
		got := frameCount(c.numSamples, FFTSize, Hop)
		require.Equal(t, c.want, got, "numSamples=%d", c.numSamples)
	}
}

func TestFrameIteratorZeroPadsTail(t *testing.T) {
	samples := make([]float64, FFTSize+Hop/2)
	for i := range samples {
		samples[i] = 1.0
	}
	win := hannWindow(FFTSize)
	it := newFrameIterator(samples, win, FFTSize, Hop)

	count := 0
	for {
		frame, ok := it.next()
		if !ok {
			break
		}
		require.Len(t, frame, FFTSize)
		count++
	}
	require.Equal(t, frameCount(len(samples), FFTSize, Hop), count)
}

func TestFrameIteratorReset(t *testing.T) {
	samples := make([]float64, FFTSize*2)
	win := hannWindow(FFTSize)
	it := newFrameIterator(samples, win, FFTSize, Hop)

	var first int
	for {
		_, ok := it.next()
		if !ok {
			break
		}
		first++
	}
	it.reset()
	var second int
	for {
		_, ok := it.next()
		if !ok {
			break
		}
		second++
	}
	require.Equal(t, first, second)
}
