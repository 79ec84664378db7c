package fingerprint

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rms is the root-mean-square of signal; 0 for an empty slice.
func rms(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	sumSq := floats.Dot(signal, signal)
	return math.Sqrt(sumSq / float64(len(signal)))
}

// peakAbs is max(|s|) over signal.
func peakAbs(signal []float64) float64 {
	peak := 0.0
	for _, s := range signal {
		a := math.Abs(s)
		if a > peak {
			peak = a
		}
	}
	return peak
}

// meanStd returns the mean and the sample (n-1) standard deviation of
// values using gonum's weighted moments with uniform (nil) weights.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) < 2 {
		return mean, 0
	}
	std = stat.StdDev(values, nil)
	return mean, std
}

// coeffVariation returns std/mean, or 0 when mean is ~0.
func coeffVariation(values []float64) float64 {
	mean, std := meanStd(values)
	if math.Abs(mean) < 1e-10 {
		return 0
	}
	return std / mean
}

// toDB converts a linear amplitude ratio to decibels, flooring the input
// at 1e-10 to avoid -Inf.
func toDB(linear float64) float64 {
	if linear < 1e-10 {
		linear = 1e-10
	}
	return 20 * math.Log10(linear)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
