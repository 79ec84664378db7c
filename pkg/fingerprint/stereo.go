package fingerprint

import "gonum.org/v1/gonum/stat"

// stereoResult holds the C10 outputs.
type stereoResult struct {
	Width float64
	Phase float64
}

// analyzeStereo (C10) computes mid/side width and left/right phase
// correlation. Mono input reports the documented defaults exactly: zero
// width, full positive correlation.
func analyzeStereo(channels int, left, right []float64) stereoResult {
	if channels < 2 || len(left) == 0 || len(right) == 0 {
		return stereoResult{Width: 0, Phase: 1}
	}

	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	mid := make([]float64, n)
	side := make([]float64, n)
	for i := 0; i < n; i++ {
		mid[i] = (left[i] + right[i]) / 2
		side[i] = (left[i] - right[i]) / 2
	}

	midRMS := rms(mid)
	sideRMS := rms(side)
	width := 0.0
	if midRMS+sideRMS > 0 {
		width = clamp(sideRMS/(midRMS+sideRMS), 0, 1)
	}

	phase := 1.0
	if stat.StdDev(left[:n], nil) > 1e-10 && stat.StdDev(right[:n], nil) > 1e-10 {
		phase = clamp(stat.Correlation(left[:n], right[:n], nil), -1, 1)
	}

	return stereoResult{Width: width, Phase: phase}
}
