package fingerprint

import "context"

const (
	yinThreshold = 0.15
	yinMinHz     = 60.0
	yinMaxHz     = 1000.0
)

// pitchStabilityYIN (C8.2) estimates per-frame fundamental frequency with
// the YIN difference-function method and reports how stable that pitch is
// across voiced frames (1 - clamp(coefficient of variation, 0, 1)).
//
// Frames are independent: each only reads its own FFTSize window of mono,
// so the per-frame difference-function search runs across the configured
// worker pool via parallelFor, each frame writing its own indexed slot.
func pitchStabilityYIN(ctx context.Context, mono []float64, sampleRate int, workers int) (float64, error) {
	n := frameCount(len(mono), FFTSize, Hop)
	if n == 0 {
		return 0.5, nil
	}

	pitches := make([]float64, n)
	voiced := make([]bool, n)

	err := parallelFor(ctx, n, workers, func(i int) error {
		start := i * Hop
		end := start + FFTSize
		if end > len(mono) {
			end = len(mono)
		}
		frame := mono[start:end]
		if len(frame) < FFTSize {
			padded := make([]float64, FFTSize)
			copy(padded, frame)
			frame = padded
		}
		hz, ok := yinFrame(frame, sampleRate)
		if ok {
			pitches[i] = hz
			voiced[i] = true
		}
		return nil
	})
	if err != nil {
		return 0, wrapError(KindCancelled, "cancelled during pitch analysis", err)
	}

	var voicedPitches []float64
	for i, v := range voiced {
		if v {
			voicedPitches = append(voicedPitches, pitches[i])
		}
	}
	if len(voicedPitches) < 2 {
		return 0.5, nil
	}

	cv := coeffVariation(voicedPitches)
	if cv > 1 {
		cv = 1
	}
	return clamp(1-cv, 0, 1), nil
}

// yinFrame runs the YIN pitch-detection difference function over a single
// analysis frame and returns the estimated fundamental in Hz, or ok=false
// when no trough crosses the absolute threshold (unvoiced/noisy frame).
func yinFrame(frame []float64, sampleRate int) (hz float64, ok bool) {
	maxLag := sampleRate / int(yinMinHz)
	minLag := sampleRate / int(yinMaxHz)
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 {
		minLag = 1
	}
	if maxLag <= minLag {
		return 0, false
	}

	diff := make([]float64, maxLag+1)
	for lag := 1; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < len(frame); i++ {
			d := frame[i] - frame[i+lag]
			sum += d * d
		}
		diff[lag] = sum
	}

	cmnd := make([]float64, maxLag+1)
	cmnd[0] = 1
	runningSum := 0.0
	for lag := 1; lag <= maxLag; lag++ {
		runningSum += diff[lag]
		if runningSum == 0 {
			cmnd[lag] = 1
		} else {
			cmnd[lag] = 2 * diff[lag] / runningSum
		}
	}

	troughLag := -1
	for lag := minLag; lag <= maxLag; lag++ {
		if cmnd[lag] < yinThreshold {
			for lag+1 <= maxLag && cmnd[lag+1] < cmnd[lag] {
				lag++
			}
			troughLag = lag
			break
		}
	}
	if troughLag < 0 {
		return 0, false
	}

	refined := parabolicInterpolate(cmnd, troughLag)
	if refined <= 0 {
		return 0, false
	}
	return float64(sampleRate) / refined, true
}

// parabolicInterpolate refines an integer-lag trough to sub-sample
// precision by fitting a parabola through the trough and its neighbors,
// clamping the offset to [-0.5, 0.5] of a sample.
func parabolicInterpolate(cmnd []float64, lag int) float64 {
	if lag <= 0 || lag >= len(cmnd)-1 {
		return float64(lag)
	}
	s0, s1, s2 := cmnd[lag-1], cmnd[lag], cmnd[lag+1]
	denom := s0 - 2*s1 + s2
	if denom == 0 {
		return float64(lag)
	}
	offset := 0.5 * (s0 - s2) / denom
	if offset > 0.5 {
		offset = 0.5
	}
	if offset < -0.5 {
		offset = -0.5
	}
	return float64(lag) + offset
}
