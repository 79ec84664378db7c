package fingerprint

import "math"

const (
	minTempoBPM    = 60.0
	maxTempoBPM    = 200.0
	tempoOutputLo  = 40.0
	tempoOutputHi  = 200.0
	tempoSweetSpot = 105.0
	silenceDBFloor = -60.0
)

// octaveCandidates are the ratios tried against a raw autocorrelation BPM
// estimate to correct for the detector locking onto a beat subdivision or
// multiple instead of the perceptual tempo.
var octaveCandidates = []float64{1, 1.0 / 2, 1.0 / 3, 1.0 / 4, 1.0 / 6, 1.0 / 8, 2}

// temporal holds the C6 outputs.
type temporal struct {
	TempoBPM         float64
	RhythmStability  float64
	TransientDensity float64
	SilenceRatio     float64
}

// analyzeTemporal (C6) derives tempo, rhythm stability, transient density,
// and silence ratio from the mono buffer and the flux series C3 already
// computed.
func analyzeTemporal(mono []float64, flux []float64, sampleRate int) temporal {
	return temporal{
		TempoBPM:         estimateTempo(flux, sampleRate),
		RhythmStability:  estimateRhythmStability(mono, sampleRate),
		TransientDensity: estimateTransientDensity(mono, sampleRate),
		SilenceRatio:     estimateSilenceRatio(mono),
	}
}

// estimateTempo finds the lag that maximizes the autocorrelation of the
// spectral-flux series within the BPM search range, then applies octave
// correction to prefer a perceptually plausible tempo.
func estimateTempo(flux []float64, sampleRate int) float64 {
	if len(flux) < 2 {
		return 120
	}

	fps := float64(sampleRate) / float64(Hop)
	minLag := int(fps * 60 / maxTempoBPM)
	maxLag := int(fps * 60 / minTempoBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux) {
		maxLag = len(flux) - 1
	}
	if maxLag <= minLag {
		return 120
	}

	bestLag := -1
	bestAC := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		ac := 0.0
		for i := 0; i+lag < len(flux); i++ {
			ac += flux[i] * flux[i+lag]
		}
		if ac > bestAC {
			bestAC = ac
			bestLag = lag
		}
	}
	if bestLag < 1 || bestAC <= 0 {
		return 120
	}

	rawBPM := fps * 60 / float64(bestLag)
	return correctOctave(rawBPM)
}

// correctOctave picks the octave-shifted candidate of rawBPM closest to
// the perceptual sweet spot (around 105 BPM, with a bonus for landing in
// 70-140), falling back to 120 if none land in the search range.
func correctOctave(rawBPM float64) float64 {
	best := 120.0
	bestScore := math.MaxFloat64
	found := false
	for _, ratio := range octaveCandidates {
		candidate := rawBPM * ratio
		if candidate < minTempoBPM || candidate > maxTempoBPM {
			continue
		}
		bonus := 0.0
		if candidate < 70 || candidate > 140 {
			bonus = 50
		}
		score := math.Abs(candidate-tempoSweetSpot) + bonus
		if score < bestScore {
			bestScore = score
			best = candidate
			found = true
		}
	}
	if !found {
		return 120
	}
	return clamp(best, tempoOutputLo, tempoOutputHi)
}

// estimateRhythmStability buckets the buffer into 100ms frames, computes
// per-frame RMS, and reports 1/(1+cv) of that series — high when loudness
// is metronomically even, low when it swings.
func estimateRhythmStability(mono []float64, sampleRate int) float64 {
	frameSize := sampleRate / 10
	if frameSize < 1 {
		frameSize = 1
	}
	var levels []float64
	for start := 0; start < len(mono); start += frameSize {
		end := start + frameSize
		if end > len(mono) {
			end = len(mono)
		}
		levels = append(levels, rms(mono[start:end]))
	}
	if len(levels) < 2 {
		return 0.5
	}
	cv := coeffVariation(levels)
	return clamp(1/(1+cv), 0, 1)
}

// estimateTransientDensity counts samples that are local maxima in
// magnitude and exceed half the buffer's global peak, then normalizes the
// count against buffer length and sample rate.
func estimateTransientDensity(mono []float64, sampleRate int) float64 {
	if len(mono) < 3 {
		return 0
	}
	globalPeak := peakAbs(mono)
	if globalPeak <= 0 {
		return 0
	}
	threshold := 0.5 * globalPeak

	peaks := 0
	for i := 1; i < len(mono)-1; i++ {
		a := math.Abs(mono[i])
		if a > math.Abs(mono[i-1]) && a > math.Abs(mono[i+1]) && a > threshold {
			peaks++
		}
	}

	density := float64(peaks) * float64(sampleRate) / float64(len(mono)) * 100
	return clamp(density, 0, 1)
}

// estimateSilenceRatio maps the buffer's overall loudness in dB against
// the -60 dB silence floor.
func estimateSilenceRatio(mono []float64) float64 {
	rmsDB := toDB(rms(mono))
	if rmsDB < silenceDBFloor {
		return 1
	}
	return clamp((silenceDBFloor-rmsDB)/silenceDBFloor, 0, 1)
}
