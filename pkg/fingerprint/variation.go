package fingerprint

// variation holds the C9 outputs.
type variation struct {
	DynamicRangeVariation float64
	LoudnessVariationStd  float64
	PeakConsistency       float64
}

// analyzeVariation (C9) buckets the buffer into 100ms frames and reports
// how much crest factor, loudness, and peak level swing across them.
func analyzeVariation(mono []float64, sampleRate int) variation {
	frameSize := sampleRate / 10
	if frameSize < 1 {
		frameSize = 1
	}

	var crests, loudnessDB, peaks []float64
	for start := 0; start < len(mono); start += frameSize {
		end := start + frameSize
		if end > len(mono) {
			end = len(mono)
		}
		frame := mono[start:end]

		r := rms(frame)
		p := peakAbs(frame)

		crest := 0.0
		if r > 0 {
			crest = p / r
		}
		crests = append(crests, crest)
		loudnessDB = append(loudnessDB, toDB(r))
		peaks = append(peaks, p)
	}

	if len(crests) < 2 {
		return variation{}
	}

	drv := clamp(coeffVariation(crests), 0, 1)

	_, loudnessStd := meanStd(loudnessDB)
	loudnessStd = clamp(loudnessStd, 0, 10)

	peakCV := coeffVariation(peaks)
	peakConsistency := clamp(1/(1+peakCV), 0, 1)

	return variation{
		DynamicRangeVariation: drv,
		LoudnessVariationStd:  loudnessStd,
		PeakConsistency:       peakConsistency,
	}
}
