package fingerprint

// assembleInputs bundles every component's output before C11 folds them
// into one Fingerprint.
type assembleInputs struct {
	bands    [7]float64
	dynamics dynamics
	temporal temporal
	shape    spectralShape
	harmonic harmonicAnalysis
	variation variation
	stereo   stereoResult
}

// assembleFingerprint (C11) clamps every field to its documented range
// and reports which, if any, came out non-finite. A non-finite field is
// clamped to its range midpoint so the returned Fingerprint always has 25
// well-formed numbers; InvalidFields records which ones were repaired.
func assembleFingerprint(in assembleInputs) (*Fingerprint, ValidationResult) {
	fp := &Fingerprint{
		SubBass:  clamp(in.bands[0], 0, 100),
		Bass:     clamp(in.bands[1], 0, 100),
		LowMid:   clamp(in.bands[2], 0, 100),
		Mid:      clamp(in.bands[3], 0, 100),
		UpperMid: clamp(in.bands[4], 0, 100),
		Presence: clamp(in.bands[5], 0, 100),
		Air:      clamp(in.bands[6], 0, 100),

		LUFS:         clamp(in.dynamics.LUFS, -120, 0),
		CrestDB:      clamp(in.dynamics.CrestDB, 0, 50),
		BassMidRatio: clamp(in.dynamics.BassMidRatio, -40, 40),

		TempoBPM:         clamp(in.temporal.TempoBPM, 40, 200),
		RhythmStability:  clamp(in.temporal.RhythmStability, 0, 1),
		TransientDensity: clamp(in.temporal.TransientDensity, 0, 1),
		SilenceRatio:     clamp(in.temporal.SilenceRatio, 0, 1),

		SpectralCentroid: clamp(in.shape.Centroid, 0, 1),
		SpectralRolloff:  clamp(in.shape.Rolloff, 0, 1),
		SpectralFlatness: clamp(in.shape.Flatness, 0, 1),

		HarmonicRatio:  clamp(in.harmonic.HarmonicRatio, 0, 1),
		PitchStability: clamp(in.harmonic.PitchStability, 0, 1),
		ChromaEnergy:   clamp(in.harmonic.ChromaEnergy, 0, 1),

		DynamicRangeVariation: clamp(in.variation.DynamicRangeVariation, 0, 1),
		LoudnessVariationStd:  clamp(in.variation.LoudnessVariationStd, 0, 10),
		PeakConsistency:       clamp(in.variation.PeakConsistency, 0, 1),

		StereoWidth:      clamp(in.stereo.Width, 0, 1),
		PhaseCorrelation: clamp(in.stereo.Phase, -1, 1),
	}

	return fp, validate(fp)
}

// validate scans every field of fp for non-finite values, repairing each
// one to its range midpoint in place and recording its name.
func validate(fp *Fingerprint) ValidationResult {
	type field struct {
		name     string
		ptr      *float64
		lo, hi   float64
	}
	fields := []field{
		{"sub_bass", &fp.SubBass, 0, 100},
		{"bass", &fp.Bass, 0, 100},
		{"low_mid", &fp.LowMid, 0, 100},
		{"mid", &fp.Mid, 0, 100},
		{"upper_mid", &fp.UpperMid, 0, 100},
		{"presence", &fp.Presence, 0, 100},
		{"air", &fp.Air, 0, 100},
		{"lufs", &fp.LUFS, -120, 0},
		{"crest_db", &fp.CrestDB, 0, 50},
		{"bass_mid_ratio", &fp.BassMidRatio, -40, 40},
		{"tempo_bpm", &fp.TempoBPM, 40, 200},
		{"rhythm_stability", &fp.RhythmStability, 0, 1},
		{"transient_density", &fp.TransientDensity, 0, 1},
		{"silence_ratio", &fp.SilenceRatio, 0, 1},
		{"spectral_centroid", &fp.SpectralCentroid, 0, 1},
		{"spectral_rolloff", &fp.SpectralRolloff, 0, 1},
		{"spectral_flatness", &fp.SpectralFlatness, 0, 1},
		{"harmonic_ratio", &fp.HarmonicRatio, 0, 1},
		{"pitch_stability", &fp.PitchStability, 0, 1},
		{"chroma_energy", &fp.ChromaEnergy, 0, 1},
		{"dynamic_range_variation", &fp.DynamicRangeVariation, 0, 1},
		{"loudness_variation_std", &fp.LoudnessVariationStd, 0, 10},
		{"peak_consistency", &fp.PeakConsistency, 0, 1},
		{"stereo_width", &fp.StereoWidth, 0, 1},
		{"phase_correlation", &fp.PhaseCorrelation, -1, 1},
	}

	var invalid []string
	for _, f := range fields {
		if !isFinite(*f.ptr) {
			*f.ptr = (f.lo + f.hi) / 2
			invalid = append(invalid, f.name)
		}
	}

	return ValidationResult{
		Valid:         len(invalid) == 0,
		InvalidFields: invalid,
	}
}
