package fingerprint

import "math"

// dynamics holds the C5 outputs.
type dynamics struct {
	LUFS         float64
	CrestDB      float64
	BassMidRatio float64
}

// analyzeDynamics (C5) derives loudness, crest factor, and the bass/mid
// energy balance from the mono buffer and its average spectrum.
func analyzeDynamics(mono []float64, avg []float64, sampleRate int) dynamics {
	r := rms(mono)

	lufs := -120.0
	if r > 0 {
		lufs = -0.691 + 10*math.Log10(r)
	}
	lufs = clamp(lufs, -120, 0)

	crestDB := 0.0
	if r > 0 {
		crestDB = 20 * math.Log10(math.Max(peakAbs(mono)/r, 1))
	}
	crestDB = clamp(crestDB, 0, 50)

	eBass := bandEnergy(avg, 60, 250, sampleRate, FFTSize)
	eMid := bandEnergy(avg, 500, 2000, sampleRate, FFTSize)
	ratio := 0.01
	if eMid > 0 {
		ratio = eBass / eMid
	}
	bassMidRatio := clamp(20*math.Log10(math.Max(ratio, 0.01)), -40, 40)

	return dynamics{LUFS: lufs, CrestDB: crestDB, BassMidRatio: bassMidRatio}
}
