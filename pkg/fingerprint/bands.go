package fingerprint

// bandEdgesHz are the seven perceptual band boundaries in Hz, low to high.
var bandEdgesHz = [8]float64{20, 60, 250, 500, 2000, 4000, 6000, 20000}

// bandEnergy sums avg (linear magnitude) over [loHz, hiHz) for the given
// sample rate / FFT size, never converting to dB before summing.
func bandEnergy(avg []float64, loHz, hiHz float64, sampleRate, fftSize int) float64 {
	lo := hzToBin(loHz, fftSize, sampleRate)
	hi := hzToBin(hiHz, fftSize, sampleRate)
	if lo >= len(avg) {
		return 0
	}
	if hi > len(avg) {
		hi = len(avg)
	}
	sum := 0.0
	for k := lo; k < hi; k++ {
		sum += avg[k]
	}
	return sum
}

// bandEnergies returns the raw (unnormalized) energy in each of the seven
// perceptual bands.
func bandEnergies(avg []float64, sampleRate, fftSize int) [7]float64 {
	var energies [7]float64
	for i := 0; i < 7; i++ {
		energies[i] = bandEnergy(avg, bandEdgesHz[i], bandEdgesHz[i+1], sampleRate, fftSize)
	}
	return energies
}

// bandPercentages (C4) normalizes the seven band energies to percentages
// of total spectral energy, each clamped to [0, 100]. A spectrum whose
// total is at most twice the per-bin magnitudeFloor summed over all bins
// (all-zero, or silence after frameSpectrum's flooring, with room for
// rounding) yields all-zero percentages rather than a uniform split — the
// engine reports "no energy measured," not "assume flat spectrum."
func bandPercentages(avg []float64, sampleRate, fftSize int) [7]float64 {
	energies := bandEnergies(avg, sampleRate, fftSize)

	total := 0.0
	for _, e := range avg {
		total += e
	}

	var pct [7]float64
	if total <= 2*float64(len(avg))*magnitudeFloor {
		return pct
	}
	for i, e := range energies {
		p := 100 * e / total
		pct[i] = clamp(p, 0, 100)
	}
	return pct
}
