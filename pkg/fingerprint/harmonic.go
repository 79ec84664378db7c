package fingerprint

import (
	"context"
	"math"
)

// harmonicAnalysis holds the C8 outputs shared by both strategies.
type harmonicAnalysis struct {
	HarmonicRatio  float64
	PitchStability float64
	ChromaEnergy   float64
}

// analyzeHarmonic (C8) dispatches between the Full and Fast strategies.
// Both paths produce the same three fields in the same [0,1] range; Full
// spends the HPSS/YIN/constant-Q budget for accuracy, Fast substitutes
// cheaper proxies that run in a single pass over the average spectrum and
// the mono buffer.
func analyzeHarmonic(ctx context.Context, cfg *Config, mono, avgSpectrum []float64, sampleRate int) (harmonicAnalysis, error) {
	if cfg.Strategy == Fast {
		return analyzeHarmonicFast(mono, avgSpectrum, sampleRate), nil
	}

	harmonicRatio, err := harmonicRatioHPSS(ctx, mono)
	if err != nil {
		return harmonicAnalysis{}, err
	}
	pitchStability, err := pitchStabilityYIN(ctx, mono, sampleRate, cfg.WorkerCount)
	if err != nil {
		return harmonicAnalysis{}, err
	}
	totalEnergy := sumSquares(avgSpectrum)
	chromaEnergy, err := chromaEnergyCQT(ctx, mono, sampleRate, totalEnergy, cfg.WorkerCount)
	if err != nil {
		return harmonicAnalysis{}, err
	}

	return harmonicAnalysis{
		HarmonicRatio:  harmonicRatio,
		PitchStability: pitchStability,
		ChromaEnergy:   chromaEnergy,
	}, nil
}

// analyzeHarmonicFast computes the same three fields with substantially
// cheaper proxies: spectral-peak energy fraction stands in for HPSS,
// zero-crossing-rate stability stands in for YIN pitch tracking, and
// tonal-band energy fraction stands in for constant-Q chroma.
func analyzeHarmonicFast(mono, avgSpectrum []float64, sampleRate int) harmonicAnalysis {
	return harmonicAnalysis{
		HarmonicRatio:  harmonicRatioPeakProxy(avgSpectrum),
		PitchStability: pitchStabilityZCRProxy(mono, sampleRate),
		ChromaEnergy:   chromaEnergyBandProxy(avgSpectrum, sampleRate),
	}
}

// harmonicRatioPeakProxy treats energy concentrated at local spectral
// maxima (and their immediate neighborhood) as the harmonic component,
// and everything else as percussive/noise floor.
func harmonicRatioPeakProxy(avg []float64) float64 {
	n := len(avg)
	if n < 3 {
		return 0.5
	}
	var peakEnergy, totalEnergy float64
	for k := 0; k < n; k++ {
		e := avg[k] * avg[k]
		totalEnergy += e
		isPeak := (k == 0 || avg[k] >= avg[k-1]) && (k == n-1 || avg[k] >= avg[k+1])
		if isPeak {
			for j := k - 1; j <= k+1; j++ {
				if j >= 0 && j < n {
					peakEnergy += avg[j] * avg[j]
				}
			}
		}
	}
	if totalEnergy <= 0 {
		return 0.5
	}
	return clamp(peakEnergy/totalEnergy, 0, 1)
}

// pitchStabilityZCRProxy buckets the buffer into 100ms frames, measures
// the zero-crossing rate of each, and reports 1 - min(cv, 1) of that
// series — a steady ZCR across frames suggests a held, stable pitch.
func pitchStabilityZCRProxy(mono []float64, sampleRate int) float64 {
	frameSize := sampleRate / 10
	if frameSize < 1 {
		frameSize = 1
	}
	var rates []float64
	for start := 0; start < len(mono); start += frameSize {
		end := start + frameSize
		if end > len(mono) {
			end = len(mono)
		}
		frame := mono[start:end]
		crossings := 0
		for i := 1; i < len(frame); i++ {
			if (frame[i-1] >= 0) != (frame[i] >= 0) {
				crossings++
			}
		}
		rates = append(rates, float64(crossings))
	}
	if len(rates) < 2 {
		return 0.5
	}
	cv := coeffVariation(rates)
	if cv > 1 {
		cv = 1
	}
	return clamp(1-cv, 0, 1)
}

// chromaEnergyBandProxy substitutes the constant-Q chroma computation
// with the fraction of total spectral energy living in the bass/mid bands
// where most musical fundamentals and their early harmonics sit.
func chromaEnergyBandProxy(avg []float64, sampleRate int) float64 {
	total := 0.0
	for _, v := range avg {
		total += v
	}
	if total <= 0 {
		return 0
	}
	tonal := bandEnergy(avg, 60, 2000, sampleRate, FFTSize)
	return clamp(tonal/total, 0, 1)
}

func sumSquares(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0
	}
	return sum
}
