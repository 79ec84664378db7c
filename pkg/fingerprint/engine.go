package fingerprint

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Analyze (C12) is the engine's single entry point: it takes raw PCM
// samples at a known sample rate and channel count and returns a
// 25-dimensional Fingerprint, or an *Error classifying what went wrong.
//
// samples is interleaved PCM for channels > 1 (L, R, L, R, ...) and a flat
// mono buffer for channels == 1. Analyze never mutates samples.
func Analyze(ctx context.Context, samples []float64, sampleRate, channels int, opts ...Option) (*Fingerprint, ValidationResult, error) {
	cfg := newConfig(opts...)

	if err := validateInput(samples, sampleRate, channels, cfg); err != nil {
		return nil, ValidationResult{}, err
	}

	if err := checkMemoryCeiling(len(samples), channels, cfg); err != nil {
		return nil, ValidationResult{}, err
	}

	mono, left, right := downmix(samples, channels)

	spec, err := computeSpectrogram(ctx, mono, sampleRate)
	if err != nil {
		return nil, ValidationResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, ValidationResult{}, wrapError(KindCancelled, "cancelled before analysis", err)
	}

	bands := bandPercentages(spec.AvgSpectrum, sampleRate, FFTSize)
	dyn := analyzeDynamics(mono, spec.AvgSpectrum, sampleRate)
	temp := analyzeTemporal(mono, spec.Flux, sampleRate)
	shape := analyzeSpectralShape(spec.AvgSpectrum)
	variation := analyzeVariation(mono, sampleRate)
	stereo := analyzeStereo(channels, left, right)

	cfg.Logger.Debugf("fingerprint: spectrogram frames=%d flux=%d strategy=%s", spec.FrameCount, len(spec.Flux), cfg.Strategy)

	harmonic, err := analyzeHarmonic(ctx, cfg, mono, spec.AvgSpectrum, sampleRate)
	if err != nil {
		return nil, ValidationResult{}, err
	}

	fp, validation := assembleFingerprint(assembleInputs{
		bands:     bands,
		dynamics:  dyn,
		temporal:  temp,
		shape:     shape,
		harmonic:  harmonic,
		variation: variation,
		stereo:    stereo,
	})

	if !validation.Valid {
		cfg.Logger.Warnf("fingerprint: repaired non-finite fields %v", validation.InvalidFields)
	}

	return fp, validation, nil
}

// validateInput rejects empty buffers, sample rates outside the
// configured bounds, channel counts below 1, and non-finite samples.
func validateInput(samples []float64, sampleRate, channels int, cfg *Config) error {
	if len(samples) == 0 {
		return newError(KindInvalidAudio, "empty sample buffer")
	}
	if channels < 1 {
		return newError(KindInvalidAudio, "channel count must be >= 1")
	}
	if sampleRate < cfg.MinSampleRate || sampleRate > cfg.MaxSampleRate {
		return newError(KindInvalidAudio, "sample rate out of supported range")
	}
	if len(samples)%channels != 0 {
		return newError(KindInvalidAudio, "sample buffer length not divisible by channel count")
	}
	framesPerChannel := len(samples) / channels
	if framesPerChannel < FFTSize/2 {
		return newError(KindInvalidAudio, "buffer too short to analyze")
	}
	for _, s := range samples {
		if !isFinite(s) {
			return newError(KindInvalidAudio, "sample buffer contains non-finite values")
		}
	}
	return nil
}

// checkMemoryCeiling projects the allocations that scale with input
// length — the per-channel mono/left/right buffers plus headroom for the
// spectral flux series, four floats per frame — and rejects the call
// before doing any work if that projection exceeds the configured
// ceiling. The constant-Q kernel bank and per-frame scratch buffers are
// not part of the projection.
func checkMemoryCeiling(numSamples, channels int, cfg *Config) error {
	if cfg.MemoryCeilingBytes <= 0 {
		return nil
	}
	const bytesPerFloat = 8
	framesPerChannel := numSamples / maxInt(channels, 1)
	projected := int64(framesPerChannel) * bytesPerFloat * 4 // mono + left + right + flux-scale headroom
	if projected > cfg.MemoryCeilingBytes {
		return newError(KindResourceExhausted, fmt.Sprintf(
			"projected memory %s exceeds configured ceiling %s",
			humanize.Bytes(uint64(projected)), humanize.Bytes(uint64(cfg.MemoryCeilingBytes)),
		))
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// downmix splits interleaved PCM into a mono buffer (averaged across
// channels) and, when channels >= 2, the first two channels retained
// separately for the stereo analyzer. Mono input returns nil left/right.
func downmix(samples []float64, channels int) (mono, left, right []float64) {
	framesPerChannel := len(samples) / channels
	mono = make([]float64, framesPerChannel)

	if channels == 1 {
		copy(mono, samples)
		return mono, nil, nil
	}

	left = make([]float64, framesPerChannel)
	right = make([]float64, framesPerChannel)
	for i := 0; i < framesPerChannel; i++ {
		base := i * channels
		l := samples[base]
		r := samples[base+1]
		left[i] = l
		right[i] = r

		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += samples[base+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono, left, right
}
