package fingerprint

import "context"

// spectrogram is what C3 hands downstream: an average linear magnitude
// spectrum and a spectral-flux series, produced by a single pass over the
// frames that never materializes the full frame x bin matrix. Storing
// every frame's spectrum for a ten-minute track costs on the order of
// 900 MB per concurrent call; storing only the running sum and one
// previous-frame buffer bounds this to O(FFTSize) regardless of track
// length. Do not "optimize" this back into a stored per-frame matrix.
type spectrogram struct {
	AvgSpectrum []float64
	Flux        []float64
	SampleRate  int
	FrameCount  int
}

// computeSpectrogram walks mono once at FFTSize/Hop framing and returns
// the aggregated spectrum. Fewer than two frames is not an error: the
// caller gets a zero-length flux series and must apply the documented
// defaults (centroid/rolloff/flatness = 0.5, tempo = 120).
func computeSpectrogram(ctx context.Context, mono []float64, sampleRate int) (*spectrogram, error) {
	if len(mono) == 0 {
		return nil, newError(KindInvalidAudio, "empty buffer")
	}
	if len(mono) < FFTSize {
		return nil, newError(KindInvalidAudio, "buffer shorter than one FFT frame")
	}

	win := hannWindow(FFTSize)
	it := newFrameIterator(mono, win, FFTSize, Hop)

	half := FFTSize / 2
	sum := make([]float64, half)
	prev := make([]float64, half)
	cur := make([]float64, half)
	var flux []float64

	frameCount := 0
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, wrapError(KindCancelled, "cancelled during spectrogram aggregation", err)
		}
		frame, ok := it.next()
		if !ok {
			break
		}
		cur = frameSpectrum(frame, cur)
		for k := 0; k < half; k++ {
			sum[k] += cur[k]
		}
		if !first {
			f := 0.0
			for k := 0; k < half; k++ {
				d := cur[k] - prev[k]
				if d > 0 {
					f += d
				}
			}
			flux = append(flux, f)
		}
		prev, cur = cur, prev
		first = false
		frameCount++
	}

	avg := make([]float64, half)
	if frameCount > 0 {
		inv := 1.0 / float64(frameCount)
		for k := 0; k < half; k++ {
			avg[k] = sum[k] * inv
		}
	}

	return &spectrogram{
		AvgSpectrum: avg,
		Flux:        flux,
		SampleRate:  sampleRate,
		FrameCount:  frameCount,
	}, nil
}
