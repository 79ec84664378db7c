package fingerprint

import "context"

const (
	hpssKernelH = 31 // time-axis (horizontal) median kernel width, in frames
	hpssKernelP = 31 // frequency-axis (vertical) median kernel width, in bins
)

// harmonicRatioHPSS (C8.1) separates the STFT into harmonic and percussive
// components via median-filtered magnitude and a Wiener soft mask, then
// reports the fraction of total masked energy that is harmonic. The
// harmonic estimate is each bin's median across neighboring frames, which
// sustained tones survive; the percussive estimate is each frame's median
// across neighboring bins, which broadband onsets survive.
//
// The time-axis median filter needs a window of hpssKernelH frames around
// each analysis frame, so only that window is retained as a ring buffer
// instead of the whole spectrogram — peak extra memory is O(kernelH * bins)
// rather than O(frames * bins), which is the bulk of what makes HPSS the
// most memory-hungry stage otherwise. The ratio is accumulated directly
// from masked spectral energy rather than reconstructed time-domain
// signals: by Parseval's theorem the two give the same ratio, and skipping
// the inverse-STFT/overlap-add path avoids a second large buffer for no
// benefit, since no downstream field needs the separated waveforms
// themselves.
func harmonicRatioHPSS(ctx context.Context, mono []float64) (float64, error) {
	win := hannWindow(FFTSize)
	it := newFrameIterator(mono, win, FFTSize, Hop)
	half := FFTSize / 2

	ring := make([][]float64, 0, hpssKernelH)
	delay := hpssKernelH / 2

	var harmonicEnergy, percussiveEnergy float64

	emit := func(center []float64, neighborhood [][]float64) {
		hFilt := medianAcrossRows(neighborhood, half)
		pFilt := medianFilter1D(center, hpssKernelP)

		for k := 0; k < half; k++ {
			hv := hFilt[k]
			pv := pFilt[k]
			h2 := hv * hv
			p2 := pv * pv

			maskH, maskP := 0.5, 0.5
			if h2+p2 > 0 {
				maskH = h2 / (h2 + p2)
				maskP = p2 / (h2 + p2)
			}

			mag := center[k]
			hE := maskH * mag
			pE := maskP * mag
			harmonicEnergy += hE * hE
			percussiveEnergy += pE * pE
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, wrapError(KindCancelled, "cancelled during harmonic analysis", err)
		}
		frame, ok := it.next()
		if !ok {
			break
		}

		mag := frameSpectrum(frame, nil)

		ring = append(ring, mag)
		if len(ring) > hpssKernelH {
			ring = ring[1:]
		}
		if len(ring) == hpssKernelH {
			emit(ring[delay], ring)
		}
	}

	// Only frames with a full kernel of neighbors on both sides are scored
	// above, so the first and last hpssKernelH/2 frames do not contribute.
	// When the whole buffer yields fewer frames than one kernel, the middle
	// frame is scored once against all of them.
	if n := len(ring); n > 0 && n < hpssKernelH {
		emit(ring[n/2], ring)
	}

	if harmonicEnergy+percussiveEnergy <= 0 {
		return 0.5, nil
	}
	return clamp(harmonicEnergy/(harmonicEnergy+percussiveEnergy), 0, 1), nil
}
