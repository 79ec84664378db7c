package fingerprint

import "gonum.org/v1/gonum/dsp/window"

// hannWindow returns n Hann coefficients. gonum's window functions apply
// the window multiplicatively to whatever sequence they're given, so the
// idiomatic way to get the bare coefficients is to apply it to a sequence
// of ones.
func hannWindow(n int) []float64 {
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}
	return window.Hann(coeffs)
}

// frameCount returns how many FFTSize/Hop frames a buffer of the given
// length produces under the C1 contract: a frame is emitted once at least
// FFTSize/2 real samples remain, and the tail is zero-padded.
func frameCount(numSamples, fftSize, hop int) int {
	if numSamples < fftSize/2 {
		return 0
	}
	n := (numSamples-fftSize/2)/hop + 1
	if n < 1 {
		n = 1
	}
	return n
}

// frameIterator walks a buffer emitting Hann-windowed frames of length
// fftSize at a fixed hop, zero-padding the final frame(s). It owns a
// single reusable scratch buffer so windowing n frames costs one
// allocation, not n.
type frameIterator struct {
	samples []float64
	win     []float64
	fftSize int
	hop     int
	offset  int
	scratch []float64
}

func newFrameIterator(samples []float64, win []float64, fftSize, hop int) *frameIterator {
	return &frameIterator{
		samples: samples,
		win:     win,
		fftSize: fftSize,
		hop:     hop,
		scratch: make([]float64, fftSize),
	}
}

// next returns the next windowed frame and true, or nil and false once the
// buffer is exhausted. The returned slice is reused on the next call —
// callers must finish consuming it (e.g. FFT it) before calling next again.
func (it *frameIterator) next() ([]float64, bool) {
	remaining := len(it.samples) - it.offset
	if remaining < it.fftSize/2 {
		return nil, false
	}

	n := remaining
	if n > it.fftSize {
		n = it.fftSize
	}
	for i := 0; i < it.fftSize; i++ {
		if i < n {
			it.scratch[i] = it.samples[it.offset+i] * it.win[i]
		} else {
			it.scratch[i] = 0
		}
	}
	it.offset += it.hop
	return it.scratch, true
}

// reset rewinds the iterator to the start of the buffer, reusing
// allocations, so a second pass over the same samples sees the same
// framing.
func (it *frameIterator) reset() {
	it.offset = 0
}
