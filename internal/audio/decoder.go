package audio

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadContainer decodes a WAV or AIFF file via go-audio, returning the
// same Decoded shape ReadWav produces. This is the secondary decode path:
// it covers float/24-bit PCM and AIFF, which the hand-rolled reader in
// reader.go does not, at the cost of a dependency the native path doesn't
// need.
func ReadContainer(path string) (*Decoded, error) {
	switch strings.ToLower(extOf(path)) {
	case ".aiff", ".aif":
		return readAIFF(path)
	default:
		return readWavViaGoAudio(path)
	}
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

func readWavViaGoAudio(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding WAV: %w", err)
	}
	return bufferToDecoded(buf), nil
}

func readAIFF(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding AIFF: %w", err)
	}
	return bufferToDecoded(buf), nil
}

// bufferToDecoded normalizes a go-audio IntBuffer to [-1, 1] float64,
// preserving interleaving.
func bufferToDecoded(buf *audio.IntBuffer) *Decoded {
	maxVal := float64(int(1) << (uint(buf.SourceBitDepth) - 1))
	if maxVal <= 0 {
		maxVal = 32768
	}

	interleaved := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		interleaved[i] = float64(s) / maxVal
	}

	return &Decoded{
		Interleaved: interleaved,
		SampleRate:  buf.Format.SampleRate,
		Channels:    buf.Format.NumChannels,
	}
}
