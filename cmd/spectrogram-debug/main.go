// Command spectrogram-debug decodes a WAV or AIFF file through
// internal/audio, downmixes it to mono, and draws its FFT magnitude with
// github.com/eligwz/spectrogram into a PNG. It does not call the
// fingerprint engine, so the image is not the engine's own average
// spectrum.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"path/filepath"

	"github.com/eligwz/spectrogram"
	"github.com/himanishpuri/auralis/internal/audio"
)

func main() {
	inputPath := flag.String("in", "", "path to a WAV file (required)")
	outputPath := flag.String("out", "", "output PNG path (defaults to <in>.png)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("usage: spectrogram-debug -in <file.wav> [-out <file.png>]")
	}
	if *outputPath == "" {
		*outputPath = *inputPath + ".png"
	}

	decoded, err := audio.ReadWav(*inputPath)
	if err != nil {
		if decoded, err = audio.ReadContainer(*inputPath); err != nil {
			log.Fatalf("decoding %s: %v", *inputPath, err)
		}
	}

	mono := downmix(decoded)
	fmt.Printf("Read %d mono samples at %d Hz (%d channels)\n", len(mono), decoded.SampleRate, decoded.Channels)

	width, height := 2048, 512
	img := spectrogram.NewImage128(image.Rect(0, 0, width, height))
	black := spectrogram.ParseColor("000000")
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	spectrogram.Drawfft(
		img,
		mono,
		uint32(decoded.SampleRate),
		uint32(height),
		false, // Hamming window
		false, // FFT, not DFT
		true,  // magnitude
		false, // linear scale
	)

	if err := spectrogram.SavePng(img, *outputPath); err != nil {
		log.Fatalf("saving %s: %v", *outputPath, err)
	}

	fmt.Printf("Saved spectrogram to %s\n", filepath.Clean(*outputPath))
}

func downmix(d *audio.Decoded) []float64 {
	if d.Channels <= 1 {
		return d.Interleaved
	}
	frames := len(d.Interleaved) / d.Channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < d.Channels; c++ {
			sum += d.Interleaved[i*d.Channels+c]
		}
		mono[i] = sum / float64(d.Channels)
	}
	return mono
}
