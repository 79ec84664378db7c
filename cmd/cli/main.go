package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/himanishpuri/auralis/internal/audio"
	"github.com/himanishpuri/auralis/pkg/fingerprint"
	"github.com/himanishpuri/auralis/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	printBanner()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Infof("executing command: %s", command)

	switch command {
	case "analyze":
		handleAnalyze()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
   _                 _ _
  / \  _   _ _ __ __ | (_)___
 / _ \| | | | '__/ _ | | / __|
/ ___ \ |_| | | | (_| | \__ \
/_/   \_\__,_|_|  \__,_|_|___/

        Perceptual Audio Fingerprinting CLI
`
	fmt.Println(banner)
}

func handleAnalyze() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Usage: auralis analyze <audio_file> [--strategy full|fast] [--json] [--rate 44100]")
		os.Exit(1)
	}

	audioPath := os.Args[2]

	analyzeCmd := flag.NewFlagSet("analyze", flag.ExitOnError)
	strategyFlag := analyzeCmd.String("strategy", "full", "harmonic analysis strategy: full or fast")
	jsonOut := analyzeCmd.Bool("json", false, "print the fingerprint as raw JSON")
	sampleRateFlag := analyzeCmd.Int("rate", 44100, "normalization sample rate for non-WAV input")
	analyzeCmd.Parse(os.Args[3:])

	log.Infof("analyzing file: %s (strategy=%s)", audioPath, *strategyFlag)

	decoded, err := decode(audioPath, *sampleRateFlag)
	if err != nil {
		fmt.Printf("\nFailed to decode audio: %v\n", err)
		log.Errorf("decode failed: %v", err)
		os.Exit(1)
	}

	strategy := fingerprint.Full
	if strings.EqualFold(*strategyFlag, "fast") {
		strategy = fingerprint.Fast
	}

	fmt.Println("Analyzing audio...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fp, validation, err := fingerprint.Analyze(
		ctx, decoded.Interleaved, decoded.SampleRate, decoded.Channels,
		fingerprint.WithStrategy(strategy),
		fingerprint.WithLogger(log),
	)
	if err != nil {
		fmt.Printf("\nAnalysis failed: %v\n", err)
		log.Errorf("Analyze failed: %v", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{"fingerprint": fp, "validation": validation})
		return
	}

	printFingerprint(fp, validation)
	log.Infof("analysis complete for %s (valid=%t)", audioPath, validation.Valid)
}

func decode(path string, sampleRate int) (*audio.Decoded, error) {
	if strings.EqualFold(ext(path), ".wav") {
		if d, err := audio.ReadWav(path); err == nil {
			return d, nil
		}
	}
	if d, err := audio.ReadContainer(path); err == nil {
		return d, nil
	}

	ctx := context.Background()
	cfg := audio.ConvertWAVConfig{SampleRate: sampleRate, Channels: 2}
	if meta, err := audio.Probe(ctx, path); err == nil {
		if meta.SampleRate > 0 {
			cfg.SampleRate = meta.SampleRate
		}
		if meta.Channels > 0 {
			cfg.Channels = meta.Channels
		}
	}

	converted, err := audio.ConvertToWAV(ctx, path, os.TempDir(), cfg)
	if err != nil {
		return nil, err
	}
	defer os.Remove(converted)
	return audio.ReadWav(converted)
}

func ext(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

func printFingerprint(fp *fingerprint.Fingerprint, validation fingerprint.ValidationResult) {
	fmt.Println("\nFingerprint:")
	fmt.Printf("  SubBass/Bass/LowMid/Mid/UpperMid/Presence/Air: %.1f / %.1f / %.1f / %.1f / %.1f / %.1f / %.1f %%\n",
		fp.SubBass, fp.Bass, fp.LowMid, fp.Mid, fp.UpperMid, fp.Presence, fp.Air)
	fmt.Printf("  Loudness (LUFS): %.2f   Crest (dB): %.2f   Bass/Mid ratio (dB): %.2f\n",
		fp.LUFS, fp.CrestDB, fp.BassMidRatio)
	fmt.Printf("  Tempo (BPM): %.1f   Rhythm stability: %.3f   Transient density: %.3f   Silence ratio: %.3f\n",
		fp.TempoBPM, fp.RhythmStability, fp.TransientDensity, fp.SilenceRatio)
	fmt.Printf("  Spectral centroid/rolloff/flatness: %.3f / %.3f / %.3f\n",
		fp.SpectralCentroid, fp.SpectralRolloff, fp.SpectralFlatness)
	fmt.Printf("  Harmonic ratio/pitch stability/chroma energy: %.3f / %.3f / %.3f\n",
		fp.HarmonicRatio, fp.PitchStability, fp.ChromaEnergy)
	fmt.Printf("  Dynamic range variation/peak consistency/loudness std: %.3f / %.3f / %.3f\n",
		fp.DynamicRangeVariation, fp.PeakConsistency, fp.LoudnessVariationStd)
	fmt.Printf("  Stereo width/phase correlation: %.3f / %.3f\n", fp.StereoWidth, fp.PhaseCorrelation)

	if validation.Valid {
		fmt.Println("\nValidation: all 25 fields within range")
	} else {
		fmt.Printf("\nValidation: %d field(s) repaired: %s\n", len(validation.InvalidFields), strings.Join(validation.InvalidFields, ", "))
	}
}

func printUsage() {
	fmt.Println("auralis - perceptual audio fingerprinting CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  auralis analyze <audio_file> [--strategy full|fast] [--json] [--rate 44100]")
}
