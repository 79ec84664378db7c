//go:build js && wasm
// +build js,wasm

package main

import (
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/himanishpuri/auralis/pkg/fingerprint"
)

// Error codes returned to JavaScript.
const (
	ErrorNone         = iota // Success
	ErrorInvalidArgs         // Invalid function arguments
	ErrorAnalysisFailed
)

// analyze processes audio samples and returns the 25-dimensional
// perceptual fingerprint.
//
// JavaScript signature:
//
//	analyze(audioArray, sampleRate, channels, strategy)
//
// Parameters:
//   - audioArray: Float64Array or Array of interleaved audio samples
//   - sampleRate: Number - sample rate in Hz (e.g., 44100, 11025)
//   - channels: Number - number of interleaved channels (>= 1)
//   - strategy: String - "full" or "fast" (optional, defaults to "full")
//
// Returns: JavaScript object { error: number, data: object | string }
//   - error: 0 = success, >0 = error code (see constants above)
//   - data: on success, the fingerprint fields plus a "valid" flag and
//     "invalid_fields" array; on error, a string with the error message
func analyze(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "expected at least 3 arguments: audioArray, sampleRate, channels")
	}

	audioDataJS := args[0]
	sampleRateJS := args[1]
	channelsJS := args[2]

	if audioDataJS.Type() != js.TypeObject {
		return makeErrorResponse(ErrorInvalidArgs, "audioArray must be an Array or Float64Array")
	}
	if sampleRateJS.Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "sampleRate must be a number")
	}
	if channelsJS.Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "channels must be a number")
	}

	sampleRate := sampleRateJS.Int()
	channels := channelsJS.Int()

	strategy := fingerprint.Full
	if len(args) >= 4 && args[3].Type() == js.TypeString && strings.EqualFold(args[3].String(), "fast") {
		strategy = fingerprint.Fast
	}

	length := audioDataJS.Length()
	if length == 0 {
		return makeErrorResponse(ErrorInvalidArgs, "audioArray is empty")
	}

	samples := make([]float64, length)
	for i := 0; i < length; i++ {
		val := audioDataJS.Index(i)
		if val.Type() != js.TypeNumber {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("audioArray element %d is not a number", i))
		}
		samples[i] = val.Float()
	}

	fp, validation, err := fingerprint.Analyze(
		context.Background(), samples, sampleRate, channels,
		fingerprint.WithStrategy(strategy),
	)
	if err != nil {
		return makeErrorResponse(ErrorAnalysisFailed, err.Error())
	}

	return js.ValueOf(map[string]interface{}{
		"error": ErrorNone,
		"data":  fingerprintToJS(fp, validation),
	})
}

func fingerprintToJS(fp *fingerprint.Fingerprint, validation fingerprint.ValidationResult) map[string]interface{} {
	invalid := make([]interface{}, len(validation.InvalidFields))
	for i, f := range validation.InvalidFields {
		invalid[i] = f
	}

	return map[string]interface{}{
		"sub_bass":                fp.SubBass,
		"bass":                    fp.Bass,
		"low_mid":                 fp.LowMid,
		"mid":                     fp.Mid,
		"upper_mid":               fp.UpperMid,
		"presence":                fp.Presence,
		"air":                     fp.Air,
		"lufs":                    fp.LUFS,
		"crest_db":                fp.CrestDB,
		"bass_mid_ratio":          fp.BassMidRatio,
		"tempo_bpm":               fp.TempoBPM,
		"rhythm_stability":        fp.RhythmStability,
		"transient_density":       fp.TransientDensity,
		"silence_ratio":           fp.SilenceRatio,
		"spectral_centroid":       fp.SpectralCentroid,
		"spectral_rolloff":        fp.SpectralRolloff,
		"spectral_flatness":       fp.SpectralFlatness,
		"harmonic_ratio":          fp.HarmonicRatio,
		"pitch_stability":         fp.PitchStability,
		"chroma_energy":           fp.ChromaEnergy,
		"dynamic_range_variation": fp.DynamicRangeVariation,
		"loudness_variation_std":  fp.LoudnessVariationStd,
		"peak_consistency":        fp.PeakConsistency,
		"stereo_width":            fp.StereoWidth,
		"phase_correlation":       fp.PhaseCorrelation,
		"valid":                   validation.Valid,
		"invalid_fields":          invalid,
	}
}

// makeErrorResponse creates a JavaScript error response object.
func makeErrorResponse(errorCode int, message string) js.Value {
	return js.ValueOf(map[string]interface{}{
		"error": errorCode,
		"data":  message,
	})
}

// main is the entry point for the WASM module.
func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "auralis WASM module initializing...")
	}

	done := make(chan struct{})

	js.Global().Set("analyze", js.FuncOf(analyze))

	if !console.IsUndefined() {
		console.Call("log", "analyze function registered")
	}

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
		if !console.IsUndefined() {
			console.Call("log", "wasmReady event dispatched")
		}
	}

	if !console.IsUndefined() {
		console.Call("log", "auralis WASM module loaded and ready")
	}

	<-done
}
