package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	internalaudio "github.com/himanishpuri/auralis/internal/audio"
	"github.com/himanishpuri/auralis/pkg/fingerprint"
	"github.com/himanishpuri/auralis/pkg/logger"
)

// Server encapsulates the HTTP server and its dependencies.
type Server struct {
	config    *ServerConfig
	log       fingerprint.Logger
	validate  *validator.Validate
	startedAt time.Time
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port               int
	TempDir            string
	SampleRate         int
	AllowedOrigins     []string
	DefaultStrategy    fingerprint.Strategy
	WorkerCount        int
	MemoryCeilingBytes int64
}

// NewServer creates a new server instance.
func NewServer(config *ServerConfig) *Server {
	return &Server{
		config:    config,
		log:       logger.GetLogger(),
		validate:  validator.New(),
		startedAt: time.Now(),
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("failed to encode JSON response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, requestID, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Code:      statusCode,
		RequestID: requestID,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "auralis fingerprint API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":      "GET /health",
			"fingerprint": "POST /fingerprint",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		UptimeSec: time.Since(s.startedAt).Seconds(),
	})
}

// handleFingerprint handles POST /fingerprint: a JSON request naming a
// local file path, decoded and run through the engine.
func (s *Server) handleFingerprint(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	var req FingerprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("[%s] failed to decode request body: %v", requestID, err)
		s.respondError(w, http.StatusBadRequest, requestID, "malformed request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, http.StatusBadRequest, requestID, err.Error())
		return
	}

	if _, err := os.Stat(req.Filepath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.respondError(w, http.StatusNotFound, requestID, fmt.Sprintf("file not found: %s", req.Filepath))
			return
		}
		s.respondError(w, http.StatusBadRequest, requestID, err.Error())
		return
	}

	started := time.Now()

	decoded, meta, err := s.decode(ctx, req.Filepath)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUnrecognizedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		s.log.Errorf("[%s] failed to decode %q: %v", requestID, req.Filepath, err)
		s.respondError(w, status, requestID, fmt.Sprintf("failed to decode audio: %v", err))
		return
	}

	strategy := s.config.DefaultStrategy
	if strings.EqualFold(req.Strategy, "fast") {
		strategy = fingerprint.Fast
	} else if strings.EqualFold(req.Strategy, "full") {
		strategy = fingerprint.Full
	}

	opts := []fingerprint.Option{
		fingerprint.WithStrategy(strategy),
		fingerprint.WithMemoryCeiling(s.config.MemoryCeilingBytes),
		fingerprint.WithLogger(s.log),
	}
	if s.config.WorkerCount > 0 {
		opts = append(opts, fingerprint.WithWorkerCount(s.config.WorkerCount))
	}

	fp, validation, err := fingerprint.Analyze(ctx, decoded.Interleaved, decoded.SampleRate, decoded.Channels, opts...)
	if err != nil {
		status := fingerprint.KindOf(err).HTTPStatus()
		s.log.Errorf("[%s] analysis failed: %v", requestID, err)
		s.respondError(w, status, requestID, err.Error())
		return
	}

	elapsed := time.Since(started)
	decodedSize := humanize.Bytes(uint64(len(decoded.Interleaved) * 8))
	s.log.Infof("[%s] fingerprinted %q (%d Hz, %d ch, %s decoded, valid=%t, %s)", requestID, req.Filepath, decoded.SampleRate, decoded.Channels, decodedSize, validation.Valid, elapsed)
	s.respondJSON(w, http.StatusOK, FingerprintResponse{
		TrackID:     req.TrackID,
		Fingerprint: fp,
		Metadata: TrackMetadata{
			DurationSec: meta.DurationSec,
			SampleRate:  decoded.SampleRate,
			Channels:    decoded.Channels,
			Format:      meta.Format,
		},
		ProcessingTimeMs: elapsed.Milliseconds(),
		Validation:       validation,
	})
}

// errUnrecognizedFormat marks a decode failure where ffprobe could not
// identify an audio stream at all, as opposed to a container ffprobe
// recognizes but ffmpeg failed to normalize (a 400, not a 415).
var errUnrecognizedFormat = errors.New("unrecognized audio format")

// decode reads path as a WAV file via the native reader first; on failure
// it falls back to the go-audio decoder, then to an ffmpeg-normalized WAV,
// matching the layered decode strategy DESIGN.md lays out for
// internal/audio. The returned metadata's SampleRate/Channels are
// superseded by the Decoded's own (post-normalization) values; only
// DurationSec and Format are carried through as reported.
func (s *Server) decode(ctx context.Context, path string) (*internalaudio.Decoded, internalaudio.Metadata, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	if format == "wav" {
		if decoded, err := internalaudio.ReadWav(path); err == nil {
			return decoded, durationMeta(decoded, format), nil
		}
	}

	if decoded, err := internalaudio.ReadContainer(path); err == nil {
		return decoded, durationMeta(decoded, format), nil
	}

	cfg := internalaudio.ConvertWAVConfig{SampleRate: s.config.SampleRate, Channels: 2}
	probed, probeErr := internalaudio.Probe(ctx, path)
	if probeErr == nil {
		if probed.SampleRate > 0 {
			cfg.SampleRate = probed.SampleRate
		}
		if probed.Channels > 0 {
			cfg.Channels = probed.Channels
		}
		if probed.Format != "" {
			format = probed.Format
		}
	}

	converted, err := internalaudio.ConvertToWAV(ctx, path, s.config.TempDir, cfg)
	if err != nil {
		if probeErr != nil {
			return nil, internalaudio.Metadata{}, fmt.Errorf("%w: %v", errUnrecognizedFormat, err)
		}
		return nil, internalaudio.Metadata{}, err
	}
	defer os.Remove(converted)

	decoded, err := internalaudio.ReadWav(converted)
	if err != nil {
		return nil, internalaudio.Metadata{}, err
	}
	meta := durationMeta(decoded, format)
	if probeErr == nil {
		meta.DurationSec = probed.DurationSec
	}
	return decoded, meta, nil
}

func durationMeta(decoded *internalaudio.Decoded, format string) internalaudio.Metadata {
	frames := len(decoded.Interleaved)
	if decoded.Channels > 0 {
		frames /= decoded.Channels
	}
	duration := 0.0
	if decoded.SampleRate > 0 {
		duration = float64(frames) / float64(decoded.SampleRate)
	}
	return internalaudio.Metadata{
		DurationSec: duration,
		SampleRate:  decoded.SampleRate,
		Channels:    decoded.Channels,
		Format:      format,
	}
}
