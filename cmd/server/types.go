package main

import "github.com/himanishpuri/auralis/pkg/fingerprint"

// FingerprintRequest is the body of POST /fingerprint: a reference to a
// local file the server can read, not an upload.
type FingerprintRequest struct {
	TrackID  uint32 `json:"track_id" validate:"required"`
	Filepath string `json:"filepath" validate:"required"`
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=full fast"`
}

// TrackMetadata describes the decoded source audio alongside the
// fingerprint itself.
type TrackMetadata struct {
	DurationSec float64 `json:"duration_sec"`
	SampleRate  int     `json:"sample_rate"`
	Channels    int     `json:"channels"`
	Format      string  `json:"format"`
}

// FingerprintResponse is the success body for POST /fingerprint.
type FingerprintResponse struct {
	TrackID          uint32                     `json:"track_id"`
	Fingerprint      *fingerprint.Fingerprint   `json:"fingerprint"`
	Metadata         TrackMetadata              `json:"metadata"`
	ProcessingTimeMs int64                      `json:"processing_time_ms"`
	Validation       fingerprint.ValidationResult `json:"validation"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Version   string  `json:"version"`
	UptimeSec float64 `json:"uptime_sec"`
}

// ErrorResponse is the standard error response shape.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      int    `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
