//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/himanishpuri/auralis/pkg/fingerprint"
)

var (
	port           int
	tempDir        string
	sampleRate     int
	allowedOrigins string
	strategy       string
	workerCount    int
	memCeilingMB   int64
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("AURALIS_TEMP_DIR", "/tmp"), "Temporary directory for ffmpeg-normalized WAV files")
	flag.IntVar(&sampleRate, "rate", getEnvIntOrDefault("AURALIS_SAMPLE_RATE", 44100), "Normalization sample rate for inputs converted through ffmpeg")
	flag.StringVar(&allowedOrigins, "origins", getEnvOrDefault("AURALIS_CORS_ORIGINS", "*"), "Comma-separated list of allowed CORS origins (use * for all)")
	flag.StringVar(&strategy, "strategy", getEnvOrDefault("AURALIS_STRATEGY", "full"), "Default harmonic-analysis strategy: full or fast")
	flag.IntVar(&workerCount, "workers", getEnvIntOrDefault("AURALIS_WORKERS", 0), "Worker pool size for YIN/CQT (0 = GOMAXPROCS)")
	flag.Int64Var(&memCeilingMB, "mem-ceiling-mb", 512, "Per-request projected memory ceiling in MiB (0 disables)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	flag.Parse()

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	defaultStrategy := fingerprint.Full
	if strings.EqualFold(strategy, "fast") {
		defaultStrategy = fingerprint.Fast
	}

	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		log.Fatalf("failed to create temp dir %q: %v", tempDir, err)
	}

	config := &ServerConfig{
		Port:               port,
		TempDir:            tempDir,
		SampleRate:         sampleRate,
		AllowedOrigins:     origins,
		DefaultStrategy:    defaultStrategy,
		WorkerCount:        workerCount,
		MemoryCeilingBytes: memCeilingMB * 1024 * 1024,
	}

	server := NewServer(config)
	if err := server.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
