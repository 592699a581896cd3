// Package config loads application configuration from environment
// variables with sensible defaults. A .env file, when present, is
// loaded first via godotenv (env always takes precedence).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the CLI and the mock server.
type Config struct {
	// API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Credential persistence
	TokenFile string

	// Logging
	LogLevel string

	// Caller-side resilience (CLI health polling)
	MaxRetries     int
	InitialBackoff time.Duration

	// Consumer-side cache
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string
	TracingOn    bool

	// Mock server (cmd/crm-mockd)
	MockPort     int
	JWTSecret    string
	JWTAccessTTL time.Duration
}

// Load reads configuration from the environment. It silently ignores a
// missing .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("CRM_API_URL", "http://localhost:8000"),
		HTTPTimeout: getEnvDuration("CRM_HTTP_TIMEOUT", 30*time.Second),

		TokenFile: getEnv("CRM_TOKEN_FILE", defaultTokenFile()),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		MaxRetries:     getEnvInt("CRM_MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("CRM_INITIAL_BACKOFF", 100*time.Millisecond),

		CacheTTL: getEnvDuration("CRM_CACHE_TTL", 30*time.Second),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingOn:    getEnv("CRM_TRACING", "false") == "true",

		MockPort:     getEnvInt("CRM_MOCK_PORT", 8000),
		JWTSecret:    getEnv("CRM_JWT_SECRET", "crm-mock-dev-secret-change-me"),
		JWTAccessTTL: getEnvDuration("CRM_JWT_ACCESS_TTL", 30*time.Minute),
	}
}

// defaultTokenFile places the persisted credential under the user's
// config directory, falling back to the working directory.
func defaultTokenFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "crm", "credentials.json")
	}
	return ".crm_credentials.json"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
