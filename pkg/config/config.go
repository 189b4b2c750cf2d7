package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// NHL API
	NHL NHLConfig

	// Prediction snapshot
	PredictionsFile string

	// Local day cache for fetched API payloads
	Snapshot SnapshotConfig

	// Report output
	OutputDir string
	Season    string // e.g. "20252026"

	// Layout template (optional; built-in default when empty)
	LayoutFile string

	// Serve mode
	ListenAddr string

	// Schedule mode
	CronSpec string
	Teams    []string

	// Logging
	LogLevel  string
	LogFormat string
}

// NHLConfig holds NHL web API configuration.
type NHLConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RatePerSec  float64
	RateBurst   int
	MaxRetries  int
	RetryDelay  time.Duration
	LogoBaseURL string
}

// SnapshotConfig holds the sqlite payload cache configuration.
type SnapshotConfig struct {
	Path    string
	TTL     time.Duration
	Enabled bool
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		NHL: NHLConfig{
			BaseURL:     getEnv("NHL_BASE_URL", "https://api-web.nhle.com/v1"),
			Timeout:     getEnvAsDuration("NHL_TIMEOUT", "30s"),
			RatePerSec:  getEnvAsFloat("NHL_RATE_PER_SEC", 5.0),
			RateBurst:   getEnvAsInt("NHL_RATE_BURST", 5),
			MaxRetries:  getEnvAsInt("NHL_MAX_RETRIES", 3),
			RetryDelay:  getEnvAsDuration("NHL_RETRY_DELAY", "1s"),
			LogoBaseURL: getEnv("NHL_LOGO_BASE_URL", "https://www.espn.com/nhl/team/_/name"),
		},

		PredictionsFile: getEnv("PREDICTIONS_FILE", "win_probability_predictions.json"),

		Snapshot: SnapshotConfig{
			Path:    getEnv("SNAPSHOT_DB_PATH", filepath.Join(os.TempDir(), "rinkreport_snapshots.db")),
			TTL:     getEnvAsDuration("SNAPSHOT_TTL", "24h"),
			Enabled: getEnvAsBool("SNAPSHOT_ENABLED", true),
		},

		OutputDir:  getEnv("OUTPUT_DIR", "reports"),
		Season:     getEnv("SEASON", "20252026"),
		LayoutFile: getEnv("LAYOUT_FILE", ""),

		ListenAddr: getEnv("LISTEN_ADDR", ":8089"),

		// Six fields, seconds first.
		CronSpec: getEnv("CRON_SPEC", "0 0 6 * * *"),
		Teams:    getEnvAsList("TEAMS", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.NHL.BaseURL == "" {
		return fmt.Errorf("NHL_BASE_URL is required")
	}

	if c.Snapshot.TTL <= 0 {
		return fmt.Errorf("SNAPSHOT_TTL must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList parses a comma-separated value like "PIT,EDM,FLA".
func getEnvAsList(key, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToUpper(trimmed))
		}
	}
	return out
}
