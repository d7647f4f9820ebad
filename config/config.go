package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Load when no model credential is configured
var ErrMissingAPIKey = errors.New("API_KEY environment variable not set")

// Config holds everything the service reads at startup
type Config struct {
	APIKey          string
	Model           string
	GeminiBaseURL   string
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	DevMode         bool
	AllowOrigin     string
	ShutdownTimeout time.Duration
}

// LoadEnvFiles loads .env.development, falling back to .env. Missing files are not an error.
func LoadEnvFiles(files ...string) bool {
	if len(files) == 0 {
		files = []string{".env.development", ".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// Load reads configuration from the process environment.
// The returned config is usable even when the error is ErrMissingAPIKey.
func Load() (Config, error) {
	cfg := Config{
		APIKey:          strings.TrimSpace(os.Getenv("API_KEY")),
		Model:           getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:   getenv("GEMINI_BASE_URL", ""),
		Port:            getenv("PORT", "8082"),
		GinMode:         getenv("GIN_MODE", "release"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
		DevMode:         getenv("DEV_MODE", "") == "true",
		AllowOrigin:     getenv("CORS_ALLOW_ORIGIN", "*"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if cfg.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}
