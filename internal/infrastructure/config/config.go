// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Telegram
	TelegramBotToken string
	PollTimeout      time.Duration

	// Flight data provider
	ProviderBaseURL string
	ProviderDataURL string
	ProviderTimeout time.Duration

	// Postgres reference data (optional)
	PostgresDSN string

	// Domain
	ScanRadiusMeters float64
	AirportCacheSize int
	ArtifactDir      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig(envFile string) (*Config, error) {
	// Load .env file if it exists
	if envFile != "" {
		godotenv.Load(envFile)
	} else {
		godotenv.Load()
	}

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		PollTimeout:      time.Duration(getEnvAsInt("POLL_TIMEOUT", 10)) * time.Second,

		ProviderBaseURL: getEnv("FR24_BASE_URL", "https://www.flightradar24.com"),
		ProviderDataURL: getEnv("FR24_DATA_URL", "https://data-live.flightradar24.com"),
		ProviderTimeout: time.Duration(getEnvAsInt("FR24_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		ScanRadiusMeters: float64(getEnvAsInt("SCAN_RADIUS_METERS", 25000)),
		AirportCacheSize: getEnvAsInt("AIRPORT_CACHE_SIZE", 64),
		ArtifactDir:      getEnv("ARTIFACT_DIR", os.TempDir()),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
