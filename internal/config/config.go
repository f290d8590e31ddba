package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	ClientURL string
	LogLevel  string
	Env       string // "development" or "production"

	GoogleClientID     string
	GoogleClientSecret string
	// BaseURL is the externally visible server URL used to build the
	// Google OAuth callback, e.g. http://localhost:5000.
	BaseURL string
}

// Load reads configuration from a .env file (if present) and the
// environment. It fails only on settings that have no safe default.
func Load() (Config, error) {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:               getenv("MEDITRACK_PORT", "5000"),
		DBPath:             getenv("MEDITRACK_DB_PATH", "meditrack.db"),
		JWTSecret:          os.Getenv("MEDITRACK_JWT_SECRET"),
		ClientURL:          getenv("MEDITRACK_CLIENT_URL", "http://localhost:3000"),
		LogLevel:           getenv("MEDITRACK_LOG_LEVEL", "info"),
		Env:                getenv("MEDITRACK_ENV", "development"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	}
	cfg.BaseURL = getenv("MEDITRACK_BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("MEDITRACK_JWT_SECRET is required")
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode. It
// controls the Secure flag on session cookies.
func (c Config) Production() bool {
	return c.Env == "production"
}

// GoogleEnabled reports whether Google login is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
