// Package config loads service configuration from the environment.
// A .env file in the working directory is honored if present.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is built once in
// main and passed down explicitly; nothing reads the environment after Load.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// LookupBaseURL is the base URL of the Open Food Facts API.
	LookupBaseURL string

	// LookupTimeout bounds every nutrition lookup call so a slow external
	// API degrades a single request instead of hanging the service.
	LookupTimeout time.Duration

	// PurgeInterval enables the periodic delete-all job when positive.
	// Zero disables it.
	PurgeInterval time.Duration
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	// Missing .env is fine; env vars may come from the process environment.
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "./data/bitelog.db"),
		LookupBaseURL: getEnv("LOOKUP_BASE_URL", "https://world.openfoodfacts.org"),
		LookupTimeout: getDuration("LOOKUP_TIMEOUT", 5*time.Second),
		PurgeInterval: getDuration("PURGE_INTERVAL", 0),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using fallback",
			"key", key, "value", value, "fallback", fallback)
		return fallback
	}
	return d
}
