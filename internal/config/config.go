// Package config handles loading runtime configuration for the Fairway Cup API.
// Configuration values (database URL, API port, secrets) are read from
// environment variables rather than being hardcoded, so the same binary runs
// in dev, staging, and production with nothing but different env vars.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the
	// process environment. Convenient in development; in production the
	// real environment variables are already set by the platform.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL    string // PostgreSQL connection string
	MigrationsPath string // golang-migrate source URL (e.g. "file://migrations")
	ClerkSecretKey string // Secret key for verifying auth tokens server-side
	Env            string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a
// populated Config. A missing .env file is fine — real env vars are used
// in production, so the godotenv error is intentionally discarded.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"), // Required — the server fails to start without it
		MigrationsPath: getenv("MIGRATIONS_PATH", "file://migrations"),
		ClerkSecretKey: os.Getenv("CLERK_SECRET_KEY"),
		Env:            getenv("ENV", "development"),
	}
}

// getenv reads an environment variable, falling back to a default when the
// variable is unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
