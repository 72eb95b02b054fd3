package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/fairwaycup_test")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("ENV", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/fairwaycup_test", cfg.DatabaseURL)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MIGRATIONS_PATH", "file://db/migrations")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "file://db/migrations", cfg.MigrationsPath)
	assert.Equal(t, "production", cfg.Env)
}
