package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := `PORT=:8080
ENVIRONMENT=staging
BLOG_DB_DSN=/tmp/staging.db
SESSION_SECRET=super-secret-value
LIMITER_ENABLED=false
`
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "/tmp/staging.db", cfg.DBDSN)
	assert.Equal(t, "super-secret-value", cfg.SessionSecret)
	assert.False(t, cfg.LimiterEnabled)

	// untouched keys fall back to defaults
	assert.Equal(t, float64(2), cfg.LimiterRPS)
	assert.Equal(t, 4, cfg.LimiterBurst)
	assert.Equal(t, "localhost", cfg.MQHost)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Port)
	assert.Equal(t, "blog.db", cfg.DBDSN)
}
