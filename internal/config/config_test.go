package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EP_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	// A named file that does not exist is an error; only the default
	// search path is optional.
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "echoplay", cfg.Postgres.Database)
	assert.Equal(t, time.Minute, cfg.Postgres.HealthCheckPeriod)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Maint.PruneSchedule)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
postgres:
  database: echoplay_test
auth:
  jwt_secret: file-secret
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "echoplay_test", cfg.Postgres.Database)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	// Unset keys keep their defaults.
	assert.Equal(t, "localhost", cfg.Postgres.Host)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("EP_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("EP_SERVER_PORT", "7777")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("EP_AUTH_JWT_SECRET", "")

	_, err := Load("")
	assert.Error(t, err)
}
