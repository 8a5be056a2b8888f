package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoolConfigKeepsDefaultsForUnsetKnobs(t *testing.T) {
	// Only connection identity set, every pool knob left zero. The
	// health check period must stay positive or the pool's background
	// ticker panics.
	cfg := &DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Database: "echoplay",
		SSLMode:  "disable",
	}

	poolCfg, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Positive(t, poolCfg.HealthCheckPeriod)
	assert.Positive(t, poolCfg.MaxConns)
	assert.Positive(t, poolCfg.MaxConnLifetime)
	assert.Positive(t, poolCfg.MaxConnIdleTime)
}

func TestBuildPoolConfigAppliesKnobs(t *testing.T) {
	cfg := DefaultDBConfig()
	cfg.MaxConns = 7
	cfg.HealthCheckPeriod = 2 * time.Minute

	poolCfg, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(7), poolCfg.MaxConns)
	assert.Equal(t, 2*time.Minute, poolCfg.HealthCheckPeriod)
}
