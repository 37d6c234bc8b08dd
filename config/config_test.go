package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Rates.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Rates.RefreshPeriod)
	assert.Equal(t, 5, cfg.Rates.BatchSize)
	assert.Equal(t, time.Second, cfg.Rates.BatchDelay)
	assert.Equal(t, 15*time.Second, cfg.Rates.HTTPTimeout)
	assert.False(t, cfg.Rates.StrictFallback)
	assert.Equal(t, 10000.0, cfg.Purchase.DailyLimit)
	assert.Equal(t, 2.99, cfg.Purchase.FeeBase)
	assert.Equal(t, 0.015, cfg.Purchase.FeePercent)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
rates:
  cache_ttl: 10m
  strict_fallback: true
purchase:
  daily_limit: 5000
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Rates.CacheTTL)
	assert.True(t, cfg.Rates.StrictFallback)
	assert.Equal(t, 5000.0, cfg.Purchase.DailyLimit)
	// Unset keys keep defaults.
	assert.Equal(t, 5, cfg.Rates.BatchSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CXG_SERVER_PORT", "7070")
	t.Setenv("CXG_RATES_BATCH_SIZE", "3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Rates.BatchSize)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
