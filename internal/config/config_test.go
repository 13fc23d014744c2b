package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "postgres://localhost:5432/ordersdb", cfg.PostgresDSN)
	assert.Equal(t, 10*time.Second, cfg.BatchInterval)
	assert.Empty(t, cfg.SolscanAPIKey)
	assert.Equal(t, "https://pro-api.solscan.io/v1.0", cfg.SolscanBaseURL)
	assert.True(t, cfg.MockData)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORDERBOOK_PORT", "8088")
	t.Setenv("BATCH_INTERVAL", "2s")
	t.Setenv("MOCK_DATA", "false")
	t.Setenv("SOLSCAN_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.BatchInterval)
	assert.False(t, cfg.MockData)
	assert.Equal(t, "secret", cfg.SolscanAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BATCH_INTERVAL", "not-a-duration")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("ORDERBOOK_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}
