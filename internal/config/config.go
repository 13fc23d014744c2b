// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all server settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// PostgresDSN is the connection string for the order book database.
	PostgresDSN string

	// BatchInterval is the sweep and mock-traffic period.
	BatchInterval time.Duration

	// SolscanAPIKey authenticates token metadata lookups. Empty disables
	// fetching; every lookup then resolves to a placeholder.
	SolscanAPIKey string

	// SolscanBaseURL is the metadata API base.
	SolscanBaseURL string

	// MockData enables the demo traffic generator.
	MockData bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("ORDERBOOK_PORT", 5000)
	v.SetDefault("POSTGRES_DSN", "postgres://localhost:5432/ordersdb")
	v.SetDefault("BATCH_INTERVAL", "10s")
	v.SetDefault("SOLSCAN_API_KEY", "")
	v.SetDefault("SOLSCAN_BASE_URL", "https://pro-api.solscan.io/v1.0")
	v.SetDefault("MOCK_DATA", true)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	interval := v.GetDuration("BATCH_INTERVAL")
	if interval <= 0 {
		return nil, fmt.Errorf("BATCH_INTERVAL must be a positive duration, got %q", v.GetString("BATCH_INTERVAL"))
	}

	port := v.GetInt("ORDERBOOK_PORT")
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("ORDERBOOK_PORT out of range: %d", port)
	}

	return &Config{
		Port:           port,
		PostgresDSN:    v.GetString("POSTGRES_DSN"),
		BatchInterval:  interval,
		SolscanAPIKey:  v.GetString("SOLSCAN_API_KEY"),
		SolscanBaseURL: v.GetString("SOLSCAN_BASE_URL"),
		MockData:       v.GetBool("MOCK_DATA"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
