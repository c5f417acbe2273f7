package core

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is the Pantry API root that basket paths are appended to.
const DefaultBaseURL = "https://getpantry.cloud/apiv1/pantry"

// Config holds process-wide configuration for pantry-mcp.
// It is built once at startup by LoadConfig and treated as read-only afterwards.
type Config struct {
	// PantryID and BasketName are the fallbacks used when a call omits them.
	PantryID   string `env:"PANTRY_ID"`
	BasketName string `env:"BASKET_NAME"`

	BaseURL string `env:"PANTRY_API_BASE" envDefault:"https://getpantry.cloud/apiv1/pantry"`
	// Timeout of zero leaves requests bounded only by the transport.
	Timeout  time.Duration `env:"PANTRY_TIMEOUT"`
	LogLevel string        `env:"PANTRY_LOG_LEVEL" envDefault:"warn"`
}

// Overrides carries command-line values. A nil field means the flag was not
// given; a non-nil field wins over the environment even when empty.
type Overrides struct {
	PantryID   *string
	BasketName *string
	LogLevel   *string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		LogLevel: "warn",
	}
}

// LoadConfig reads PANTRY_* environment variables and applies command-line
// overrides on top.
func LoadConfig(o Overrides) (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.PantryID != nil {
		cfg.PantryID = *o.PantryID
	}
	if o.BasketName != nil {
		cfg.BasketName = *o.BasketName
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("invalid PANTRY_TIMEOUT: must not be negative, got %s", cfg.Timeout)
	}

	return cfg, nil
}
