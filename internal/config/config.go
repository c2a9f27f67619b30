// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adhocore/gronx"
	"github.com/caarlos0/env/v11"
)

// Config holds the tunables of the consolidation and decay pipeline.
// Every field can be overridden through the environment; the decay
// and chaining defaults match the documented heuristics.
type Config struct {
	DBPath    string        `env:"ATHENA_DB"`
	DecayRate float64       `env:"ATHENA_DECAY_RATE" envDefault:"0.05"`
	DecayDays int           `env:"ATHENA_DECAY_DAYS" envDefault:"30"`
	ChainGap  time.Duration `env:"ATHENA_CHAIN_GAP" envDefault:"1h"`
	Schedule  string        `env:"ATHENA_SCHEDULE" envDefault:"0 * * * *"`
}

// Load parses the environment and fills in defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".athena", "athena.db")
	}
	if cfg.DecayRate < 0 {
		return nil, fmt.Errorf("decay rate must be >= 0, got %v", cfg.DecayRate)
	}
	if cfg.DecayDays < 0 {
		return nil, fmt.Errorf("decay days threshold must be >= 0, got %d", cfg.DecayDays)
	}
	if cfg.ChainGap <= 0 {
		return nil, fmt.Errorf("chain gap must be positive, got %v", cfg.ChainGap)
	}
	if !gronx.New().IsValid(cfg.Schedule) {
		return nil, fmt.Errorf("invalid cron schedule %q", cfg.Schedule)
	}

	return cfg, nil
}
