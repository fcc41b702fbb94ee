// Package config loads application configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Engine struct {
		InitialCapital  float64 `yaml:"initial_capital"`
		PositionSizePct float64 `yaml:"position_size_pct"`
		FeeRate         float64 `yaml:"fee_rate"`
	} `yaml:"engine"`
	Storage struct {
		Backend       string `yaml:"backend"` // "memory" or "database"
		PostgresDSN   string `yaml:"postgres_dsn"`
		ClickHouseDSN string `yaml:"clickhouse_dsn"`
	} `yaml:"storage"`
	Pipeline struct {
		Concurrency int  `yaml:"concurrency"`
		Verbose     bool `yaml:"verbose"`
	} `yaml:"pipeline"`
	Strategies []StrategyConfig `yaml:"strategies"`
}

// StrategyConfig is the YAML representation of one strategy.
type StrategyConfig struct {
	Type       string   `yaml:"type"`
	FastPeriod *int     `yaml:"fast_period,omitempty"`
	SlowPeriod *int     `yaml:"slow_period,omitempty"`
	RSIPeriod  *int     `yaml:"rsi_period,omitempty"`
	BuyBelow   *float64 `yaml:"buy_below,omitempty"`
	SellAbove  *float64 `yaml:"sell_above,omitempty"`
}

// ToDomain converts a YAML strategy entry to the domain config.
func (s StrategyConfig) ToDomain() domain.StrategyConfig {
	return domain.StrategyConfig{
		StrategyType: s.Type,
		FastPeriod:   s.FastPeriod,
		SlowPeriod:   s.SlowPeriod,
		RSIPeriod:    s.RSIPeriod,
		BuyBelow:     s.BuyBelow,
		SellAbove:    s.SellAbove,
	}
}

// DomainStrategies converts all configured strategies.
func (c *Config) DomainStrategies() []domain.StrategyConfig {
	out := make([]domain.StrategyConfig, len(c.Strategies))
	for i, s := range c.Strategies {
		out[i] = s.ToDomain()
	}
	return out
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Storage.ClickHouseDSN = v
	}
	if v := os.Getenv("BACKTEST_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.Concurrency = n
		}
	}

	// Defaults
	if cfg.Engine.InitialCapital == 0 {
		cfg.Engine.InitialCapital = 10000
	}
	if cfg.Engine.PositionSizePct == 0 {
		cfg.Engine.PositionSizePct = 1.0
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 4
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Engine.InitialCapital <= 0 {
		return fmt.Errorf("engine.initial_capital must be positive")
	}
	if c.Engine.PositionSizePct <= 0 || c.Engine.PositionSizePct > 1 {
		return fmt.Errorf("engine.position_size_pct must be in (0, 1]")
	}
	if c.Engine.FeeRate < 0 {
		return fmt.Errorf("engine.fee_rate must not be negative")
	}
	switch c.Storage.Backend {
	case "memory":
	case "database":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for database backend")
		}
		if c.Storage.ClickHouseDSN == "" {
			return fmt.Errorf("storage.clickhouse_dsn is required for database backend")
		}
	default:
		return fmt.Errorf("storage.backend must be memory or database")
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("pipeline.concurrency must be at least 1")
	}
	return nil
}
