package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the engine configuration, loaded from YAML.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Gateway  GatewayConfig `yaml:"gateway"`
	Polling  PollingConfig `yaml:"polling"`
}

// GatewayConfig configures the upstream reconciliation API client.
type GatewayConfig struct {
	BaseURL            string        `yaml:"base_url"`
	RequestTimeoutSecs int           `yaml:"request_timeout_secs"`
	Breaker            BreakerConfig `yaml:"breaker"`
}

// BreakerConfig configures the circuit breaker around the upstream calls.
type BreakerConfig struct {
	FailureThreshold uint32 `yaml:"failure_threshold"` // consecutive failures to open
	ResetTimeoutSecs int    `yaml:"reset_timeout_secs"`
}

// PollingConfig configures the refetch schedule and the manual-refresh
// throttle.
type PollingConfig struct {
	IntervalSecs       int     `yaml:"interval_secs"`
	ManualRefreshRPS   float64 `yaml:"manual_refresh_rps"`
	ManualRefreshBurst int     `yaml:"manual_refresh_burst"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (g GatewayConfig) RequestTimeout() time.Duration {
	return time.Duration(g.RequestTimeoutSecs) * time.Second
}

// ResetTimeout returns the breaker open-state timeout as a duration.
func (b BreakerConfig) ResetTimeout() time.Duration {
	return time.Duration(b.ResetTimeoutSecs) * time.Second
}

// Interval returns the poll interval as a duration.
func (p PollingConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSecs) * time.Second
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Gateway: GatewayConfig{
			BaseURL:            "http://localhost:8080",
			RequestTimeoutSecs: 10,
			Breaker: BreakerConfig{
				FailureThreshold: 5,
				ResetTimeoutSecs: 30,
			},
		},
		Polling: PollingConfig{
			IntervalSecs:       30,
			ManualRefreshRPS:   1,
			ManualRefreshBurst: 3,
		},
	}
}

// Load reads the YAML configuration at path, applying defaults for any field
// left unset. An empty path yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Re-apply defaults for zeroed fields.
	def := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = def.Gateway.BaseURL
	}
	if cfg.Gateway.RequestTimeoutSecs <= 0 {
		cfg.Gateway.RequestTimeoutSecs = def.Gateway.RequestTimeoutSecs
	}
	if cfg.Gateway.Breaker.FailureThreshold == 0 {
		cfg.Gateway.Breaker.FailureThreshold = def.Gateway.Breaker.FailureThreshold
	}
	if cfg.Gateway.Breaker.ResetTimeoutSecs <= 0 {
		cfg.Gateway.Breaker.ResetTimeoutSecs = def.Gateway.Breaker.ResetTimeoutSecs
	}
	if cfg.Polling.IntervalSecs <= 0 {
		cfg.Polling.IntervalSecs = def.Polling.IntervalSecs
	}
	if cfg.Polling.ManualRefreshRPS <= 0 {
		cfg.Polling.ManualRefreshRPS = def.Polling.ManualRefreshRPS
	}
	if cfg.Polling.ManualRefreshBurst <= 0 {
		cfg.Polling.ManualRefreshBurst = def.Polling.ManualRefreshBurst
	}
	return cfg, nil
}
