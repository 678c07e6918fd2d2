package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults match the documented CLI defaults.
const (
	DefaultIntervalSeconds = 60
	DefaultAllowedMisses   = 3
)

// Config holds the detection parameters for one run. It is immutable
// once validated; the pipeline never mutates it.
type Config struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	AllowedMisses   int `yaml:"allowed_misses"`
}

// Default returns the stock configuration: a 60s heartbeat cadence and
// three tolerated misses.
func Default() Config {
	return Config{
		IntervalSeconds: DefaultIntervalSeconds,
		AllowedMisses:   DefaultAllowedMisses,
	}
}

// Interval returns the expected heartbeat cadence as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Validate rejects configurations that cannot drive detection. This
// runs before any event is touched; an invalid configuration is fatal,
// unlike malformed events which are merely dropped.
func (c Config) Validate() error {
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.IntervalSeconds)
	}
	if c.AllowedMisses < 1 {
		return fmt.Errorf("allowed misses must be at least 1, got %d", c.AllowedMisses)
	}
	return nil
}

// LoadFile reads a YAML configuration file, overlaying it on the
// defaults, and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
