package session

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/David-Pjs/code4fun/internal/diagnostics"
	"github.com/David-Pjs/code4fun/internal/engine/history"
	"github.com/David-Pjs/code4fun/internal/propagate"
)

// Config holds the tunable session parameters. Zero values fall back to the
// defaults.
type Config struct {
	// SettleDelayMS is the quiet period after which a typing burst commits
	// one history entry.
	SettleDelayMS int `yaml:"settleDelayMs"`
	// DiagnosticsDelayMS is the validator debounce window.
	DiagnosticsDelayMS int `yaml:"diagnosticsDelayMs"`
	// PropagateDelayMS is the propagation debounce window.
	PropagateDelayMS int `yaml:"propagateDelayMs"`
	// HistoryCapacity bounds the undo stack.
	HistoryCapacity int `yaml:"historyCapacity"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		SettleDelayMS:      int(diagnostics.DefaultDelay / time.Millisecond),
		DiagnosticsDelayMS: int(diagnostics.DefaultDelay / time.Millisecond),
		PropagateDelayMS:   int(propagate.DefaultDelay / time.Millisecond),
		HistoryCapacity:    history.DefaultCapacity,
		LogLevel:           "info",
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults.
// A missing file returns the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	return cfg.sanitized(), nil
}

// sanitized replaces non-positive values with defaults.
func (c Config) sanitized() Config {
	def := DefaultConfig()
	if c.SettleDelayMS <= 0 {
		c.SettleDelayMS = def.SettleDelayMS
	}
	if c.DiagnosticsDelayMS <= 0 {
		c.DiagnosticsDelayMS = def.DiagnosticsDelayMS
	}
	if c.PropagateDelayMS <= 0 {
		c.PropagateDelayMS = def.PropagateDelayMS
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = def.HistoryCapacity
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}

func (c Config) settleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

func (c Config) diagnosticsDelay() time.Duration {
	return time.Duration(c.DiagnosticsDelayMS) * time.Millisecond
}

func (c Config) propagateDelay() time.Duration {
	return time.Duration(c.PropagateDelayMS) * time.Millisecond
}
