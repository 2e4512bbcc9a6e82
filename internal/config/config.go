package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// FileName is the optional per-user config file, relative to $HOME.
const FileName = ".termflow/config.toml"

// Config holds all termflow configuration.
type Config struct {
	Logging LogConfig    `toml:"logging"`
	Reflow  ReflowConfig `toml:"reflow"`
	IO      IOConfig     `toml:"io"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `toml:"level" envconfig:"TERMFLOW_LOG_LEVEL"`
	Development bool   `toml:"development" envconfig:"TERMFLOW_LOG_DEV"`
}

// ReflowConfig holds redraw configuration.
type ReflowConfig struct {
	// CompactThreshold is the minimum consecutive repeat count of a
	// character before the redraw may elide further repeats to fit a
	// narrower terminal.
	CompactThreshold int `toml:"compact_threshold" envconfig:"TERMFLOW_COMPACT_THRESHOLD"`
}

// IOConfig holds event-loop I/O configuration.
type IOConfig struct {
	// ChunkSize is the PTY read buffer size in bytes.
	ChunkSize int `toml:"chunk_size" envconfig:"TERMFLOW_CHUNK_SIZE"`
}

// Load resolves configuration from defaults, the per-user TOML file and
// TERMFLOW_* environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, FileName)
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or falls back to defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Reflow: ReflowConfig{
			CompactThreshold: 10,
		},
		IO: IOConfig{
			ChunkSize: 4096,
		},
	}
}

func (c *Config) validate() error {
	if c.Reflow.CompactThreshold < 1 {
		return fmt.Errorf("compact threshold must be at least 1, got %d", c.Reflow.CompactThreshold)
	}
	if c.IO.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be at least 1, got %d", c.IO.ChunkSize)
	}
	return nil
}
