// Package config provides configuration loading for the simulation binary.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/longterm/internal/engine"
	"github.com/talgya/longterm/internal/world"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration.
type Config struct {
	World      world.GenConfig `yaml:"world"`
	Population int             `yaml:"population"`
	Batch      BatchConfig     `yaml:"batch"`
	Storage    StorageConfig   `yaml:"storage"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Log        LogConfig       `yaml:"log"`
}

// BatchConfig holds headless run parameters.
type BatchConfig struct {
	Run         int `yaml:"run"`          // Ticks to run; 0 = interactive
	StatusEvery int `yaml:"status_every"` // Report interval; 0 = only at the end
}

// StorageConfig holds snapshot settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// TelemetryConfig holds CSV output settings.
type TelemetryConfig struct {
	CSVDir string `yaml:"csv_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file, using embedded defaults for any
// missing values. If path is empty, returns defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Engine returns the part of the configuration the simulation host needs.
func (c *Config) Engine() engine.Config {
	return engine.Config{World: c.World, Population: c.Population}
}

// Validate checks the whole configuration. Every failure wraps
// engine.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	if c.Batch.Run < 0 {
		return fmt.Errorf("%w: batch.run must not be negative, got %d", engine.ErrInvalidConfig, c.Batch.Run)
	}
	if c.Batch.StatusEvery < 0 {
		return fmt.Errorf("%w: batch.status_every must not be negative, got %d", engine.ErrInvalidConfig, c.Batch.StatusEvery)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: %w", engine.ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel parses Log.Level. Empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
