package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/longterm/internal/engine"
	"github.com/talgya/longterm/internal/world"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World != world.DefaultGenConfig() {
		t.Errorf("world = %+v, want %+v", cfg.World, world.DefaultGenConfig())
	}
	if cfg.Population != engine.DefaultConfig().Population {
		t.Errorf("population = %d, want %d", cfg.Population, engine.DefaultConfig().Population)
	}
	if cfg.Batch.Run != 0 || cfg.Batch.StatusEvery != 0 {
		t.Errorf("batch = %+v, want zero", cfg.Batch)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "world:\n  seed: 42\npopulation: 10\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 42 || cfg.Population != 10 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.World.Width != 128 || cfg.World.Noise != world.NoiseValue {
		t.Errorf("defaults lost: %+v", cfg.World)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel = %v, %v; want debug", level, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative population", func(c *Config) { c.Population = -1 }},
		{"bad noise", func(c *Config) { c.World.Noise = "perlin" }},
		{"negative run", func(c *Config) { c.Batch.Run = -5 }},
		{"negative interval", func(c *Config) { c.Batch.StatusEvery = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.Seed = 7
	cfg.Storage.Path = "world.db"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
