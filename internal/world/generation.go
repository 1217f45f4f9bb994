// Package world generates and samples the toroidal land the beings live on.
// Elevation comes from layered noise; food and safety are derived from it.
package world

import (
	"errors"
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseKind selects the elevation noise source.
type NoiseKind string

const (
	NoiseValue   NoiseKind = "value"   // Hashed lattice value noise (default)
	NoiseSimplex NoiseKind = "simplex" // OpenSimplex, normalized to [0,1]
)

// Octave schedule shared by both noise sources.
const (
	Octaves     = 5
	BaseFreq    = 1.0
	Persistence = 0.5
)

// Food peaks at this elevation and falls off linearly either side.
const FoodPeakElevation = 0.55

// ErrInvalidDimensions is returned for a non-positive width or height.
var ErrInvalidDimensions = errors.New("world dimensions must be positive")

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Seed   int64     `yaml:"seed"`
	Noise  NoiseKind `yaml:"noise"`
}

// DefaultGenConfig returns the standard 128×128 world.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:  128,
		Height: 128,
		Seed:   1,
		Noise:  NoiseValue,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:  8,
		Height: 8,
		Seed:   1,
		Noise:  NoiseValue,
	}
}

// Validate checks the preconditions of Generate.
func (c GenConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	switch c.Noise {
	case "", NoiseValue, NoiseSimplex:
	default:
		return fmt.Errorf("unknown noise kind %q", c.Noise)
	}
	return nil
}

// Generate creates the land for cfg. Identical configs produce bit-identical fields.
func Generate(cfg GenConfig) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var noise noise2D
	switch cfg.Noise {
	case NoiseSimplex:
		noise = opensimplex.NewNormalized(cfg.Seed)
	default:
		noise = newValueNoise(cfg.Seed)
	}

	w, h := cfg.Width, cfg.Height
	m := NewMap(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx := float64(x) / float64(w)
			ny := float64(y) / float64(h)
			m.Elevation[y*w+x] = octaveNoise(noise, nx, ny, Octaves, BaseFreq, Persistence)
		}
	}

	// Derive food and safety once elevation is complete; steepness needs neighbors.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			e := m.Elevation[i]
			m.Food[i] = clamp01(1 - math.Abs(e-FoodPeakElevation)*2)
			m.Safety[i] = clamp01(1 - m.steepness(x, y)*3)
		}
	}

	return m, nil
}

// MustGenerate is Generate for configs already known to be valid.
func MustGenerate(cfg GenConfig) *Map {
	m, err := Generate(cfg)
	if err != nil {
		panic(err)
	}
	return m
}
