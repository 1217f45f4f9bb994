package world

import (
	"fmt"
	"math"
)

// Map holds the generated fields in row-major order. Immutable after Generate.
type Map struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Elevation []float64 `json:"-"` // Raw fractal noise
	Food      []float64 `json:"-"` // 0.0–1.0, peaks at mid elevation
	Safety    []float64 `json:"-"` // 0.0–1.0, flatter is safer
}

// Sample is everything a being can sense about one tile.
type Sample struct {
	Elevation float64 `json:"elevation"`
	Food      float64 `json:"food"`
	Safety    float64 `json:"safety"`
	Steepness float64 `json:"steepness"`
}

// NewMap allocates zeroed fields for a w×h grid.
func NewMap(w, h int) *Map {
	n := w * h
	return &Map{
		Width:     w,
		Height:    h,
		Elevation: make([]float64, n),
		Food:      make([]float64, n),
		Safety:    make([]float64, n),
	}
}

// Wrap folds any coordinate pair onto the torus.
func (m *Map) Wrap(x, y int) (int, int) {
	return wrap(x, m.Width), wrap(y, m.Height)
}

// Sample reads the tile at (x, y), wrapping both axes. Steepness is recomputed
// from the four neighbors on every call.
func (m *Map) Sample(x, y int) Sample {
	ix, iy := m.Wrap(x, y)
	i := iy*m.Width + ix
	return Sample{
		Elevation: m.Elevation[i],
		Food:      m.Food[i],
		Safety:    m.Safety[i],
		Steepness: m.steepness(ix, iy),
	}
}

func (m *Map) elevationAt(x, y int) float64 {
	ix, iy := m.Wrap(x, y)
	return m.Elevation[iy*m.Width+ix]
}

// steepness is |mean of the 4-neighborhood - elevation|.
func (m *Map) steepness(x, y int) float64 {
	neigh := m.elevationAt(x+1, y) + m.elevationAt(x-1, y) +
		m.elevationAt(x, y+1) + m.elevationAt(x, y-1)
	return math.Abs(neigh*0.25 - m.elevationAt(x, y))
}

// TileCount returns the number of tiles in the map.
func (m *Map) TileCount() int {
	return m.Width * m.Height
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, tiles=%d)", m.Width, m.Height, m.TileCount())
}

// FieldStats summarizes one scalar field.
type FieldStats struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

// Summary holds per-field statistics for reporting.
type Summary struct {
	Elevation FieldStats `json:"elevation"`
	Food      FieldStats `json:"food"`
	Safety    FieldStats `json:"safety"`
}

// Summary computes min/mean/max of each field.
func (m *Map) Summary() Summary {
	return Summary{
		Elevation: fieldStats(m.Elevation),
		Food:      fieldStats(m.Food),
		Safety:    fieldStats(m.Safety),
	}
}

func fieldStats(vals []float64) FieldStats {
	if len(vals) == 0 {
		return FieldStats{}
	}
	fs := FieldStats{Min: vals[0], Max: vals[0]}
	sum := 0.0
	for _, v := range vals {
		if v < fs.Min {
			fs.Min = v
		}
		if v > fs.Max {
			fs.Max = v
		}
		sum += v
	}
	fs.Mean = sum / float64(len(vals))
	return fs
}

func wrap(v, size int) int {
	return ((v % size) + size) % size
}

// TorusDistance is the shorter of the direct and wrap-around distances along one axis.
func TorusDistance(size, a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if size-d < d {
		return size - d
	}
	return d
}
