package world

import "math"

// noise2D is a continuous 2D scalar field. opensimplex.Noise satisfies it.
type noise2D interface {
	Eval2(x, y float64) float64
}

// valueNoise is lattice value noise: corners are hashed to [0,1) and blended
// with smoothstep bilinear interpolation.
type valueNoise struct {
	seed uint32
}

func newValueNoise(seed int64) valueNoise {
	return valueNoise{seed: uint32(seed)}
}

// Eval2 returns the interpolated lattice value at (x, y), in [0, 1).
func (n valueNoise) Eval2(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int32(fx), int32(fy)
	xf, yf := x-fx, y-fy

	v00 := n.hash(x0, y0)
	v10 := n.hash(x0+1, y0)
	v01 := n.hash(x0, y0+1)
	v11 := n.hash(x0+1, y0+1)

	u := fade(xf)
	v := fade(yf)
	return lerp(lerp(v00, v10, u), lerp(v01, v11, u), v)
}

// hash maps a lattice corner to [0, 1). All arithmetic wraps at 32 bits.
func (n valueNoise) hash(ix, iy int32) float64 {
	h := uint32(ix)*374761393 + uint32(iy)*668265263 + n.seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h%1000000) / 1000000.0
}

func fade(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise noise2D, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxVal == 0 {
		return 0
	}
	return total / maxVal
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
