// Package entropy provides the seeded pseudo-random stream used to populate the world.
// The generator is a fixed-formula mulberry32 so a seed reproduces the same
// population on every platform; it never delegates to math/rand.
package entropy

// Mulberry32 is a 32-bit state generator. Not safe for concurrent use.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator from the low 32 bits of seed.
func NewMulberry32(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Reseed restarts the stream as if freshly constructed with seed.
func (m *Mulberry32) Reseed(seed int64) {
	m.state = uint32(seed)
}

// Uint32 advances the stream and returns the next 32-bit output.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). Returns 0 when n <= 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(m.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
