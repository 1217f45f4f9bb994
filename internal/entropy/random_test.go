package entropy

import "testing"

func TestMulberry32Deterministic(t *testing.T) {
	a := NewMulberry32(1)
	b := NewMulberry32(1)
	for i := 0; i < 1000; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestMulberry32ReseedRestartsStream(t *testing.T) {
	m := NewMulberry32(7)
	first := []float64{m.Float64(), m.Float64(), m.Float64()}

	for i := 0; i < 50; i++ {
		m.Float64()
	}
	m.Reseed(7)

	for i, want := range first {
		if got := m.Float64(); got != want {
			t.Errorf("draw %d after reseed: got %v, want %v", i, got, want)
		}
	}
}

func TestMulberry32FloatRange(t *testing.T) {
	m := NewMulberry32(12345)
	for i := 0; i < 10000; i++ {
		v := m.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
	}
}

func TestMulberry32Intn(t *testing.T) {
	m := NewMulberry32(3)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := m.Intn(8)
		if v < 0 || v >= 8 {
			t.Fatalf("Intn(8) out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected all 8 buckets hit, got %d", len(seen))
	}
	if m.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestMulberry32SeedsDiffer(t *testing.T) {
	a := NewMulberry32(1)
	b := NewMulberry32(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	if same > 5 {
		t.Errorf("seeds 1 and 2 produced %d identical draws out of 100", same)
	}
}
