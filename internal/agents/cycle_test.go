package agents

import (
	"testing"

	"github.com/talgya/longterm/internal/entropy"
)

func TestCycleSkipsDead(t *testing.T) {
	ctx := &Context{Land: flatLand(4, 4, 0.9, 0.9), Cycle: 1}
	a := newTestAgent(0, 1, 1)
	a.Alive = false
	before := *a

	if Cycle(ctx, a) {
		t.Error("dead agent reported a death")
	}
	if *a != before {
		t.Errorf("dead agent mutated: %+v", *a)
	}
}

func TestCycleAgesAndMoves(t *testing.T) {
	land := flatLand(5, 5, 0.2, 0.2)
	land.Food[0] = 0.5 // (0,0) is the best cell seen from (4,4)
	a := newTestAgent(0, 4, 4)
	ctx := &Context{Land: land, Cycle: 1, Population: []*Agent{a}}

	if Cycle(ctx, a) {
		t.Fatal("healthy agent died")
	}
	if a.Age != 1 {
		t.Errorf("age: got %d, want 1", a.Age)
	}
	if a.X != 0 || a.Y != 0 {
		t.Errorf("position: got (%d,%d), want (0,0)", a.X, a.Y)
	}
	if a.DX != 0 || a.DY != 0 {
		t.Error("pending delta should be cleared after moving")
	}
	if a.LastAction != ActionWander {
		t.Errorf("action: got %v", a.LastAction)
	}
}

func TestCycleStarvation(t *testing.T) {
	tests := []struct {
		name           string
		energy, hunger float64
	}{
		{"energy exhausted", 0.002, 0.1},
		{"hunger maxed", 0.9, 0.999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(0, 1, 1)
			a.Energy, a.Hunger = tt.energy, tt.hunger
			ctx := &Context{Land: flatLand(4, 4, 0, 0), Cycle: 1, Population: []*Agent{a}}

			if !Cycle(ctx, a) {
				t.Fatal("expected death")
			}
			if a.Alive {
				t.Error("agent still alive")
			}
			if a.Age != 1 {
				t.Errorf("age at death: got %d, want 1", a.Age)
			}
			if Cycle(ctx, a) {
				t.Error("agent died twice")
			}
		})
	}
}

func TestCycleKeepsScalarsBounded(t *testing.T) {
	land := flatLand(6, 6, 0.7, 0.7)
	for i := range land.Food {
		land.Food[i] = float64(i%7) / 6
		land.Safety[i] = float64(i%5) / 4
	}
	pop := NewSpawner(entropy.NewMulberry32(9)).SpawnPopulation(12, 6, 6)

	for tick := uint64(1); tick <= 2000; tick++ {
		ctx := &Context{Land: land, Cycle: tick, Population: pop}
		for _, a := range pop {
			Cycle(ctx, a)
		}
	}

	for _, a := range pop {
		for name, v := range map[string]float64{
			"energy": a.Energy, "hunger": a.Hunger, "fatigue": a.Fatigue,
			"sociability": a.Sociability, "sexDrive": a.SexDrive,
			"affectPos": a.AffectPos, "affectNeg": a.AffectNeg,
		} {
			if v < 0 || v > 1 {
				t.Errorf("agent %d %s out of bounds: %v", a.ID, name, v)
			}
		}
		if a.X < 0 || a.X >= 6 || a.Y < 0 || a.Y >= 6 {
			t.Errorf("agent %d off grid: (%d,%d)", a.ID, a.X, a.Y)
		}
	}
}
