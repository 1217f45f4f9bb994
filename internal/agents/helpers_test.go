package agents

import (
	"math"
	"testing"

	"github.com/talgya/longterm/internal/world"
)

// flatLand returns a level map with uniform food and safety.
func flatLand(w, h int, food, safety float64) *world.Map {
	m := world.NewMap(w, h)
	for i := range m.Food {
		m.Food[i] = food
		m.Safety[i] = safety
	}
	return m
}

func newTestAgent(id AgentID, x, y int) *Agent {
	return &Agent{
		ID:        id,
		Name:      "test",
		Alive:     true,
		X:         x,
		Y:         y,
		Energy:    0.9,
		LastFoodX: x,
		LastFoodY: y,
		Tribe:     int(id) % NumTribes,
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %.6f, want %.6f", name, got, want)
	}
}
