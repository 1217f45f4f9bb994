// Package agents provides the being data model and the per-tick update pipeline.
package agents

import (
	"fmt"

	"github.com/talgya/longterm/internal/world"
)

// AgentID is a unique identifier for a being. Stable for its lifetime.
type AgentID int

// NumTribes is the number of coarse groups beings are split into.
const NumTribes = 4

// Agent is one being. Every bounded scalar is kept in [0,1].
type Agent struct {
	ID    AgentID `json:"id"`
	Name  string  `json:"name"`
	Alive bool    `json:"alive"`

	// Location on the torus and the pending one-cell move.
	X  int `json:"x"`
	Y  int `json:"y"`
	DX int `json:"dx"`
	DY int `json:"dy"`

	// Body
	Energy  float64 `json:"energy"`
	Hunger  float64 `json:"hunger"`
	Fatigue float64 `json:"fatigue"`

	// Drives and affect
	Sociability float64 `json:"sociability"`
	SexDrive    float64 `json:"sex_drive"`
	AffectPos   float64 `json:"affect_pos"`
	AffectNeg   float64 `json:"affect_neg"`

	// Episodic memory
	LastFoodX int `json:"last_food_x"`
	LastFoodY int `json:"last_food_y"`

	Tribe int    `json:"tribe"`
	Age   uint64 `json:"age"` // Ticks lived

	// Urgencies published by the drives stage for the brain this tick.
	Drive      DriveSnapshot `json:"drive"`
	LastAction ActionKind    `json:"last_action"`
}

// Context is the read-only view of the world a stage may consult.
// Population is scanned in order; entries may already hold this tick's state.
type Context struct {
	Land       *world.Map
	Cycle      uint64
	Population []*Agent
}

// Stress is the averaged hunger/fatigue load used by the immune and social stages.
func (a *Agent) Stress() float64 {
	return (a.Hunger + a.Fatigue) * 0.5
}

// Describe returns a one-line summary for listings.
func (a *Agent) Describe() string {
	state := "alive"
	if !a.Alive {
		state = "dead"
	}
	return fmt.Sprintf("%s id=%d tribe=%d pos=(%d,%d) age=%d energy=%.3f hunger=%.3f fatigue=%.3f %s",
		a.Name, a.ID, a.Tribe, a.X, a.Y, a.Age, a.Energy, a.Hunger, a.Fatigue, state)
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

// countNeighbors counts living beings other than a within Chebyshev radius r on the torus.
func countNeighbors(ctx *Context, a *Agent, r int) int {
	c := 0
	for _, o := range ctx.Population {
		if o == a || !o.Alive {
			continue
		}
		if withinRadius(ctx, a, o, r) {
			c++
		}
	}
	return c
}

func withinRadius(ctx *Context, a, o *Agent, r int) bool {
	dx := world.TorusDistance(ctx.Land.Width, a.X, o.X)
	dy := world.TorusDistance(ctx.Land.Height, a.Y, o.Y)
	return dx <= r && dy <= r
}
