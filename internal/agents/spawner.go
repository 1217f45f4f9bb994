// Agent spawning: creates the initial population from the host's seeded stream.
package agents

import (
	"fmt"

	"github.com/talgya/longterm/internal/entropy"
)

// Spawner creates beings, drawing every initial value from one shared stream.
type Spawner struct {
	rng    *entropy.Mulberry32
	nextID AgentID
}

// NewSpawner creates a spawner that draws from rng. IDs start at 0.
func NewSpawner(rng *entropy.Mulberry32) *Spawner {
	return &Spawner{rng: rng}
}

// SetNextID sets the next agent ID to be issued.
func (s *Spawner) SetNextID(id AgentID) {
	s.nextID = id
}

// SpawnPopulation creates count beings placed uniformly on a w×h torus.
func (s *Spawner) SpawnPopulation(count, w, h int) []*Agent {
	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		agents = append(agents, s.spawnOne(w, h))
	}
	return agents
}

// spawnOne draws in a fixed order; changing it changes every seeded population.
func (s *Spawner) spawnOne(w, h int) *Agent {
	id := s.nextID
	s.nextID++

	x := s.rng.Intn(w)
	y := s.rng.Intn(h)

	return &Agent{
		ID:    id,
		Name:  fmt.Sprintf("being_%d", id),
		Alive: true,
		X:     x,
		Y:     y,

		Energy:  0.8 + s.rng.Float64()*0.2,
		Hunger:  s.rng.Float64() * 0.3,
		Fatigue: s.rng.Float64() * 0.2,

		Sociability: s.rng.Float64() * 0.5,
		SexDrive:    s.rng.Float64() * 0.2,

		LastFoodX: x,
		LastFoodY: y,

		Tribe: int(id) % NumTribes,
	}
}
