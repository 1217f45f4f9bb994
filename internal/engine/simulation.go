// Package engine hosts the simulation: it owns the land, the population and
// the tick counter, and advances them in bounded, cancellable steps.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/longterm/internal/agents"
	"github.com/talgya/longterm/internal/entropy"
	"github.com/talgya/longterm/internal/world"
)

// MaxEvents bounds the in-memory event log.
const MaxEvents = 1000

// ErrInvalidConfig wraps every configuration precondition failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config fixes everything a reset needs to rebuild the same world.
type Config struct {
	World      world.GenConfig `yaml:"world"`
	Population int             `yaml:"population"`
}

// DefaultConfig returns a 128×128 world with 64 beings.
func DefaultConfig() Config {
	return Config{World: world.DefaultGenConfig(), Population: 64}
}

// Validate rejects configurations a Simulation cannot be built from.
func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Population < 0 {
		return fmt.Errorf("%w: population must not be negative, got %d", ErrInvalidConfig, c.Population)
	}
	return nil
}

// Simulation holds the complete world state. Single-threaded: callers must not
// use it from more than one goroutine at a time.
type Simulation struct {
	Config     Config
	Land       *world.Map
	Agents     []*agents.Agent // Update order; stable across resets
	AgentIndex map[agents.AgentID]*agents.Agent
	Events     []Event // Most recent deaths, capped at MaxEvents
	LastTick   uint64  // Most recent tick processed
	RunID      string  // Identifies this host in saved snapshots

	rng *entropy.Mulberry32
}

// Event is a notable occurrence in the world.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "death"
}

// Status is the population summary reported by the status command.
type Status struct {
	Cycle      uint64  `json:"cycle" csv:"cycle"`
	Beings     int     `json:"beings" csv:"beings"`
	Alive      int     `json:"alive" csv:"alive"`
	AvgEnergy  float64 `json:"avg_energy" csv:"avg_energy"`
	AvgHunger  float64 `json:"avg_hunger" csv:"avg_hunger"`
	AvgFatigue float64 `json:"avg_fatigue" csv:"avg_fatigue"`
}

// String renders the one-line status report.
func (st Status) String() string {
	return fmt.Sprintf("cycle=%d beings=%d alive=%d avgEnergy=%.3f avgHunger=%.3f avgFatigue=%.3f",
		st.Cycle, st.Beings, st.Alive, st.AvgEnergy, st.AvgHunger, st.AvgFatigue)
}

// StepResult describes how far a Step got.
type StepResult struct {
	Ticks     int  // Ticks begun, including a final partial tick
	Cancelled bool // Stopped early by the token
}

// NewSimulation validates cfg and builds a freshly reset simulation.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.World.Noise == "" {
		cfg.World.Noise = world.NoiseValue
	}
	s := &Simulation{
		Config: cfg,
		RunID:  uuid.NewString(),
		rng:    entropy.NewMulberry32(cfg.World.Seed),
	}
	s.Reset()
	return s, nil
}

// Reset regenerates the land and the population from the seed and rewinds the
// tick counter. The result matches a freshly constructed simulation.
func (s *Simulation) Reset() {
	s.Land = world.MustGenerate(s.Config.World)

	s.rng.Reseed(s.Config.World.Seed)
	spawner := agents.NewSpawner(s.rng)
	s.setPopulation(spawner.SpawnPopulation(s.Config.Population, s.Land.Width, s.Land.Height))

	s.LastTick = 0
	s.Events = nil

	slog.Debug("simulation reset",
		"seed", s.Config.World.Seed,
		"land", s.Land.String(),
		"beings", len(s.Agents),
	)
}

// Restore replaces the population and tick counter, e.g. from a saved snapshot.
// The land is left as generated from the seed.
func (s *Simulation) Restore(tick uint64, ag []*agents.Agent) {
	s.setPopulation(ag)
	s.LastTick = tick
	s.Events = nil
}

func (s *Simulation) setPopulation(ag []*agents.Agent) {
	index := make(map[agents.AgentID]*agents.Agent, len(ag))
	for _, a := range ag {
		index[a.ID] = a
	}
	s.Agents = ag
	s.AgentIndex = index
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Step advances up to n ticks. cancel is polled before each tick and before
// each agent; a cancelled partial tick leaves later agents on the previous tick.
func (s *Simulation) Step(n int, cancel CancelToken) StepResult {
	if cancel == nil {
		cancel = Never
	}
	var res StepResult
	for i := 0; i < n; i++ {
		if cancel.Cancelled() {
			res.Cancelled = true
			return res
		}

		s.LastTick++
		res.Ticks++
		ctx := &agents.Context{
			Land:       s.Land,
			Cycle:      s.LastTick,
			Population: s.Agents,
		}

		// Later beings see earlier beings' state from this tick.
		for _, a := range s.Agents {
			if cancel.Cancelled() {
				res.Cancelled = true
				return res
			}
			if agents.Cycle(ctx, a) {
				s.recordDeath(a)
			}
		}
	}
	return res
}

func (s *Simulation) recordDeath(a *agents.Agent) {
	s.Events = append(s.Events, Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf("%s has died at age %d", a.Name, a.Age),
		Category:    "death",
	})
	if len(s.Events) > MaxEvents {
		s.Events = s.Events[len(s.Events)-MaxEvents:]
	}
	slog.Debug("being died",
		"id", a.ID,
		"tick", s.LastTick,
		"age", a.Age,
		"energy", fmt.Sprintf("%.3f", a.Energy),
		"hunger", fmt.Sprintf("%.3f", a.Hunger),
	)
}

// Status summarizes the population. Averages run over every being, living or
// dead, and are zero for an empty population.
func (s *Simulation) Status() Status {
	st := Status{Cycle: s.LastTick, Beings: len(s.Agents)}
	for _, a := range s.Agents {
		if a.Alive {
			st.Alive++
		}
		st.AvgEnergy += a.Energy
		st.AvgHunger += a.Hunger
		st.AvgFatigue += a.Fatigue
	}
	if n := float64(len(s.Agents)); n > 0 {
		st.AvgEnergy /= n
		st.AvgHunger /= n
		st.AvgFatigue /= n
	}
	return st
}

// Agent looks up a being by id.
func (s *Simulation) Agent(id agents.AgentID) (*agents.Agent, bool) {
	a, ok := s.AgentIndex[id]
	return a, ok
}

// Living returns the living beings in update order.
func (s *Simulation) Living() []*agents.Agent {
	var out []*agents.Agent
	for _, a := range s.Agents {
		if a.Alive {
			out = append(out, a)
		}
	}
	return out
}
