package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/talgya/longterm/internal/agents"
)

// FieldStats describes one body scalar across the living population.
type FieldStats struct {
	Mean   float64
	StdDev float64
	Median float64
}

// Summary is the population snapshot reported by the stats command.
type Summary struct {
	Living    int
	Dead      int
	Energy    FieldStats
	Hunger    FieldStats
	Fatigue   FieldStats
	Tribes    [agents.NumTribes]int // Living beings per tribe
	OldestAge uint64
}

// Summarize computes statistics over the living beings in population.
// Fields are zero when nobody is alive.
func Summarize(population []*agents.Agent) Summary {
	var s Summary
	var energy, hunger, fatigue []float64
	for _, a := range population {
		if !a.Alive {
			s.Dead++
			continue
		}
		s.Living++
		energy = append(energy, a.Energy)
		hunger = append(hunger, a.Hunger)
		fatigue = append(fatigue, a.Fatigue)
		if a.Tribe >= 0 && a.Tribe < agents.NumTribes {
			s.Tribes[a.Tribe]++
		}
		if a.Age > s.OldestAge {
			s.OldestAge = a.Age
		}
	}
	s.Energy = fieldStats(energy)
	s.Hunger = fieldStats(hunger)
	s.Fatigue = fieldStats(fatigue)
	return s
}

func fieldStats(x []float64) FieldStats {
	if len(x) == 0 {
		return FieldStats{}
	}
	var fs FieldStats
	if len(x) == 1 {
		fs.Mean = x[0]
	} else {
		fs.Mean, fs.StdDev = stat.MeanStdDev(x, nil)
	}
	sort.Float64s(x)
	fs.Median = stat.Quantile(0.5, stat.Empirical, x, nil)
	return fs
}

func (fs FieldStats) String() string {
	return fmt.Sprintf("mean=%.3f sd=%.3f median=%.3f", fs.Mean, fs.StdDev, fs.Median)
}

// String renders the summary as a few aligned lines.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "living=%d dead=%d oldest=%d\n", s.Living, s.Dead, s.OldestAge)
	fmt.Fprintf(&b, "  energy   %s\n", s.Energy)
	fmt.Fprintf(&b, "  hunger   %s\n", s.Hunger)
	fmt.Fprintf(&b, "  fatigue  %s\n", s.Fatigue)
	b.WriteString("  tribes  ")
	for i, n := range s.Tribes {
		fmt.Fprintf(&b, " %d:%d", i, n)
	}
	return b.String()
}
