package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/longterm/internal/agents"
	"github.com/talgya/longterm/internal/config"
	"github.com/talgya/longterm/internal/engine"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	if err := om.WriteStatus(engine.Status{}); err != nil {
		t.Errorf("WriteStatus on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir on nil = %q", om.Dir())
	}
}

func TestStatusCSVHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	for i := 1; i <= 3; i++ {
		st := engine.Status{Cycle: uint64(i * 10), Beings: 4, Alive: 4 - i, AvgEnergy: 0.5}
		if err := om.WriteStatus(st); err != nil {
			t.Fatalf("WriteStatus: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "status.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "cycle,beings,alive") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "cycle") != 1 {
		t.Errorf("header written more than once:\n%s", data)
	}
	if !strings.HasPrefix(lines[3], "30,4,1,") {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestWriteConfig(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(om.Dir(), "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	pop := []*agents.Agent{
		{Alive: true, Energy: 0.2, Hunger: 0.1, Fatigue: 0.5, Tribe: 0, Age: 10},
		{Alive: true, Energy: 0.4, Hunger: 0.3, Fatigue: 0.5, Tribe: 1, Age: 30},
		{Alive: true, Energy: 0.6, Hunger: 0.5, Fatigue: 0.5, Tribe: 1, Age: 20},
		{Alive: false, Energy: 0, Hunger: 1, Tribe: 2, Age: 99},
	}
	s := Summarize(pop)

	if s.Living != 3 || s.Dead != 1 {
		t.Errorf("living/dead = %d/%d, want 3/1", s.Living, s.Dead)
	}
	if math.Abs(s.Energy.Mean-0.4) > 1e-12 {
		t.Errorf("energy mean = %v, want 0.4", s.Energy.Mean)
	}
	if math.Abs(s.Energy.StdDev-0.2) > 1e-12 {
		t.Errorf("energy sd = %v, want 0.2", s.Energy.StdDev)
	}
	if s.Energy.Median != 0.4 {
		t.Errorf("energy median = %v, want 0.4", s.Energy.Median)
	}
	if s.Fatigue.StdDev != 0 {
		t.Errorf("fatigue sd = %v, want 0", s.Fatigue.StdDev)
	}
	if s.Tribes != [agents.NumTribes]int{1, 2, 0, 0} {
		t.Errorf("tribes = %v", s.Tribes)
	}
	if s.OldestAge != 30 {
		t.Errorf("oldest = %d, want 30 (dead excluded)", s.OldestAge)
	}
	if !strings.Contains(s.String(), "living=3 dead=1") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestSummarizeSmallPopulations(t *testing.T) {
	if s := Summarize(nil); s.Living != 0 || s.Energy != (FieldStats{}) {
		t.Errorf("empty summary = %+v", s)
	}
	s := Summarize([]*agents.Agent{{Alive: true, Energy: 0.7}})
	if s.Energy.Mean != 0.7 || s.Energy.StdDev != 0 || s.Energy.Median != 0.7 {
		t.Errorf("single summary = %+v", s.Energy)
	}
}
