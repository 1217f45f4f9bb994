package command

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/talgya/longterm/internal/agents"
	"github.com/talgya/longterm/internal/persistence"
	"github.com/talgya/longterm/internal/telemetry"
)

const defaultListLimit = 10

func (s *Session) status(_ []string) error {
	s.println(s.Sim.Status())
	return nil
}

func (s *Session) step(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: step count %q is not an integer", ErrBadArgument, args[0])
		}
		n = v
	}

	s.Stop.Clear()
	res := s.Sim.Step(n, s.Stop)
	if res.Cancelled {
		s.println("Interrupted.")
	}
	s.printWatched()

	st := s.Sim.Status()
	if err := s.CSV.WriteStatus(st); err != nil {
		slog.Warn("status csv write failed", "error", err)
	}
	s.println(st)
	return nil
}

func (s *Session) printWatched() {
	switch s.Watch {
	case WatchAll:
		for _, a := range s.Sim.Living() {
			s.println(a.Describe())
		}
	case WatchOne:
		if a, ok := s.Sim.Agent(s.WatchID); ok {
			s.println(a.Describe())
		}
	}
}

func (s *Session) reset(_ []string) error {
	s.Sim.Reset()
	s.println("ok")
	return nil
}

func (s *Session) inspect(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: inspect <id>", ErrBadArgument)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, ok := s.Sim.Agent(id)
	if !ok {
		s.println("not found")
		return nil
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode being %d: %w", id, err)
	}
	s.println(string(data))
	return nil
}

func parseID(arg string) (agents.AgentID, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not an integer", ErrBadArgument, arg)
	}
	return agents.AgentID(v), nil
}

func parseLimit(args []string) (int, error) {
	if len(args) == 0 {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: count %q must be a positive integer", ErrBadArgument, args[0])
	}
	return n, nil
}

func (s *Session) list(_ []string) error {
	living := s.Sim.Living()
	if len(living) == 0 {
		s.println("no living beings")
		return nil
	}
	for _, a := range living {
		s.println(a.Describe())
	}
	return nil
}

func (s *Session) top(args []string) error {
	n, err := parseLimit(args)
	if err != nil {
		return err
	}
	living := s.Sim.Living()
	sort.SliceStable(living, func(i, j int) bool {
		return living[i].Energy > living[j].Energy
	})
	if len(living) > n {
		living = living[:n]
	}
	for i, a := range living {
		s.printf("%2d. %s\n", i+1, a.Describe())
	}
	return nil
}

func (s *Session) watch(args []string) error {
	if len(args) == 0 {
		s.println(s.watchDescription())
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "off":
		s.Watch = WatchOff
	case "all":
		s.Watch = WatchAll
	default:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, ok := s.Sim.Agent(id); !ok {
			s.println("not found")
			return nil
		}
		s.Watch, s.WatchID = WatchOne, id
	}
	s.println(s.watchDescription())
	return nil
}

func (s *Session) watchDescription() string {
	switch s.Watch {
	case WatchAll:
		return "watching all beings"
	case WatchOne:
		return fmt.Sprintf("watching being %d", s.WatchID)
	}
	return "watch off"
}

func (s *Session) logging(args []string) error {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on":
			s.Level.Set(slog.LevelDebug)
		case "off":
			s.Level.Set(slog.LevelInfo)
		default:
			return fmt.Errorf("%w: logging takes on or off, got %q", ErrBadArgument, args[0])
		}
	}
	if s.Level.Level() <= slog.LevelDebug {
		s.println("logging on")
	} else {
		s.println("logging off")
	}
	return nil
}

func (s *Session) stats(_ []string) error {
	s.println(telemetry.Summarize(s.Sim.Agents))
	return nil
}

func (s *Session) events(args []string) error {
	n, err := parseLimit(args)
	if err != nil {
		return err
	}
	evs := s.Sim.Events
	if len(evs) == 0 {
		s.println("no events")
		return nil
	}
	if len(evs) > n {
		evs = evs[len(evs)-n:]
	}
	for _, e := range evs {
		s.printf("[%d] %s: %s\n", e.Tick, e.Category, e.Description)
	}
	return nil
}

func (s *Session) world(_ []string) error {
	land := s.Sim.Land
	sum := land.Summary()
	cfg := s.Sim.Config.World
	s.printf("%s seed=%d noise=%s\n", land, cfg.Seed, cfg.Noise)
	s.printf("  elevation min=%.3f mean=%.3f max=%.3f\n", sum.Elevation.Min, sum.Elevation.Mean, sum.Elevation.Max)
	s.printf("  food      min=%.3f mean=%.3f max=%.3f\n", sum.Food.Min, sum.Food.Mean, sum.Food.Max)
	s.printf("  safety    min=%.3f mean=%.3f max=%.3f\n", sum.Safety.Min, sum.Safety.Mean, sum.Safety.Max)
	return nil
}

func (s *Session) storagePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if s.DBPath == "" {
		return "", fmt.Errorf("%w: no snapshot path given and none configured", ErrBadArgument)
	}
	return s.DBPath, nil
}

func (s *Session) save(args []string) error {
	path, err := s.storagePath(args)
	if err != nil {
		return err
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveWorldState(s.Sim); err != nil {
		return err
	}
	s.printf("saved cycle %d to %s\n", s.Sim.CurrentTick(), path)
	return nil
}

func (s *Session) load(args []string) error {
	path, err := s.storagePath(args)
	if err != nil {
		return err
	}
	db, err := persistence.OpenExisting(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.LoadWorldState(s.Sim); err != nil {
		return err
	}
	s.printf("loaded cycle %d from %s\n", s.Sim.CurrentTick(), path)
	return nil
}

// simulation reports the run parameters and console modes.
func (s *Session) simulation(_ []string) error {
	st := s.Sim.Status()
	cfg := s.Sim.Config
	s.printf("cycle=%d alive=%d dead=%d run=%s\n", st.Cycle, st.Alive, st.Beings-st.Alive, s.Sim.RunID)
	s.printf("world=%dx%d seed=%d noise=%s population=%d\n",
		cfg.World.Width, cfg.World.Height, cfg.World.Seed, cfg.World.Noise, cfg.Population)
	logging := "off"
	if s.Level.Level() <= slog.LevelDebug {
		logging = "on"
	}
	s.printf("logging=%s %s\n", logging, s.watchDescription())
	return nil
}

func (s *Session) next(_ []string) error {
	return s.selectLiving(1)
}

func (s *Session) prev(_ []string) error {
	return s.selectLiving(-1)
}

// selectLiving moves WatchID to the next living being in update order,
// wrapping at either end.
func (s *Session) selectLiving(dir int) error {
	population := s.Sim.Agents
	n := len(population)
	idx := 0
	for i, a := range population {
		if a.ID == s.WatchID {
			idx = i
			break
		}
	}
	for range n {
		idx = ((idx+dir)%n + n) % n
		if a := population[idx]; a.Alive {
			s.WatchID = a.ID
			s.println(a.Name)
			return nil
		}
	}
	s.println("(none)")
	return nil
}

// stop requests that the current step halt at its next poll.
func (s *Session) stop(_ []string) error {
	s.Stop.Request()
	s.println("Stopped.")
	return nil
}

func (s *Session) exit(_ []string) error {
	s.quit = true
	return nil
}
