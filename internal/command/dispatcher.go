package command

import (
	"strings"
)

// Command is one entry of the dispatch table.
type Command struct {
	Name  string
	Usage string
	Desc  string
	Run   func(args []string) error
	Alias string // Name of the command this entry stands in for
}

// Dispatcher routes console lines to commands.
type Dispatcher struct {
	session  *Session
	commands map[string]*Command
	order    []*Command
}

// NewDispatcher builds the command table over s.
func NewDispatcher(s *Session) *Dispatcher {
	d := &Dispatcher{session: s, commands: make(map[string]*Command)}

	d.register("help", "help [command]", "Show help", d.help)
	d.register("status", "status", "Show current simulation summary", s.status)
	d.register("step", "step [n]", "Advance simulation by n cycles (default 1)", s.step)
	d.register("run", "run <n>", "Alias for step n", s.step)
	d.register("reset", "reset", "Reset simulation (new population, cycle=0)", s.reset)
	d.register("inspect", "inspect <id>", "Print a single being state", s.inspect)
	d.register("list", "list", "List living beings", s.list)
	d.register("top", "top [n]", "Show the n most energetic beings (default 10)", s.top)
	d.register("watch", "watch [off|all|<id>]", "Print beings after every step", s.watch)
	d.register("logging", "logging [on|off]", "Toggle debug logging of deaths", s.logging)
	d.register("stats", "stats", "Population statistics and tribe census", s.stats)
	d.register("events", "events [n]", "Show the n most recent deaths (default 10)", s.events)
	d.register("world", "world", "Summarize the land fields", s.world)
	d.register("save", "save [path]", "Save a snapshot to a SQLite file", s.save)
	d.register("load", "load [path]", "Load a snapshot saved from this world", s.load)
	d.register("simulation", "simulation", "Show simulation parameters", s.simulation)
	d.register("next", "next", "Select the next living being", s.next)
	d.register("prev", "prev", "Select the previous living being", s.prev)
	d.register("stop", "stop", "Stop the simulation during step or run", s.stop)
	d.register("quit", "quit", "Exit", s.exit)
	d.register("exit", "exit", "Exit", s.exit)

	d.alias("ls", "list")
	d.alias("dir", "list")
	d.alias("monitor", "watch")
	d.alias("log", "logging")
	d.alias("sim", "simulation")
	d.alias("close", "quit")

	return d
}

func (d *Dispatcher) register(name, usage, desc string, run func([]string) error) {
	c := &Command{Name: name, Usage: usage, Desc: desc, Run: run}
	d.commands[name] = c
	d.order = append(d.order, c)
}

// alias registers name as another spelling of target. Aliases are left out
// of the help listing.
func (d *Dispatcher) alias(name, target string) {
	t := d.commands[target]
	d.commands[name] = &Command{Name: name, Usage: t.Usage, Desc: t.Desc, Run: t.Run, Alias: target}
}

// Session returns the session commands run against.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Lookup returns the command registered under name.
func (d *Dispatcher) Lookup(name string) (*Command, bool) {
	c, ok := d.commands[strings.ToLower(name)]
	return c, ok
}

// Execute runs one console line. Blank lines do nothing. On error the
// simulation is left as it was.
func (d *Dispatcher) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	c, ok := d.Lookup(fields[0])
	if !ok {
		return &UnknownCommandError{Verb: strings.ToLower(fields[0])}
	}
	return c.Run(fields[1:])
}

func (d *Dispatcher) help(args []string) error {
	s := d.session
	if len(args) > 0 {
		if c, ok := d.Lookup(args[0]); ok {
			if c.Alias != "" {
				s.printf("%s: alias for %s\n", c.Name, c.Alias)
			}
			s.printf("%s: %s\nusage: %s\n", c.Name, c.Desc, c.Usage)
			return nil
		}
	}
	s.println("Commands:")
	for _, c := range d.order {
		s.printf("  %-10s %s\n", c.Name, c.Desc)
	}
	s.println("Type 'help <command>' for details.")
	return nil
}
