// Package command interprets console lines against a running simulation.
// All mode flags live on a Session; handlers share nothing else.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/talgya/longterm/internal/agents"
	"github.com/talgya/longterm/internal/engine"
	"github.com/talgya/longterm/internal/telemetry"
)

// ErrBadArgument wraps every malformed command argument.
var ErrBadArgument = errors.New("bad argument")

// UnknownCommandError names a verb the dispatcher does not know.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s', type 'help'", e.Verb)
}

// WatchMode selects what is printed after every step.
type WatchMode int

const (
	WatchOff WatchMode = iota
	WatchAll           // Every living being
	WatchOne           // Session.WatchID only
)

// Session is the state one console shares across commands.
type Session struct {
	Sim    *engine.Simulation
	Out    io.Writer
	Stop   *engine.StopFlag         // Requested by SIGINT, cleared when a step starts
	Level  *slog.LevelVar           // Default logger level; "logging on" drops it to debug
	DBPath string                   // Default snapshot path for save/load
	CSV    *telemetry.OutputManager // Status row after each step; nil disables

	Watch   WatchMode
	WatchID agents.AgentID // Selected being; moved by next and prev

	quit bool
}

// NewSession creates a session over sim writing to out.
func NewSession(sim *engine.Simulation, out io.Writer) *Session {
	return &Session{
		Sim:   sim,
		Out:   out,
		Stop:  &engine.StopFlag{},
		Level: new(slog.LevelVar),
	}
}

// Quit reports whether quit or exit has been executed.
func (s *Session) Quit() bool {
	return s.quit
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.Out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.Out, format, a...)
}
