// Command longterm runs the artificial-life simulation, either as an
// interactive console or as a headless batch.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/talgya/longterm/internal/command"
	"github.com/talgya/longterm/internal/config"
	"github.com/talgya/longterm/internal/engine"
	"github.com/talgya/longterm/internal/persistence"
	"github.com/talgya/longterm/internal/telemetry"
	"github.com/talgya/longterm/internal/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults embedded)")
	seed := flag.Int64("seed", 0, "World and population seed")
	beings := flag.Int("beings", 0, "Initial population")
	width := flag.Int("width", 0, "World width")
	height := flag.Int("height", 0, "World height")
	noise := flag.String("noise", "", "Elevation noise: value or simplex")
	runTicks := flag.Int("run", 0, "Run N ticks headless, then exit")
	statusEvery := flag.Int("status-every", 0, "Print status every K ticks in batch mode")
	csvDir := flag.String("csv", "", "Directory for status.csv")
	dbPath := flag.String("db", "", "SQLite snapshot file for save/load")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags override the file only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.World.Seed = *seed
		case "beings":
			cfg.Population = *beings
		case "width":
			cfg.World.Width = *width
		case "height":
			cfg.World.Height = *height
		case "noise":
			cfg.World.Noise = world.NoiseKind(*noise)
		case "run":
			cfg.Batch.Run = *runTicks
		case "status-every":
			cfg.Batch.StatusEvery = *statusEvery
		case "csv":
			cfg.Telemetry.CSVDir = *csvDir
		case "db":
			cfg.Storage.Path = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	lvl, _ := cfg.LogLevel()
	level.Set(lvl)

	sim, err := engine.NewSimulation(cfg.Engine())
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	slog.Info("world ready",
		"land", sim.Land.String(),
		"seed", cfg.World.Seed,
		"noise", cfg.World.Noise,
		"beings", len(sim.Agents),
		"run_id", sim.RunID,
	)

	om, err := telemetry.NewOutputManager(cfg.Telemetry.CSVDir)
	if err != nil {
		slog.Error("failed to open telemetry output", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write run config", "error", err)
	}

	if cfg.Batch.Run > 0 {
		runBatch(sim, cfg, om)
		return
	}

	session := command.NewSession(sim, os.Stdout)
	session.Level = level
	session.DBPath = cfg.Storage.Path
	session.CSV = om

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	runConsole(command.NewDispatcher(session), os.Stdin, os.Stdout, sigCh)
}

func runBatch(sim *engine.Simulation, cfg *config.Config, om *telemetry.OutputManager) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := func(st engine.Status) {
		fmt.Println(st)
		if err := om.WriteStatus(st); err != nil {
			slog.Warn("status csv write failed", "error", err)
		}
	}

	runner := &engine.Runner{
		Sim:      sim,
		Total:    cfg.Batch.Run,
		Every:    cfg.Batch.StatusEvery,
		OnReport: report,
	}
	summary := runner.Run(engine.ContextToken(ctx))
	if summary.Interrupted {
		fmt.Println("Interrupted.")
	}
	if cfg.Batch.StatusEvery <= 0 || summary.Interrupted {
		report(sim.Status())
	}

	if cfg.Storage.Path == "" {
		return
	}
	db, err := persistence.Open(cfg.Storage.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return
	}
	defer db.Close()
	if err := db.SaveWorldState(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}
}

func runConsole(d *command.Dispatcher, in io.Reader, out io.Writer, interrupts <-chan os.Signal) {
	session := d.Session()

	// Ctrl+C interrupts a running step instead of killing the console.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		watchInterrupts(interrupts, done, session.Stop, out)
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	fmt.Fprintln(out)
	fmt.Fprintf(out, " *** Longterm Console, %s ***\n", time.Now().Format("Mon Jan 02 2006"))
	fmt.Fprintln(out, "      For a list of commands type 'help'")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, ">> ")
		if !scanner.Scan() {
			break
		}
		if err := d.Execute(scanner.Text()); err != nil {
			if isUserError(err) {
				fmt.Fprintln(out, err)
			} else {
				slog.Error("command failed", "line", scanner.Text(), "error", err)
			}
		}
		if session.Quit() {
			return
		}
	}
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		slog.Error("reading input", "error", err)
	}
}

// watchInterrupts turns each interrupt into a stop request until done is closed.
func watchInterrupts(interrupts <-chan os.Signal, done <-chan struct{}, stop *engine.StopFlag, out io.Writer) {
	for {
		select {
		case <-done:
			return
		case <-interrupts:
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Interrupted (SIGINT). Type 'quit' to exit.")
			stop.Request()
		}
	}
}

// isUserError reports whether err is a mistake in the command line itself,
// printed to the console rather than logged.
func isUserError(err error) bool {
	var uce *command.UnknownCommandError
	return errors.As(err, &uce) ||
		errors.Is(err, command.ErrBadArgument) ||
		errors.Is(err, persistence.ErrNoSnapshot) ||
		errors.Is(err, persistence.ErrSnapshotMismatch)
}
