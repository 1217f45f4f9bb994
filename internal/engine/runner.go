package engine

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Runner drives a non-interactive batch: Total ticks in chunks of Every,
// reporting after each chunk.
type Runner struct {
	Sim      *Simulation
	Total    int
	Every    int          // Report interval in ticks; <= 0 runs one chunk and never reports
	OnReport func(Status) // Called after each chunk when Every > 0
}

// RunSummary describes a finished batch.
type RunSummary struct {
	Ticks       int
	Interrupted bool
}

// Run steps until Total ticks are done or cancel fires. cancel is checked
// between chunks and, through Step, within them.
func (r *Runner) Run(cancel CancelToken) RunSummary {
	if cancel == nil {
		cancel = Never
	}
	chunk := r.Every
	if chunk <= 0 {
		chunk = r.Total
	}

	slog.Info("batch run started",
		"start_tick", r.Sim.CurrentTick(),
		"total", humanize.Comma(int64(r.Total)),
		"every", r.Every,
	)

	var sum RunSummary
	remaining := r.Total
	for remaining > 0 {
		if cancel.Cancelled() {
			sum.Interrupted = true
			break
		}
		n := min(chunk, remaining)
		res := r.Sim.Step(n, cancel)
		sum.Ticks += res.Ticks
		remaining -= n

		if r.Every > 0 && r.OnReport != nil {
			r.OnReport(r.Sim.Status())
		}
		if res.Cancelled {
			sum.Interrupted = true
			break
		}
	}

	slog.Info("batch run finished",
		"tick", humanize.Comma(int64(r.Sim.CurrentTick())),
		"ticks_run", humanize.Comma(int64(sum.Ticks)),
		"interrupted", sum.Interrupted,
	)
	return sum
}
