package agents

// Mortality thresholds, checked after movement.
const (
	StarvedEnergy = 0.0
	StarvedHunger = 1.0
)

// Cycle runs one tick of the pipeline for a: age, metabolism, immune, drives,
// episodic memory, brain, social, movement, mortality. Dead beings are left
// untouched. Reports whether a died this tick.
func Cycle(ctx *Context, a *Agent) bool {
	if !a.Alive {
		return false
	}

	a.Age++

	Metabolize(ctx, a)
	ImmuneResponse(a)
	drive := UpdateDrives(ctx, a)
	RecallEpisodes(ctx, a)
	ApplyAction(a, Decide(ctx, a, drive))
	Socialize(ctx, a)
	Move(ctx, a)

	if a.Energy <= StarvedEnergy || a.Hunger >= StarvedHunger {
		a.Alive = false
		return true
	}
	return false
}

// Move applies the pending delta with wraparound and clears it.
func Move(ctx *Context, a *Agent) {
	a.X, a.Y = ctx.Land.Wrap(a.X+a.DX, a.Y+a.DY)
	a.DX, a.DY = 0, 0
}
