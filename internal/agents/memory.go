package agents

// RecallPeriod is the global tick cadence at which remembered food drifts.
const RecallPeriod = 64

// RecallEpisodes perturbs the remembered food location on the global schedule.
// The jitter depends only on id and cycle, so it is reproducible.
func RecallEpisodes(ctx *Context, a *Agent) {
	if ctx.Cycle%RecallPeriod != 0 {
		return
	}
	jitter := int((uint64(a.ID)*17+ctx.Cycle)%3) - 1
	a.LastFoodX, a.LastFoodY = ctx.Land.Wrap(a.LastFoodX+jitter, a.LastFoodY-jitter)
}
