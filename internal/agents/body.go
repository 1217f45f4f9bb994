package agents

// Metabolism rates per tick.
const (
	EnergyDecay = 0.0025
	HungerRise  = 0.0035
	FatigueRise = 0.0020
)

// Foraging and resting thresholds.
const (
	ForageHunger   = 0.35 // Hunger above which a being eats
	ForageFood     = 0.55 // Minimum tile food worth eating
	BiteCap        = 0.25 // Most food removed from hunger in one tick
	BiteFraction   = 0.25 // Share of tile food taken per bite
	BiteToEnergy   = 0.6  // Energy gained per unit of hunger relieved
	RestFatigue    = 0.6
	RestSafety     = 0.5
	RestRecovery   = 0.05
	RestEnergyGain = 0.01
)

// Metabolize applies passive decay, then foraging and resting on the current tile.
// Tiles are never depleted.
func Metabolize(ctx *Context, a *Agent) {
	a.Energy = clamp01(a.Energy - EnergyDecay)
	a.Hunger = clamp01(a.Hunger + HungerRise)
	a.Fatigue = clamp01(a.Fatigue + FatigueRise)

	tile := ctx.Land.Sample(a.X, a.Y)

	if a.Hunger > ForageHunger && tile.Food > ForageFood {
		eat := min(BiteCap, tile.Food*BiteFraction)
		a.Hunger = clamp01(a.Hunger - eat)
		a.Energy = clamp01(a.Energy + eat*BiteToEnergy)
		a.LastFoodX = a.X
		a.LastFoodY = a.Y
	}

	if a.Fatigue > RestFatigue && tile.Safety > RestSafety {
		a.Fatigue = clamp01(a.Fatigue - RestRecovery)
		a.Energy = clamp01(a.Energy + RestEnergyGain)
	}
}
