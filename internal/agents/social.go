package agents

const (
	SocialRadius  = 1
	KinWarmth     = 0.002 // Positive affect per same-tribe neighbor, scaled by sociability
	StrangerChill = 0.003 // Negative affect per other-tribe neighbor, scaled by stress
)

// Socialize adjusts affect from the tribes of the immediately adjacent beings.
func Socialize(ctx *Context, a *Agent) {
	same, other := 0, 0
	for _, o := range ctx.Population {
		if o == a || !o.Alive {
			continue
		}
		if !withinRadius(ctx, a, o, SocialRadius) {
			continue
		}
		if o.Tribe == a.Tribe {
			same++
		} else {
			other++
		}
	}

	a.AffectPos = clamp01(a.AffectPos + float64(same)*KinWarmth*a.Sociability)
	a.AffectNeg = clamp01(a.AffectNeg + float64(other)*StrangerChill*a.Stress())
}
