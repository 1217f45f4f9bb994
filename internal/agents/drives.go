package agents

// DriveSnapshot holds the urgencies computed by UpdateDrives. The brain reads
// this rather than the live body so it sees the same values within a tick.
type DriveSnapshot struct {
	HungerUrgency  float64 `json:"hunger_urgency"`
	FatigueUrgency float64 `json:"fatigue_urgency"`
}

const (
	DriveRadius     = 2 // Chebyshev radius for the crowding count
	CrowdedAt       = 4
	SociabilityStep = 0.01

	SexDriveHunger  = 0.4
	SexDriveFatigue = 0.5
	SexDriveRise    = 0.004
	SexDriveDecay   = 0.002

	AffectRetention = 0.98
)

// UpdateDrives adjusts sociability, sex drive, and affect, then publishes the
// urgency snapshot.
func UpdateDrives(ctx *Context, a *Agent) DriveSnapshot {
	snap := DriveSnapshot{
		HungerUrgency:  a.Hunger,
		FatigueUrgency: a.Fatigue,
	}

	// Lonely beings seek company; crowded ones withdraw.
	switch n := countNeighbors(ctx, a, DriveRadius); {
	case n == 0:
		a.Sociability = clamp01(a.Sociability + SociabilityStep)
	case n >= CrowdedAt:
		a.Sociability = clamp01(a.Sociability - SociabilityStep)
	}

	if a.Hunger < SexDriveHunger && a.Fatigue < SexDriveFatigue {
		a.SexDrive = clamp01(a.SexDrive + SexDriveRise)
	} else {
		a.SexDrive = clamp01(a.SexDrive - SexDriveDecay)
	}

	a.AffectPos = clamp01(a.AffectPos*AffectRetention + (1-snap.HungerUrgency)*0.01)
	a.AffectNeg = clamp01(a.AffectNeg*AffectRetention + snap.HungerUrgency*0.01 + snap.FatigueUrgency*0.005)

	a.Drive = snap
	return snap
}
