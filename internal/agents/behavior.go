// Brain: priority policy turning the drive snapshot and local terrain into a move.
package agents

import "github.com/talgya/longterm/internal/world"

// ActionKind enumerates what the brain chose this tick.
type ActionKind uint8

const (
	ActionNone     ActionKind = iota
	ActionRest                // Stay put on a safe tile
	ActionSeekFood            // Head for the remembered food tile
	ActionWander              // Step to the best-scoring neighbor cell
)

var actionNames = [...]string{"none", "rest", "seek_food", "wander"}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "unknown"
}

// MarshalText renders the action by name in inspect output.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Action is the brain's decision: a kind and a one-cell delta.
type Action struct {
	AgentID AgentID
	Kind    ActionKind
	DX, DY  int
}

// Brain thresholds.
const (
	RestUrgency   = 0.7
	RestMinSafety = 0.4
	SeekUrgency   = 0.45
	SeekMaxFood   = 0.5
)

// Cell scoring weights for wandering.
const (
	FoodWeight  = 1.0
	SafeWeight  = 0.25
	SteepWeight = 0.2
)

// Decide evaluates rest, then food seeking, then wandering. The first rule
// that fires wins.
func Decide(ctx *Context, a *Agent, drive DriveSnapshot) Action {
	tile := ctx.Land.Sample(a.X, a.Y)

	if drive.FatigueUrgency > RestUrgency && tile.Safety > RestMinSafety {
		return Action{AgentID: a.ID, Kind: ActionRest}
	}

	if drive.HungerUrgency > SeekUrgency && tile.Food < SeekMaxFood {
		return Action{
			AgentID: a.ID,
			Kind:    ActionSeekFood,
			DX:      stepToward(ctx.Land.Width, a.X, a.LastFoodX),
			DY:      stepToward(ctx.Land.Height, a.Y, a.LastFoodY),
		}
	}

	dx, dy := bestNeighbor(ctx.Land, a.X, a.Y)
	return Action{AgentID: a.ID, Kind: ActionWander, DX: dx, DY: dy}
}

// ApplyAction records the decision as the pending move.
func ApplyAction(a *Agent, action Action) {
	a.DX = action.DX
	a.DY = action.DY
	a.LastAction = action.Kind
}

// stepToward returns -1, 0, or 1: one step along the shorter way round the axis.
// Ties between the direct and wrap-around paths go to the direct path.
func stepToward(size, from, to int) int {
	if from == to {
		return 0
	}
	direct := to - from
	around := direct + size
	if direct > 0 {
		around = direct - size
	}
	d := direct
	if abs(around) < abs(direct) {
		d = around
	}
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// bestNeighbor scans the 3×3 block (dy outer, dx inner) and keeps the first
// cell with the strictly highest score.
func bestNeighbor(m *world.Map, x, y int) (int, int) {
	bestScore := -1e9
	bx, by := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			t := m.Sample(x+dx, y+dy)
			score := t.Food*FoodWeight + t.Safety*SafeWeight - t.Steepness*SteepWeight
			if score > bestScore {
				bestScore = score
				bx, by = dx, dy
			}
		}
	}
	return bx, by
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
