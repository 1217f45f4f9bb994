package agents

import "testing"

func TestDecideRestsWhenTiredOnSafeGround(t *testing.T) {
	ctx := &Context{Land: flatLand(5, 5, 0, 0.9)}
	a := newTestAgent(0, 2, 2)

	act := Decide(ctx, a, DriveSnapshot{HungerUrgency: 0.9, FatigueUrgency: 0.8})

	if act.Kind != ActionRest || act.DX != 0 || act.DY != 0 {
		t.Errorf("expected rest in place, got %+v", act)
	}
}

func TestDecideSeeksRememberedFood(t *testing.T) {
	ctx := &Context{Land: flatLand(10, 10, 0.1, 0.1)}
	a := newTestAgent(0, 1, 5)
	a.LastFoodX, a.LastFoodY = 8, 7 // x is shorter across the wrap

	act := Decide(ctx, a, DriveSnapshot{HungerUrgency: 0.6, FatigueUrgency: 0.9})

	if act.Kind != ActionSeekFood {
		t.Fatalf("expected seek_food, got %v", act.Kind)
	}
	if act.DX != -1 || act.DY != 1 {
		t.Errorf("delta: got (%d,%d), want (-1,1)", act.DX, act.DY)
	}
}

func TestDecideWandersWhenFoodIsUnderfoot(t *testing.T) {
	ctx := &Context{Land: flatLand(5, 5, 0.6, 0.1)}
	a := newTestAgent(0, 2, 2)

	act := Decide(ctx, a, DriveSnapshot{HungerUrgency: 0.9})

	if act.Kind != ActionWander {
		t.Errorf("expected wander on a rich tile, got %v", act.Kind)
	}
}

func TestBestNeighborPrefersScore(t *testing.T) {
	land := flatLand(6, 6, 0.2, 0.2)
	land.Food[3*6+4] = 0.9 // (4,3)

	dx, dy := bestNeighbor(land, 3, 3)
	if dx != 1 || dy != 0 {
		t.Errorf("got (%d,%d), want (1,0)", dx, dy)
	}

	// Across the wrap: best cell at (0,0) seen from (5,5).
	land.Food[0] = 1.0
	dx, dy = bestNeighbor(land, 5, 5)
	if dx != 1 || dy != 1 {
		t.Errorf("wrapped best: got (%d,%d), want (1,1)", dx, dy)
	}
}

func TestBestNeighborTieBreaksOnScanOrder(t *testing.T) {
	land := flatLand(6, 6, 0.5, 0.5)

	dx, dy := bestNeighbor(land, 2, 2)
	if dx != -1 || dy != -1 {
		t.Errorf("flat land should pick the first scanned cell (-1,-1), got (%d,%d)", dx, dy)
	}

	// Equal best at (3,2) [dx=1,dy=0] and (1,3) [dx=-1,dy=1]: dy=0 row is scanned first.
	land.Food[2*6+3] = 0.9
	land.Food[3*6+1] = 0.9
	dx, dy = bestNeighbor(land, 2, 2)
	if dx != 1 || dy != 0 {
		t.Errorf("tie: got (%d,%d), want (1,0)", dx, dy)
	}
}

func TestStepToward(t *testing.T) {
	tests := []struct {
		size, from, to, want int
	}{
		{10, 5, 5, 0},
		{10, 2, 4, 1},
		{10, 4, 2, -1},
		{10, 1, 8, -1},
		{10, 8, 1, 1},
		{10, 0, 5, 1}, // equal distance either way: direct wins
		{10, 5, 0, -1},
		{1, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := stepToward(tt.size, tt.from, tt.to); got != tt.want {
			t.Errorf("stepToward(%d,%d,%d) = %d, want %d", tt.size, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestApplyActionSetsPendingMove(t *testing.T) {
	a := newTestAgent(0, 0, 0)
	ApplyAction(a, Action{Kind: ActionSeekFood, DX: 1, DY: -1})
	if a.DX != 1 || a.DY != -1 || a.LastAction != ActionSeekFood {
		t.Errorf("got dx=%d dy=%d action=%v", a.DX, a.DY, a.LastAction)
	}
}

func TestActionKindString(t *testing.T) {
	if ActionWander.String() != "wander" {
		t.Errorf("got %q", ActionWander.String())
	}
	if ActionKind(200).String() != "unknown" {
		t.Errorf("got %q", ActionKind(200).String())
	}
}
