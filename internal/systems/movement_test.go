package systems

import (
	"tactics-server/internal/domain"
	"testing"
)

func TestMoveUnit(t *testing.T) {
	tests := []struct {
		name       string
		dest       domain.Position
		movement   int
		wantOK     bool
		wantReason Rejection
		wantLeft   int
	}{
		{"straight move", domain.Position{X: 1, Y: 4}, 3, true, RejectNone, 0},
		{"diagonal costs manhattan", domain.Position{X: 2, Y: 2}, 3, true, RejectNone, 1},
		{"too far", domain.Position{X: 5, Y: 1}, 3, false, RejectInsufficientMovement, 3},
		{"outside grid", domain.Position{X: -1, Y: 1}, 3, false, RejectInvalidPosition, 3},
		{"onto obstacle", domain.Position{X: 3, Y: 1}, 3, false, RejectOccupied, 3},
		{"onto unit", domain.Position{X: 1, Y: 2}, 3, false, RejectOccupied, 3},
		{"stay in place", domain.Position{X: 1, Y: 1}, 3, false, RejectOccupied, 3},
		{"no movement left", domain.Position{X: 2, Y: 1}, 0, false, RejectInsufficientMovement, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGrid(10, 10)
			g.AddObstacle(domain.Position{X: 3, Y: 1})
			spawnAt(t, g, "Monster", domain.FactionHostile, domain.Position{X: 1, Y: 2})
			hero := spawnAt(t, g, "Hero", domain.FactionPlayer, domain.Position{X: 1, Y: 1})
			hero.Movement = tt.movement
			start := hero.Pos

			res := MoveUnit(g, hero, tt.dest)

			if res.OK != tt.wantOK || res.Reason != tt.wantReason {
				t.Fatalf("MoveUnit = (%v, %v), want (%v, %v)", res.OK, res.Reason, tt.wantOK, tt.wantReason)
			}
			if hero.Movement != tt.wantLeft {
				t.Errorf("movement left = %d, want %d", hero.Movement, tt.wantLeft)
			}

			if tt.wantOK {
				if hero.Pos != tt.dest || g.GetOccupantAt(tt.dest) != hero {
					t.Error("unit not at destination")
				}
				if g.IsOccupied(start) {
					t.Error("old cell still occupied")
				}
				if res.Cost != start.ManhattanTo(tt.dest) {
					t.Errorf("cost = %d, want manhattan distance", res.Cost)
				}
			} else {
				if hero.Pos != start || g.GetOccupantAt(start) != hero {
					t.Error("rejected move mutated state")
				}
			}
		})
	}
}

func TestMoveUnit_ChargesDistanceNotPath(t *testing.T) {
	// Стена между (1,1) и (1,3): обход длиннее, списывается все равно 2
	g := domain.NewGrid(10, 10)
	g.AddObstacle(domain.Position{X: 1, Y: 2})
	hero := spawnAt(t, g, "Hero", domain.FactionPlayer, domain.Position{X: 1, Y: 1})

	res := MoveUnit(g, hero, domain.Position{X: 1, Y: 3})
	if !res.OK || hero.Movement != 1 {
		t.Errorf("ok=%v movement=%d, want true and 1", res.OK, hero.Movement)
	}
}
