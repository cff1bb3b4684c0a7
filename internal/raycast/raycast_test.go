package raycast

import (
	"math"
	"testing"

	"mazerunner/internal/world"
)

func mustGrid(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	g, err := world.ParseMap(rows, 100)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	return g
}

func enclosedGrid(t *testing.T) *world.Grid {
	return mustGrid(t,
		"#######",
		"#     #",
		"#  #  #",
		"#     #",
		"#######",
	)
}

func TestMarchTerminatesInsideEnclosedGrid(t *testing.T) {
	g := enclosedGrid(t)
	positions := [][2]float64{{150, 150}, {555, 355}, {250.5, 310}, {420, 120}}
	for _, pos := range positions {
		for a := 0; a < 72; a++ {
			angle := float64(a) * math.Pi / 36
			hit := March(g, Pose{X: pos[0], Y: pos[1]}, angle, Options{Step: 5, Refine: 4})
			if hit.NoWall {
				t.Fatalf("Ray from %v at %.2f escaped an enclosed grid", pos, angle)
			}
			if math.IsInf(hit.Distance, 0) || math.IsNaN(hit.Distance) || hit.Distance < 0 {
				t.Fatalf("Ray from %v at %.2f returned distance %v", pos, angle, hit.Distance)
			}
			if !hit.Cell.Solid() {
				t.Fatalf("Ray from %v at %.2f stopped on %v", pos, angle, hit.Cell.Kind)
			}
		}
	}
}

func TestMarchPerpendicularDistanceWithinOneStep(t *testing.T) {
	g := enclosedGrid(t)
	for _, step := range []float64{10, 7, 3, 1} {
		for _, refine := range []int{0, 8} {
			for _, startX := range []float64{110, 150, 233.3, 405} {
				// Facing east; the inner face of the right wall is at x = 600
				hit := March(g, Pose{X: startX, Y: 150}, 0, Options{Step: step, Refine: refine})
				want := 600 - startX
				if hit.Distance < want-step || hit.Distance > want {
					t.Errorf("step=%v refine=%d x=%v: distance %v outside [%v, %v]",
						step, refine, startX, hit.Distance, want-step, want)
				}
				if hit.Side != SideVertical {
					t.Errorf("step=%v x=%v: expected vertical side, got %v", step, startX, hit.Side)
				}
			}
		}
	}
}

func TestMarchRefineTightensDistance(t *testing.T) {
	g := enclosedGrid(t)
	coarse := March(g, Pose{X: 123, Y: 150}, 0, Options{Step: 10})
	fine := March(g, Pose{X: 123, Y: 150}, 0, Options{Step: 10, Refine: 10})
	want := 600.0 - 123
	if math.Abs(fine.Distance-want) > math.Abs(coarse.Distance-want) {
		t.Errorf("Refinement made the estimate worse: coarse %v fine %v", coarse.Distance, fine.Distance)
	}
	if want-fine.Distance > 0.05 {
		t.Errorf("Expected refined distance near %v, got %v", want, fine.Distance)
	}
}

func TestMarchSouthFaceIsHorizontal(t *testing.T) {
	g := enclosedGrid(t)
	hit := March(g, Pose{X: 130, Y: 150}, math.Pi/2, Options{Step: 2, Refine: 8})
	if hit.Side != SideHorizontal {
		t.Fatalf("Expected horizontal side, got %v", hit.Side)
	}
	if hit.Row != 4 {
		t.Errorf("Expected bottom wall row 4, got %d", hit.Row)
	}
	if math.Abs(hit.Offset-30) > 1e-6 {
		t.Errorf("Expected offset 30 along the edge, got %v", hit.Offset)
	}
}

func TestMarchVerticalOffsetUsesFractionalY(t *testing.T) {
	g := enclosedGrid(t)
	hit := March(g, Pose{X: 150, Y: 230}, math.Pi, Options{Step: 2, Refine: 8})
	if hit.Side != SideVertical || hit.Col != 0 {
		t.Fatalf("Expected vertical hit on column 0, got side=%v col=%d", hit.Side, hit.Col)
	}
	if math.Abs(hit.Offset-30) > 1e-6 {
		t.Errorf("Expected offset 30, got %v", hit.Offset)
	}
}

func TestMarchSkipsTriggers(t *testing.T) {
	g := mustGrid(t,
		"######",
		"#p tt#",
		"######",
	)
	hit := March(g, Pose{X: 150, Y: 150}, 0, Options{Step: 5})
	if hit.NoWall {
		t.Fatal("Expected a wall hit")
	}
	if hit.Cell.Kind != world.CellWall || hit.Col != 5 {
		t.Errorf("Triggers should be pass-through, stopped at col %d kind %v", hit.Col, hit.Cell.Kind)
	}
}

func TestMarchOutOfBoundsSentinel(t *testing.T) {
	g := mustGrid(t,
		"   ",
		" p ",
		"   ",
	)
	hit := March(g, Pose{X: 150, Y: 150}, 0, Options{Step: 10})
	if !hit.NoWall {
		t.Fatal("Expected NoWall sentinel for an open edge")
	}
	if hit.Distance < 150 || hit.Distance > 160 {
		t.Errorf("Expected boundary distance near 150, got %v", hit.Distance)
	}
}

func TestMarchStartingInsideWall(t *testing.T) {
	g := enclosedGrid(t)
	hit := March(g, Pose{X: 350, Y: 250}, 0, Options{Step: 10})
	if hit.NoWall || hit.Distance != 0 {
		t.Errorf("Expected zero-distance hit, got %+v", hit)
	}
}

func TestClassifySide(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Side
	}{
		{"left edge", 300, 250, SideVertical},
		{"right edge", 399.9, 250, SideVertical},
		{"top edge", 350, 200, SideHorizontal},
		{"bottom edge", 350, 299.5, SideHorizontal},
		{"corner tie", 300, 200, SideVertical},
		{"diagonal tie", 310, 210, SideVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySide(tt.x, tt.y, 3, 2, 100); got != tt.want {
				t.Errorf("ClassifySide(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// Five by five walls with a three by three interior and a goal in the border.
func TestMarchEnclosedRoomScenario(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#   #",
		"# p #",
		"#   #",
		"##g##",
	)
	x, y, err := g.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	hit := March(g, Pose{X: x, Y: y, FOV: math.Pi / 3}, 0, Options{Step: 10})
	if hit.NoWall || hit.Cell.Kind != world.CellWall {
		t.Fatalf("Expected wall hit, got %+v", hit)
	}
	if hit.Distance < 140 || hit.Distance > 150 {
		t.Errorf("Expected distance in [140,150], got %v", hit.Distance)
	}

	// One cell over the wall is half a block away
	hit = March(g, Pose{X: 350, Y: 250}, 0, Options{Step: 10})
	if hit.Distance < 40 || hit.Distance > 50 {
		t.Errorf("Expected distance near 50, got %v", hit.Distance)
	}

	hit = March(g, Pose{X: 250, Y: 350}, math.Pi/2, Options{Step: 10})
	if hit.Cell.Kind != world.CellGoal {
		t.Errorf("Expected the goal cell south of the room, got %v", hit.Cell.Kind)
	}
}

func TestLineOfSight(t *testing.T) {
	g := mustGrid(t,
		"#######",
		"#  #  #",
		"#  t  #",
		"#######",
	)
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           bool
	}{
		{"same room", 150, 150, 250, 250, true},
		{"through wall", 150, 150, 550, 150, false},
		{"through trigger", 150, 250, 550, 250, true},
		{"to outside", 150, 150, -50, 150, false},
		{"same point", 150, 150, 150, 150, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineOfSight(g, tt.x1, tt.y1, tt.x2, tt.y2, 10); got != tt.want {
				t.Errorf("LineOfSight = %v, want %v", got, tt.want)
			}
		})
	}
}
