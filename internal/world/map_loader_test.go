package world

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMap(t *testing.T) {
	content := `; test maze
#####
#p  #
# t #
#e g#
#####
`
	path := filepath.Join(t.TempDir(), "test.map")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	grid, err := NewMapLoader(DefaultTileManager(), 100).LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap failed: %v", err)
	}
	if grid.Width != 5 || grid.Height != 5 {
		t.Fatalf("Expected 5x5 grid, got %dx%d", grid.Width, grid.Height)
	}

	x, y, err := grid.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if x != 150 || y != 150 {
		t.Errorf("Expected start at (150,150), got (%v,%v)", x, y)
	}

	if got := grid.Cell(2, 2).Kind; got != CellTrigger {
		t.Errorf("Expected trigger at (2,2), got %v", got)
	}
	if got := grid.Cell(3, 3).Kind; got != CellGoal {
		t.Errorf("Expected goal at (3,3), got %v", got)
	}

	spawns := grid.Spawns()
	if len(spawns) != 1 || spawns[0].Col != 1 || spawns[0].Row != 3 || spawns[0].Sprite != 'e' || !spawns[0].AI {
		t.Errorf("Unexpected spawns: %+v", spawns)
	}
	if grid.Cell(1, 3).Solid() {
		t.Error("Spawn cells must be walkable")
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	_, err := NewMapLoader(DefaultTileManager(), 100).LoadMap(filepath.Join(t.TempDir(), "nope.map"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped ErrNotExist, got %v", err)
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"ragged rows", []string{"###", "#p", "###"}, ErrNotRectangular},
		{"empty", nil, ErrEmptyMap},
		{"two starts", []string{"####", "#pp#", "####"}, ErrMultipleStarts},
		{"unknown symbol", []string{"###", "#?#", "###"}, ErrUnknownSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(tt.lines, 100)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGridQueries(t *testing.T) {
	grid, err := ParseMap([]string{
		"#####",
		"#   #",
		"# p #",
		"#  g#",
		"#####",
	}, 100)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	if !grid.IsTileBlocking(-1, 0) || !grid.IsTileBlocking(5, 2) {
		t.Error("Out-of-bounds tiles must block")
	}
	if grid.IsTileBlocking(1, 1) {
		t.Error("Floor tile should not block")
	}
	if !grid.BlockedAt(450, 150) {
		t.Error("Wall position should be blocked")
	}
	if !grid.Contains(0, 0) || grid.Contains(-0.5, 10) || grid.Contains(500, 10) {
		t.Error("Contains bounds are wrong")
	}

	col, row := grid.CellIndex(-1, 250)
	if col != -1 || row != 2 {
		t.Errorf("CellIndex should floor negatives, got (%d,%d)", col, row)
	}

	// Goal center is (350,350); 0.7*100 = 70 units of reach
	if !grid.NearGoal(290, 350, 0.7) {
		t.Error("Expected to be near goal at distance 60")
	}
	if grid.NearGoal(250, 250, 0.7) {
		t.Errorf("Distance %.1f should be out of goal reach", math.Hypot(100, 100))
	}
}

func TestGridWithoutStart(t *testing.T) {
	grid, err := ParseMap([]string{"###", "# #", "###"}, 100)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if _, _, err := grid.Start(); !errors.Is(err, ErrNoStart) {
		t.Errorf("Expected ErrNoStart, got %v", err)
	}
}
