package world

import (
	"errors"
	"math"

	"mazerunner/internal/mathutil"
)

var (
	ErrNotRectangular = errors.New("map is not rectangular")
	ErrEmptyMap       = errors.New("map contains no rows")
	ErrNoStart        = errors.New("map has no start marker")
	ErrMultipleStarts = errors.New("map has more than one start marker")
)

// Spawn is a sprite placed by the map
type Spawn struct {
	Col, Row int
	Sprite   rune
	AI       bool
}

// Grid is an immutable rectangular tile map. Row 0 is the top row.
type Grid struct {
	Width     int
	Height    int
	BlockSize float64

	cells    []Cell
	startCol int
	startRow int
	hasStart bool
	goals    [][2]int
	spawns   []Spawn
}

// NewGrid builds a grid from row-major cells. Spawns are optional.
func NewGrid(width, height int, blockSize float64, cells []Cell, spawns []Spawn) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyMap
	}
	if len(cells) != width*height {
		return nil, ErrNotRectangular
	}

	g := &Grid{
		Width:     width,
		Height:    height,
		BlockSize: blockSize,
		cells:     cells,
		spawns:    spawns,
	}
	for i, c := range cells {
		col, row := i%width, i/width
		switch c.Kind {
		case CellStart:
			if g.hasStart {
				return nil, ErrMultipleStarts
			}
			g.startCol, g.startRow, g.hasStart = col, row, true
		case CellGoal:
			g.goals = append(g.goals, [2]int{col, row})
		}
	}
	return g, nil
}

// InBounds reports whether the tile coordinate lies inside the grid
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// Cell returns the cell at a tile coordinate without bounds checking.
// Callers in hot loops check InBounds first.
func (g *Grid) Cell(col, row int) Cell {
	return g.cells[row*g.Width+col]
}

// Lookup returns the cell at a tile coordinate and whether it exists
func (g *Grid) Lookup(col, row int) (Cell, bool) {
	if !g.InBounds(col, row) {
		return Cell{}, false
	}
	return g.Cell(col, row), true
}

// CellIndex converts world coordinates to tile coordinates
func (g *Grid) CellIndex(x, y float64) (col, row int) {
	return int(math.Floor(x / g.BlockSize)), int(math.Floor(y / g.BlockSize))
}

// Contains reports whether a world position lies inside the grid
func (g *Grid) Contains(x, y float64) bool {
	col, row := g.CellIndex(x, y)
	return g.InBounds(col, row)
}

// BlockedAt reports whether a world position is solid or outside the grid
func (g *Grid) BlockedAt(x, y float64) bool {
	col, row := g.CellIndex(x, y)
	return g.IsTileBlocking(col, row)
}

// IsTileBlocking treats out-of-bounds tiles as blocking
func (g *Grid) IsTileBlocking(col, row int) bool {
	if !g.InBounds(col, row) {
		return true
	}
	return g.Cell(col, row).Solid()
}

// GetWorldBounds returns the grid size in tiles
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.Width, g.Height
}

// CellCenter returns the world position of a tile's center
func (g *Grid) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * g.BlockSize, (float64(row) + 0.5) * g.BlockSize
}

// Start returns the world position of the start marker's center
func (g *Grid) Start() (x, y float64, err error) {
	if !g.hasStart {
		return 0, 0, ErrNoStart
	}
	x, y = g.CellCenter(g.startCol, g.startRow)
	return x, y, nil
}

// Spawns returns the sprite spawns found while loading
func (g *Grid) Spawns() []Spawn {
	return g.spawns
}

// Goals returns the tile coordinates of every goal cell
func (g *Grid) Goals() [][2]int {
	return g.goals
}

// NearGoal reports whether a position is within radiusFactor*BlockSize of
// any goal center.
func (g *Grid) NearGoal(x, y, radiusFactor float64) bool {
	limit := radiusFactor * g.BlockSize
	for _, goal := range g.goals {
		gx, gy := g.CellCenter(goal[0], goal[1])
		if mathutil.Distance(x, y, gx, gy) < limit {
			return true
		}
	}
	return false
}
