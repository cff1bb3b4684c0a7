// Package raycast marches rays through a world.Grid.
//
// Rays advance in fixed steps from the pose position. Trigger and start cells
// are pass-through; walls and goals stop the ray. Leaving the grid yields a
// NoWall hit that callers render as nothing.
package raycast

import (
	"math"

	"mazerunner/internal/world"
)

// DefaultStep is used when Options.Step is not positive.
const DefaultStep = 10

// Pose is the camera: position in world units, heading and field of view in radians.
type Pose struct {
	X, Y  float64
	Angle float64
	FOV   float64
}

// Side tells which pair of cell edges a ray crossed.
type Side uint8

const (
	// SideVertical is the left or right edge; texture X comes from fractional Y.
	SideVertical Side = iota
	// SideHorizontal is the top or bottom edge; texture X comes from fractional X.
	SideHorizontal
)

func (s Side) String() string {
	if s == SideHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Hit is the result of a single march.
type Hit struct {
	Distance float64
	Cell     world.Cell
	Col, Row int
	X, Y     float64 // impact point
	Side     Side
	Offset   float64 // position along the struck edge, in [0, BlockSize)
	NoWall   bool
}

// Options tunes the march.
type Options struct {
	// Step is the fixed advance per sample. Finer steps resolve corners
	// correctly; coarser steps are faster but can tunnel through corners.
	Step float64
	// Refine is the number of bisection passes between the last free sample
	// and the first solid one.
	Refine int
}

func (o Options) step() float64 {
	if o.Step <= 0 {
		return DefaultStep
	}
	return o.Step
}

// March casts one ray from the pose position at the given angle. The start
// position must lie inside the grid; callers check this once per frame.
//
// For a face at distance D the returned distance lies in [D-Step, D]: it is
// the last sample known to be in free space.
func March(g *world.Grid, p Pose, angle float64, opts Options) Hit {
	step := opts.step()
	dx, dy := math.Cos(angle), math.Sin(angle)

	var free float64
	for i := 0; ; i++ {
		d := float64(i) * step
		s := sampleAt(g, p, dx, dy, d)
		if !s.inBounds {
			return Hit{Distance: d, X: s.x, Y: s.y, Col: s.col, Row: s.row, NoWall: true}
		}
		if !s.cell.Solid() {
			free = d
			continue
		}
		if i == 0 {
			return solidHit(g, 0, s)
		}

		// Bisect between the last free sample and this one, keeping the
		// solid side inside a solid cell.
		lo := free
		for k := 0; k < opts.Refine; k++ {
			mid := (lo + s.d) / 2
			m := sampleAt(g, p, dx, dy, mid)
			if m.inBounds && m.cell.Solid() {
				s = m
			} else {
				lo = mid
			}
		}
		return solidHit(g, lo, s)
	}
}

type sample struct {
	d        float64
	x, y     float64
	col, row int
	inBounds bool
	cell     world.Cell
}

func sampleAt(g *world.Grid, p Pose, dx, dy, d float64) sample {
	s := sample{d: d, x: p.X + dx*d, y: p.Y + dy*d}
	s.col, s.row = g.CellIndex(s.x, s.y)
	if g.InBounds(s.col, s.row) {
		s.inBounds = true
		s.cell = g.Cell(s.col, s.row)
	}
	return s
}

func solidHit(g *world.Grid, dist float64, s sample) Hit {
	side := ClassifySide(s.x, s.y, s.col, s.row, g.BlockSize)
	var offset float64
	if side == SideVertical {
		offset = s.y - float64(s.row)*g.BlockSize
	} else {
		offset = s.x - float64(s.col)*g.BlockSize
	}
	return Hit{
		Distance: dist,
		Cell:     s.cell,
		Col:      s.col,
		Row:      s.row,
		X:        s.x,
		Y:        s.y,
		Side:     side,
		Offset:   clampOffset(offset, g.BlockSize),
	}
}

func clampOffset(v, block float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= block {
		return math.Nextafter(block, 0)
	}
	return v
}

// ClassifySide picks the cell edge nearest to the impact point. Ties between
// a vertical and a horizontal edge go to vertical.
func ClassifySide(x, y float64, col, row int, block float64) Side {
	left := x - float64(col)*block
	right := float64(col+1)*block - x
	top := y - float64(row)*block
	bottom := float64(row+1)*block - y

	vertical := math.Min(math.Abs(left), math.Abs(right))
	horizontal := math.Min(math.Abs(top), math.Abs(bottom))
	if horizontal < vertical {
		return SideHorizontal
	}
	return SideVertical
}
