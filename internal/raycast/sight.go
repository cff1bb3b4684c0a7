package raycast

import (
	"math"

	"mazerunner/internal/world"
)

// LineOfSight reports whether the straight segment between two points stays
// in free, in-bounds cells. It samples with the same fixed-step walker as
// March, so the renderer and the AI agree on what blocks a view.
func LineOfSight(g *world.Grid, x1, y1, x2, y2, step float64) bool {
	if step <= 0 {
		step = DefaultStep
	}
	dist := math.Hypot(x2-x1, y2-y1)
	origin := Pose{X: x1, Y: y1}
	if dist == 0 {
		s := sampleAt(g, origin, 0, 0, 0)
		return s.inBounds && !s.cell.Solid()
	}

	dx, dy := (x2-x1)/dist, (y2-y1)/dist
	n := int(dist / step)
	for i := 0; i <= n; i++ {
		s := sampleAt(g, origin, dx, dy, float64(i)*step)
		if !s.inBounds || s.cell.Solid() {
			return false
		}
	}
	end := sampleAt(g, origin, dx, dy, dist)
	return end.inBounds && !end.cell.Solid()
}
