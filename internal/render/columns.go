package render

import (
	"errors"
	"fmt"
	"math"

	"mazerunner/internal/graphics"
	"mazerunner/internal/mathutil"
	"mazerunner/internal/raycast"
	"mazerunner/internal/workers"
	"mazerunner/internal/world"
)

var (
	ErrPoseOutOfBounds = errors.New("camera is outside the grid")
	ErrBufferMismatch  = errors.New("depth buffer does not match framebuffer width")
)

// ColumnRenderer draws textured wall strips, one ray per group of
// ColumnStep screen columns, and records their depth.
type ColumnRenderer struct {
	March           raycast.Options
	ColumnStep      int
	ProjectionPlane float64
	MaxDistance     float64
	MinDistance     float64

	// FisheyeCorrection shortens only the projected height by the cosine of
	// the ray's offset from the heading; depth keeps the ray distance.
	FisheyeCorrection bool

	// Pool casts rays in parallel when set. Every ray owns a disjoint run of
	// columns, so workers never share pixels or depth entries.
	Pool *workers.WorkerPool
}

// ColumnStats summarises one pass
type ColumnStats struct {
	Rays   int
	NoWall int
}

// NumRays returns how many rays cover width columns
func (cr *ColumnRenderer) NumRays(width int) int {
	step := cr.columnStep()
	return (width + step - 1) / step // Round up to cover entire screen
}

func (cr *ColumnRenderer) columnStep() int {
	if cr.ColumnStep < 1 {
		return 1
	}
	return cr.ColumnStep
}

// RayAngle returns the angle of ray i out of numRays
func RayAngle(p raycast.Pose, i, numRays int) float64 {
	return p.Angle - p.FOV/2 + p.FOV*(float64(i)/float64(numRays))
}

// Render resets depth and draws every wall column. Columns whose ray leaves
// the grid are left untouched with depth +Inf.
func (cr *ColumnRenderer) Render(fb *Framebuffer, depth *DepthBuffer, g *world.Grid, p raycast.Pose, textures graphics.Lookup) (ColumnStats, error) {
	if !g.Contains(p.X, p.Y) {
		return ColumnStats{}, fmt.Errorf("%w: (%.1f, %.1f)", ErrPoseOutOfBounds, p.X, p.Y)
	}
	if depth.Len() != fb.Width {
		return ColumnStats{}, fmt.Errorf("%w: %d columns for width %d", ErrBufferMismatch, depth.Len(), fb.Width)
	}
	depth.Reset()

	step := cr.columnStep()
	numRays := cr.NumRays(fb.Width)
	var noWall workers.Counter

	castColumn := func(i int) {
		angle := RayAngle(p, i, numRays)
		hit := raycast.March(g, p, angle, cr.March)
		if hit.NoWall {
			noWall.Add(1)
			return
		}

		x0 := i * step
		x1 := mathutil.ClampInt(x0+step, 0, fb.Width)
		dist := math.Max(hit.Distance, cr.MinDistance)
		cr.drawStrip(fb, x0, x1, dist, angle-p.Angle, hit, g.BlockSize, textures)
		depth.Fill(x0, x1, dist)
	}

	if cr.Pool != nil {
		cr.Pool.ParallelFor(0, numRays, castColumn)
	} else {
		for i := 0; i < numRays; i++ {
			castColumn(i)
		}
	}
	return ColumnStats{Rays: numRays, NoWall: int(noWall.Load())}, nil
}

func (cr *ColumnRenderer) drawStrip(fb *Framebuffer, x0, x1 int, dist, offset float64, hit raycast.Hit, block float64, textures graphics.Lookup) {
	projected := dist
	if cr.FisheyeCorrection {
		projected = math.Max(dist*math.Cos(offset), cr.MinDistance)
	}
	h := float64(fb.Height)
	height := (h / 2 / projected) * cr.ProjectionPlane
	top := h/2 - height/2
	bottom := h/2 + height/2

	yStart := mathutil.ClampInt(int(math.Floor(top)), 0, fb.Height)
	yEnd := mathutil.ClampInt(int(math.Ceil(bottom)), 0, fb.Height)

	tex := textures.Texture(hit.Cell.Texture)
	texW, texH := tex.Size()
	texX := mathutil.ClampInt(int(hit.Offset/block*float64(texW)), 0, texW-1)

	intensity := 1 - math.Min(dist/cr.MaxDistance, 1)

	for y := yStart; y < yEnd; y++ {
		// Fraction through the full projected strip, so clipped walls keep
		// their texture alignment.
		texY := int((float64(y) - top) / height * float64(texH))
		c := Shade(tex.At(texX, texY), intensity)
		for x := x0; x < x1; x++ {
			fb.Set(x, y, c)
		}
	}
}
