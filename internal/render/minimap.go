package render

import (
	"image/color"

	"mazerunner/internal/raycast"
	"mazerunner/internal/sprite"
	"mazerunner/internal/world"
)

// Minimap colors
var (
	MinimapWall    = color.RGBA{200, 200, 200, 255}
	MinimapGoal    = color.RGBA{60, 200, 80, 255}
	MinimapTrigger = color.RGBA{200, 180, 60, 255}
	MinimapEmpty   = color.RGBA{20, 20, 20, 255}
	MinimapPlayer  = color.RGBA{255, 60, 60, 255}
	MinimapRay     = color.RGBA{255, 220, 120, 255}
	MinimapSprite  = color.RGBA{120, 160, 255, 255}
)

// Line draws a Bresenham line between two pixels, inclusive of both ends
func Line(fb *Framebuffer, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		fb.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Minimap is the top-down debug view. Cells are scaled to fit the
// framebuffer and rays are fanned out like the column renderer casts them.
type Minimap struct {
	March raycast.Options
	Rays  int
}

// Draw renders the grid, sprites, the player and its ray fan
func (m *Minimap) Draw(fb *Framebuffer, g *world.Grid, p raycast.Pose, sprites []*sprite.Sprite) {
	fb.Clear(color.RGBA{0, 0, 0, 255})

	scale := float64(fb.Width) / (float64(g.Width) * g.BlockSize)
	if s := float64(fb.Height) / (float64(g.Height) * g.BlockSize); s < scale {
		scale = s
	}
	cellPx := g.BlockSize * scale
	toScreen := func(x, y float64) (int, int) {
		return int(x * scale), int(y * scale)
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := MinimapEmpty
			switch g.Cell(col, row).Kind {
			case world.CellWall:
				c = MinimapWall
			case world.CellGoal:
				c = MinimapGoal
			case world.CellTrigger:
				c = MinimapTrigger
			}
			x0, y0 := int(float64(col)*cellPx), int(float64(row)*cellPx)
			x1, y1 := int(float64(col+1)*cellPx)-1, int(float64(row+1)*cellPx)-1
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					fb.Set(x, y, c)
				}
			}
		}
	}

	rays := m.Rays
	if rays < 1 {
		rays = 1
	}
	px, py := toScreen(p.X, p.Y)
	for i := 0; i < rays; i++ {
		angle := RayAngle(p, i, rays)
		hit := raycast.March(g, p, angle, m.March)
		hx, hy := toScreen(hit.X, hit.Y)
		Line(fb, px, py, hx, hy, MinimapRay)
	}

	for _, s := range sprites {
		sx, sy := toScreen(s.X, s.Y)
		dot(fb, sx, sy, 2, MinimapSprite)
	}
	dot(fb, px, py, 3, MinimapPlayer)
}

func dot(fb *Framebuffer, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			fb.Set(x, y, c)
		}
	}
}
