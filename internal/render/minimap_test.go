package render

import (
	"testing"

	"mazerunner/internal/raycast"
	"mazerunner/internal/sprite"
)

func countColor(fb *Framebuffer, want [4]uint8) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			if [4]uint8{c.R, c.G, c.B, c.A} == want {
				n++
			}
		}
	}
	return n
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 1, 1, 8, 1, 8},
		{"vertical", 3, 0, 3, 9, 10},
		{"diagonal", 0, 0, 5, 5, 6},
		{"reversed", 8, 6, 2, 3, 7},
		{"single point", 4, 4, 4, 4, 1},
		{"clipped", -5, 2, 4, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.Clear(black)
			Line(fb, tt.x0, tt.y0, tt.x1, tt.y1, red)

			if got := countColor(fb, [4]uint8{255, 0, 0, 255}); got != tt.want {
				t.Errorf("drew %d pixels, want %d", got, tt.want)
			}
			if tt.x0 >= 0 && fb.At(tt.x0, tt.y0) != red {
				t.Error("start point not drawn")
			}
			if fb.At(tt.x1, tt.y1) != red {
				t.Error("end point not drawn")
			}
		})
	}
}

func TestMinimapDraw(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#   g",
		"#####",
	)
	fb := NewFramebuffer(100, 60)
	m := Minimap{March: raycast.Options{Step: 10}, Rays: 8}
	p := pose(150, 150, 0)

	m.Draw(fb, g, p, []*sprite.Sprite{sprite.New(350, 150, 'e')})

	// 100px for 500 units: one cell is 20px
	if got := fb.At(5, 5); got != MinimapWall {
		t.Errorf("wall cell drawn as %v", got)
	}
	if got := fb.At(85, 25); got != MinimapGoal {
		t.Errorf("goal cell drawn as %v", got)
	}
	if got := fb.At(30, 30); got != MinimapPlayer {
		t.Errorf("player drawn as %v", got)
	}
	if got := fb.At(70, 30); got != MinimapSprite {
		t.Errorf("sprite drawn as %v", got)
	}
	if countColor(fb, [4]uint8{MinimapRay.R, MinimapRay.G, MinimapRay.B, 255}) == 0 {
		t.Error("expected the ray fan")
	}
}

func TestMinimapCellsLeaveOnePixelGridLine(t *testing.T) {
	g := mustGrid(t, "###", "# #", "###")
	fb := NewFramebuffer(30, 30) // 10 pixels per cell
	m := Minimap{March: raycast.Options{Step: 10}, Rays: 3}
	m.Draw(fb, g, pose(150, 150, 0), nil)

	for x := 0; x < 30; x++ {
		want := MinimapWall
		if x%10 == 9 {
			want = black
		}
		if got := fb.At(x, 2); got != want {
			t.Errorf("pixel (%d, 2) = %v, want %v", x, got, want)
		}
	}
	if got := fb.At(2, 9); got != black {
		t.Errorf("row between cells = %v, want grid line", got)
	}
	if got := fb.At(2, 8); got != MinimapWall {
		t.Errorf("last row of a cell = %v, want wall", got)
	}
}
