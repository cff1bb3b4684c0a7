package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"mazerunner/internal/graphics"
	"mazerunner/internal/sprite"
)

func renderScene(t *testing.T, rows []string, sprites []*sprite.Sprite) (*Framebuffer, int) {
	t.Helper()
	g := mustGrid(t, rows...)
	p := pose(150, 150, 0)
	fb := NewFramebuffer(80, 60)
	fb.Clear(black)
	depth := NewDepthBuffer(80)

	cr := testColumns()
	if _, err := cr.Render(fb, depth, g, p, testTextures()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	sprite.UpdateDistances(sprites, p)
	return fb, testCompositor().Composite(fb, depth, p, sprites, testTextures())
}

func TestSpriteVisibleTwoCellsAhead(t *testing.T) {
	fb, written := renderScene(t, []string{
		"#######",
		"#     #",
		"#######",
	}, []*sprite.Sprite{sprite.New(350, 150, 'e')})

	if written == 0 {
		t.Fatal("expected the sprite to write pixels")
	}
	c := fb.At(40, 30)
	if c.R == 0 || c.G != 0 || c.B != 0 {
		t.Errorf("center pixel %v should be the shaded sprite", c)
	}
}

func TestSpriteHiddenBehindWall(t *testing.T) {
	_, written := renderScene(t, []string{
		"#####",
		"# # #",
		"#####",
	}, []*sprite.Sprite{sprite.New(350, 150, 'e')})

	if written != 0 {
		t.Errorf("sprite behind a wall wrote %d pixels", written)
	}
}

func TestSpriteDepthTestPerColumn(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	fb.Clear(black)
	depth := NewDepthBuffer(80)
	depth.Fill(0, 40, 100) // occluder over the left half, nearer than the sprite

	p := pose(150, 150, 0)
	sprites := []*sprite.Sprite{sprite.New(350, 150, 'e')}
	sprite.UpdateDistances(sprites, p)

	written := testCompositor().Composite(fb, depth, p, sprites, testTextures())
	if written == 0 {
		t.Fatal("expected pixels right of the occluder")
	}
	for y := 0; y < 60; y++ {
		for x := 0; x < 40; x++ {
			if fb.At(x, y) != black {
				t.Fatalf("pixel (%d,%d) drawn through a nearer wall", x, y)
			}
		}
	}
	if fb.At(45, 30) == black {
		t.Error("expected sprite pixels at column 45")
	}
}

func TestSpriteEqualDepthIsOccluded(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	depth := NewDepthBuffer(80)
	depth.Fill(0, 80, 200)

	p := pose(150, 150, 0)
	sprites := []*sprite.Sprite{sprite.New(350, 150, 'e')}
	sprite.UpdateDistances(sprites, p)

	if n := testCompositor().Composite(fb, depth, p, sprites, testTextures()); n != 0 {
		t.Errorf("sprite at exactly the wall depth wrote %d pixels", n)
	}
}

func TestSpriteCulling(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"behind camera", 50, 150},
		{"outside field of view", 150, 350},
		{"beyond max distance", 1300, 150},
		{"closer than min distance", 155, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(80, 60)
			depth := NewDepthBuffer(80)
			p := pose(150, 150, 0)
			sprites := []*sprite.Sprite{sprite.New(tt.x, tt.y, 'e')}
			sprite.UpdateDistances(sprites, p)

			if n := testCompositor().Composite(fb, depth, p, sprites, testTextures()); n != 0 {
				t.Errorf("expected sprite to be culled, wrote %d pixels", n)
			}
		})
	}
}

func TestSpriteNearestDrawnLast(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	depth := NewDepthBuffer(80)
	p := pose(150, 150, 0)

	// Deliberately near first; compositing order must not depend on input order.
	sprites := []*sprite.Sprite{
		sprite.New(300, 150, 'b'),
		sprite.New(450, 150, 'e'),
	}
	for _, s := range sprites {
		dx, dy := s.X-p.X, s.Y-p.Y
		s.Distance = math.Hypot(dx, dy)
		s.Angle = math.Atan2(dy, dx)
	}

	testCompositor().Composite(fb, depth, p, sprites, testTextures())
	if c := fb.At(40, 30); c.B == 0 || c.R != 0 {
		t.Errorf("center pixel %v should belong to the nearer blue sprite", c)
	}
}

func TestSpriteTransparency(t *testing.T) {
	// Left half magenta, right half red
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.SetRGBA(x, y, graphics.Magenta)
			} else {
				img.SetRGBA(x, y, red)
			}
		}
	}
	tm := graphics.NewTextureManager(solidTexture('#', gray))
	tm.Add(graphics.NewTexture('e', img, graphics.AlphaKey{Threshold: 128, Key: graphics.Magenta}))

	fb := NewFramebuffer(80, 60)
	fb.Clear(black)
	depth := NewDepthBuffer(80)
	p := pose(150, 150, 0)
	sprites := []*sprite.Sprite{sprite.New(350, 150, 'e')}
	sprite.UpdateDistances(sprites, p)

	testCompositor().Composite(fb, depth, p, sprites, tm)

	// Sprite spans columns 25..55; its left half is keyed out.
	if c := fb.At(30, 30); c != black {
		t.Errorf("keyed texel drawn as %v", c)
	}
	if c := fb.At(50, 30); c.R == 0 {
		t.Errorf("opaque texel missing, got %v", c)
	}
}

func TestSpriteLuminanceMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	tm := graphics.NewTextureManager(solidTexture('#', gray))
	tm.Add(graphics.NewTexture('w', img, graphics.LuminanceMask{Low: 16, High: 240}))

	fb := NewFramebuffer(80, 60)
	depth := NewDepthBuffer(80)
	p := pose(150, 150, 0)
	sprites := []*sprite.Sprite{sprite.New(350, 150, 'w')}
	sprite.UpdateDistances(sprites, p)

	if n := testCompositor().Composite(fb, depth, p, sprites, tm); n != 0 {
		t.Errorf("an all-black wisp should be fully masked, wrote %d pixels", n)
	}
}

func TestSpriteMinimumBrightness(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	depth := NewDepthBuffer(80)
	p := pose(150, 150, 0)
	sprites := []*sprite.Sprite{sprite.New(1050, 150, 'e')}
	sprite.UpdateDistances(sprites, p)

	sc := testCompositor()
	sc.MaxDistance = 2000
	sc.MinBrightness = 0.6
	// Raw falloff at 900 of 2000 would be 0.55; the floor lifts it to 0.6.
	sc.Composite(fb, depth, p, sprites, testTextures())

	if got := fb.At(40, 30).R; got != 153 {
		t.Errorf("center red = %d, want 153", got)
	}
}
