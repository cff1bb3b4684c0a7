package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"mazerunner/internal/graphics"
	"mazerunner/internal/raycast"
	"mazerunner/internal/world"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	gray  = color.RGBA{100, 100, 100, 255}
)

func mustGrid(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	g, err := world.ParseMap(rows, 100)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	return g
}

func solidTexture(tag rune, c color.RGBA) *graphics.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return graphics.NewTexture(tag, img, nil)
}

// gradientTexture encodes texel coordinates in the colour: R = x*20, G = y*20.
func gradientTexture(tag rune) *graphics.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 20), uint8(y * 20), 0, 255})
		}
	}
	return graphics.NewTexture(tag, img, nil)
}

func testTextures() *graphics.TextureManager {
	tm := graphics.NewTextureManager(solidTexture('#', gray))
	tm.Add(solidTexture('e', red))
	tm.Add(solidTexture('b', blue))
	return tm
}

func testColumns() ColumnRenderer {
	return ColumnRenderer{
		March:           raycast.Options{Step: 10, Refine: 8},
		ColumnStep:      1,
		ProjectionPlane: 100,
		MaxDistance:     1000,
		MinDistance:     1,
	}
}

func testCompositor() *SpriteCompositor {
	return &SpriteCompositor{Scale: 100, MaxDistance: 1000, MinDistance: 10, MinBrightness: 0.6}
}

func pose(x, y, angle float64) raycast.Pose {
	return raycast.Pose{X: x, Y: y, Angle: angle, FOV: math.Pi / 3}
}
