package render

import (
	"math"
	"sort"

	"mazerunner/internal/graphics"
	"mazerunner/internal/mathutil"
	"mazerunner/internal/raycast"
	"mazerunner/internal/sprite"
)

// SpriteCompositor projects billboards and blends them over the walls,
// testing every pixel against the depth buffer.
type SpriteCompositor struct {
	Scale         float64
	MaxDistance   float64
	MinDistance   float64
	MinBrightness float64

	order []*sprite.Sprite // reused between frames
}

// Composite draws sprites far to near using their cached Distance and Angle
// and returns the number of pixels written.
func (sc *SpriteCompositor) Composite(fb *Framebuffer, depth *DepthBuffer, p raycast.Pose, sprites []*sprite.Sprite, textures graphics.Lookup) int {
	sc.order = append(sc.order[:0], sprites...)
	sort.SliceStable(sc.order, func(i, j int) bool {
		return sc.order[i].Distance > sc.order[j].Distance
	})

	written := 0
	for _, s := range sc.order {
		written += sc.draw(fb, depth, p, s, textures)
	}
	return written
}

func (sc *SpriteCompositor) draw(fb *Framebuffer, depth *DepthBuffer, p raycast.Pose, s *sprite.Sprite, textures graphics.Lookup) int {
	dist := s.Distance
	if dist > sc.MaxDistance || dist < sc.MinDistance || dist <= 0 {
		return 0
	}
	offset := mathutil.NormalizeAngle(s.Angle - p.Angle)
	halfFOV := p.FOV / 2
	if math.Abs(offset) > halfFOV {
		return 0
	}

	w, h := float64(fb.Width), float64(fb.Height)
	size := h / dist * sc.Scale
	screenX := w/2 + offset/halfFOV*w/2
	left := screenX - size/2
	top := h/2 - size/2

	xStart := mathutil.ClampInt(int(math.Floor(left)), 0, fb.Width)
	xEnd := mathutil.ClampInt(int(math.Ceil(left+size)), 0, fb.Width)
	yStart := mathutil.ClampInt(int(math.Floor(top)), 0, fb.Height)
	yEnd := mathutil.ClampInt(int(math.Ceil(top+size)), 0, fb.Height)

	tex := textures.Texture(s.Tag)
	texW, texH := tex.Size()
	intensity := math.Max(1-math.Min(dist/sc.MaxDistance, 1), sc.MinBrightness)

	written := 0
	for x := xStart; x < xEnd; x++ {
		if !(dist < depth.At(x)) {
			continue
		}
		texX := int((float64(x) - left) * float64(texW) / size)
		for y := yStart; y < yEnd; y++ {
			texY := int((float64(y) - top) * float64(texH) / size)
			c := tex.At(texX, texY)
			if tex.Transparent(c) {
				continue
			}
			fb.Set(x, y, Shade(c, intensity))
			written++
		}
	}
	return written
}
