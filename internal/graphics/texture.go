package graphics

import (
	"fmt"
	"image"
	"image/color"

	"mazerunner/internal/mathutil"

	xdraw "golang.org/x/image/draw"
)

// Magenta is the chroma key used by sprite sheets without an alpha channel.
var Magenta = color.RGBA{255, 0, 255, 255}

// TransparencyPolicy decides which texels a sprite compositor skips.
// One policy is active per texture set.
type TransparencyPolicy interface {
	Transparent(c color.RGBA) bool
	Name() string
}

// AlphaKey skips texels whose alpha is below Threshold or that equal Key.
type AlphaKey struct {
	Threshold uint8
	Key       color.RGBA
}

func (p AlphaKey) Transparent(c color.RGBA) bool {
	if c.A < p.Threshold {
		return true
	}
	return c.R == p.Key.R && c.G == p.Key.G && c.B == p.Key.B
}

func (p AlphaKey) Name() string {
	return fmt.Sprintf("alpha_key(threshold=%d, key=#%02x%02x%02x)", p.Threshold, p.Key.R, p.Key.G, p.Key.B)
}

// LuminanceMask skips near-black and near-white texels, for art without a
// usable alpha channel.
type LuminanceMask struct {
	Low  uint8
	High uint8
}

func (p LuminanceMask) Transparent(c color.RGBA) bool {
	l := Luminance(c)
	return l <= float64(p.Low) || l >= float64(p.High)
}

func (p LuminanceMask) Name() string {
	return fmt.Sprintf("luminance_mask(low=%d, high=%d)", p.Low, p.High)
}

// Luminance returns the Rec. 601 luma of c in [0, 255].
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// DefaultPolicy is the policy used when a set does not name one.
var DefaultPolicy TransparencyPolicy = AlphaKey{Threshold: 128, Key: Magenta}

// Texture is an immutable RGBA image tagged with a map symbol.
type Texture struct {
	Tag    rune
	Width  int
	Height int
	Set    string

	img    *image.RGBA
	policy TransparencyPolicy
}

// NewTexture copies src into a texture. A nil policy selects DefaultPolicy.
func NewTexture(tag rune, src image.Image, policy TransparencyPolicy) *Texture {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(img, image.Point{}, src, b, xdraw.Src, nil)
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Texture{
		Tag:    tag,
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
		policy: policy,
	}
}

// At returns the texel at (x, y). Coordinates outside the image are clamped.
func (t *Texture) At(x, y int) color.RGBA {
	x = mathutil.ClampInt(x, 0, t.Width-1)
	y = mathutil.ClampInt(y, 0, t.Height-1)
	return t.img.RGBAAt(x, y)
}

// Size returns the texture dimensions
func (t *Texture) Size() (w, h int) {
	return t.Width, t.Height
}

// Transparent applies the texture set's policy to c
func (t *Texture) Transparent(c color.RGBA) bool {
	return t.policy.Transparent(c)
}

// Policy returns the active transparency policy
func (t *Texture) Policy() TransparencyPolicy {
	return t.policy
}
