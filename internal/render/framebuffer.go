package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"mazerunner/internal/mathutil"
)

// Framebuffer is the pixel target of one frame. Writes outside the buffer
// are ignored and reads are clamped, so per-pixel loops never fail.
type Framebuffer struct {
	Width  int
	Height int
	img    *image.RGBA
}

// NewFramebuffer allocates a cleared framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Set writes one pixel; out-of-range coordinates are a no-op
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// At reads one pixel, clamping coordinates into the buffer
func (fb *Framebuffer) At(x, y int) color.RGBA {
	x = mathutil.ClampInt(x, 0, fb.Width-1)
	y = mathutil.ClampInt(y, 0, fb.Height-1)
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Clear fills the whole buffer with c
func (fb *Framebuffer) Clear(c color.RGBA) {
	fillRows(fb, 0, fb.Height, c)
}

// FillBackground paints the sky over the top half and the floor below it
func (fb *Framebuffer) FillBackground(sky, floor color.RGBA) {
	half := fb.Height / 2
	fillRows(fb, 0, half, sky)
	fillRows(fb, half, fb.Height, floor)
}

func fillRows(fb *Framebuffer, from, to int, c color.RGBA) {
	if from >= to {
		return
	}
	pix := fb.img.Pix[from*fb.img.Stride : to*fb.img.Stride]
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Pix returns the raw RGBA bytes, row-major with no padding
func (fb *Framebuffer) Pix() []byte {
	return fb.img.Pix
}

// WritePNG encodes the current frame
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.img)
}

// Shade scales the RGB channels of c by k and forces full opacity
func Shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: mathutil.ClampByte(float64(c.R) * k),
		G: mathutil.ClampByte(float64(c.G) * k),
		B: mathutil.ClampByte(float64(c.B) * k),
		A: 255,
	}
}

// DepthBuffer holds the nearest wall distance per screen column.
// Reset fills it with +Inf, meaning nothing to occlude against.
type DepthBuffer struct {
	values []float64
}

// NewDepthBuffer allocates a reset depth buffer
func NewDepthBuffer(columns int) *DepthBuffer {
	db := &DepthBuffer{values: make([]float64, columns)}
	db.Reset()
	return db
}

// Reset marks every column as empty
func (db *DepthBuffer) Reset() {
	inf := math.Inf(1)
	for i := range db.values {
		db.values[i] = inf
	}
}

// Len returns the number of columns
func (db *DepthBuffer) Len() int {
	return len(db.values)
}

// At returns the depth of a column; columns outside the buffer are +Inf
func (db *DepthBuffer) At(x int) float64 {
	if x < 0 || x >= len(db.values) {
		return math.Inf(1)
	}
	return db.values[x]
}

// Fill records d for columns [from, to)
func (db *DepthBuffer) Fill(from, to int, d float64) {
	from = mathutil.ClampInt(from, 0, len(db.values))
	to = mathutil.ClampInt(to, 0, len(db.values))
	for x := from; x < to; x++ {
		db.values[x] = d
	}
}
