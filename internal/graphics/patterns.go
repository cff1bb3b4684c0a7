package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var ErrUnknownPattern = errors.New("unknown texture pattern")

// GeneratePattern draws a procedural texture of size x size pixels. colors
// supplies the palette; missing entries fall back to grey tones.
func GeneratePattern(name string, size int, colors []color.RGBA) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pattern %q: size must be positive, got %d", name, size)
	}
	pick := func(i int, fallback color.RGBA) color.RGBA {
		if i < len(colors) {
			return colors[i]
		}
		return fallback
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	switch name {
	case "solid":
		fill(img, pick(0, color.RGBA{128, 128, 128, 255}))

	case "brick":
		brick := pick(0, color.RGBA{150, 60, 40, 255})
		mortar := pick(1, color.RGBA{200, 190, 170, 255})
		rowH := max(size/4, 2)
		brickW := max(size/2, 2)
		for y := 0; y < size; y++ {
			shift := 0
			if (y/rowH)%2 == 1 {
				shift = brickW / 2
			}
			for x := 0; x < size; x++ {
				c := brick
				if y%rowH == 0 || (x+shift)%brickW == 0 {
					c = mortar
				}
				img.SetRGBA(x, y, c)
			}
		}

	case "stripes":
		a := pick(0, color.RGBA{30, 160, 60, 255})
		b := pick(1, color.RGBA{230, 230, 230, 255})
		band := max(size/8, 1)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if (x/band)%2 == 0 {
					img.SetRGBA(x, y, a)
				} else {
					img.SetRGBA(x, y, b)
				}
			}
		}

	case "checker":
		a := pick(0, color.RGBA{90, 90, 90, 255})
		b := pick(1, color.RGBA{160, 160, 160, 255})
		cell := max(size/8, 1)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if (x/cell+y/cell)%2 == 0 {
					img.SetRGBA(x, y, a)
				} else {
					img.SetRGBA(x, y, b)
				}
			}
		}

	case "ghost":
		// A round glowing body on black; meant for luminance-masked sets.
		body := pick(0, color.RGBA{120, 200, 255, 255})
		eye := pick(1, color.RGBA{20, 20, 40, 255})
		fill(img, color.RGBA{0, 0, 0, 255})
		c := float64(size) / 2
		r := c * 0.8
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
				if d <= r {
					img.SetRGBA(x, y, body)
				}
			}
		}
		eyeR := math.Max(r*0.15, 1)
		for _, ex := range []float64{c - r*0.35, c + r*0.35} {
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					if math.Hypot(float64(x)+0.5-ex, float64(y)+0.5-(c-r*0.2)) <= eyeR {
						img.SetRGBA(x, y, eye)
					}
				}
			}
		}

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPattern, name)
	}
	return img, nil
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}
