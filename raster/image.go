package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ValidationHue is the preset gold hue used for visual validation renders,
// where every entity is colorized with the same well-separated color so a
// human can spot-check the output.
const ValidationHue = 0.14052287581699346

// Image is a single rendered page in RGB, with per-pixel access in
// hue/saturation/value space. Images are immutable once constructed and
// safe for concurrent reads.
type Image struct {
	rgba *image.RGBA
}

// FromImage wraps a decoded image, converting it to RGB storage if needed.
func FromImage(src image.Image) *Image {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return &Image{rgba: rgba}
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return &Image{rgba: rgba}
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.rgba.Rect.Dx()
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.rgba.Rect.Dy()
}

// RGBAAt returns the raw color of the pixel at (x, y).
func (m *Image) RGBAAt(x, y int) color.RGBA {
	return m.rgba.RGBAAt(x, y)
}

// HSVAt returns the hue, saturation, and value of the pixel at (x, y).
// Hue is in [0, 1); saturation and value are in [0, 1]. The hue of a
// zero-saturation pixel is reported as 0 and carries no meaning, which is
// why callers gate hue matching on saturation.
func (m *Image) HSVAt(x, y int) (h, s, v float64) {
	c := m.rgba.RGBAAt(x, y)
	return rgbToHSV(c.R, c.G, c.B)
}

// rgbToHSV converts 8-bit RGB to normalized hue/saturation/value.
func rgbToHSV(r8, g8, b8 uint8) (h, s, v float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max
	}
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case r:
		h = (g - b) / delta
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

// HSVToRGB converts normalized hue/saturation/value to an opaque RGB color.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = h - math.Floor(h) // wrap into [0,1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 255,
	}
}

// HueDistance returns the circular distance between two hues, accounting
// for wraparound at the top of the range. The result is in [0, 0.5].
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

// Diff compares a colorized render against the baseline render of the same
// page. Pixels that are identical in both images cancel to white, so only
// the content that changed (the colorized entities) remains visible. Both
// images must have the same dimensions; pixels outside the overlap of
// mismatched images are left as the colorized pixel.
func Diff(colorized, baseline *Image) *Image {
	w := colorized.Width()
	h := colorized.Height()

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colorized.RGBAAt(x, y)
			if x < baseline.Width() && y < baseline.Height() && c == baseline.RGBAAt(x, y) {
				out.SetRGBA(x, y, white)
			} else {
				out.SetRGBA(x, y, c)
			}
		}
	}

	return &Image{rgba: out}
}
