package hopf3d

import (
	"image/color"
	"math"
)

// RGB is an integer colour triple in [0,255].
type RGB struct {
	R, G, B int
}

// HSV holds hue, saturation and value. Hue wraps every 1.0.
type HSV struct {
	H, S, V float64
}

// Color is a display colour with components in [0,1].
type Color struct {
	R, G, B float64
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(clampUnit(c.R) * 255)),
		G: uint8(math.Round(clampUnit(c.G) * 255)),
		B: uint8(math.Round(clampUnit(c.B) * 255)),
		A: 255,
	}
}

// RGB converts the record form.
func (c HSV) RGB() RGB {
	return HSVToRGB(c.H, c.S, c.V)
}

// HSVToRGB is the usual six sector conversion.
func HSVToRGB(h, s, v float64) RGB {
	fl := math.Floor(h * 6)
	f := h*6 - fl
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	sector := int(fl) % 6
	if sector < 0 {
		sector += 6
	}

	var r, g, b float64
	switch sector {
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

	return RGB{
		R: int(math.Round(r * 255)),
		G: int(math.Round(g * 255)),
		B: int(math.Round(b * 255)),
	}
}

// rainbowSpan keeps the gradient short of wrapping back to red.
const rainbowSpan = 0.85

// Rainbow returns the colour of index i out of n.
func Rainbow(i, n int) Color {
	hue := 0.0
	if n > 0 {
		hue = float64(i) / float64(n) * rainbowSpan
	}
	rgb := HSVToRGB(hue, 1.0, 1.0)
	return Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
