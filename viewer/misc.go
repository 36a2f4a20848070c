package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func DrawLine(screen *ebiten.Image, startX, startY, endX, endY float32, col color.Color) {
	vector.StrokeLine(screen, startX, startY, endX, endY, 1, col, true)
}

func DrawDot(screen *ebiten.Image, x, y, size float32, col color.Color) {
	vector.DrawFilledCircle(screen, x, y, size/2, col, true)
}

// dim scales the colour towards black by f.
func dim(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
