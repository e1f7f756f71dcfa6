package chart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette saturation and lightness; hues are spread evenly.
const (
	paletteSaturation = 0.65
	paletteLightness  = 0.60
	paletteHueOffset  = 15.0
)

// HuePalette returns n colors with evenly spaced hues at constant
// saturation and lightness.
func HuePalette(n int) []drawing.Color {
	out := make([]drawing.Color, n)
	for i := range out {
		h := math.Mod(paletteHueOffset+float64(i)*360/float64(n), 360)
		out[i] = hsl(h, paletteSaturation, paletteLightness)
	}
	return out
}

// hsl converts hue in degrees, saturation and lightness in [0,1].
func hsl(h, s, l float64) drawing.Color {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return drawing.Color{R: channel(r + m), G: channel(g + m), B: channel(b + m), A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
