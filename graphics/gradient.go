package graphics

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// Rainbow runs pink, red, orange, yellow, green, turquoise, blue, violet
// and back to pink.
var Rainbow = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},
	{87.0, 0.14},
	{88.0, 0.28},
	{98.0, 0.42},
	{180.0, 0.56},
	{190.0, 0.70},
	{320.0, 0.84},
	{328.0, 0.91},
	{360.0, 1.0},
}

// At returns the colour at position t in [0, 1] with the given chroma and
// luminance.
func (g GradientTable) At(t, c, l float64) Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return Color{Color: colorful.Hcl(h, c, l).Clamped(), A: 1}
		}
	}

	// past the last key
	return Color{Color: colorful.Hcl(g[len(g)-1].Hue, c, l).Clamped(), A: 1}
}
