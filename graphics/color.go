package graphics

import (
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB colour with straight alpha.
type Color struct {
	colorful.Color
	A float64
}

// Common colours.
var (
	Red    = RGB(1, 0, 0)
	Green  = RGB(0, 1, 0)
	Blue   = RGB(0, 0, 1)
	Gray   = RGB(0.5, 0.5, 0.5)
	Yellow = RGB(1, 1, 0)
	Black  = RGB(0, 0, 0)
	White  = RGB(1, 1, 1)
)

// RGB creates an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: 1}
}

// RGBA creates a colour with alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// Hex parses "#rrggbb". Invalid input yields black.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black
	}
	return Color{Color: c, A: 1}
}

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Blend mixes c towards o in HCL space.
func (c Color) Blend(o Color, t float64) Color {
	return Color{
		Color: c.BlendHcl(o.Color, t).Clamped(),
		A:     c.A + (o.A-c.A)*t,
	}
}

// GG converts c to the drawing surface's colour type.
func (c Color) GG() gg.RGBA {
	cc := c.Clamped()
	return gg.RGBA{R: cc.R, G: cc.G, B: cc.B, A: c.A}
}

func (c Color) apply(dc *gg.Context) {
	cc := c.Clamped()
	dc.SetRGBA(cc.R, cc.G, cc.B, c.A)
}
