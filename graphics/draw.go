// Package graphics holds the drawing primitives used by scenes. Each one
// starts a fresh path on the frame's paint context.
package graphics

import (
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// Face returns the built-in monospace face at size points.
func Face(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(gomono.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return fontSource.Face(size), nil
}

// Clear fills the whole frame with c, replacing what was there.
func Clear(dc *gg.Context, c Color) {
	dc.ClearWithColor(c.GG())
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dc *gg.Context, s string, x, y, size float64, c Color) error {
	face, err := Face(size)
	if err != nil {
		return err
	}
	dc.ClearPath()
	c.apply(dc)
	dc.SetFont(face)
	dc.DrawStringAnchored(s, x, y, 0, 0)
	return nil
}

// DrawLine strokes a line from (x1, y1) to (x2, y2).
func DrawLine(dc *gg.Context, x1, y1, x2, y2, thickness float64, c Color) error {
	dc.ClearPath()
	c.apply(dc)
	dc.DrawLine(x1, y1, x2, y2)
	dc.SetLineWidth(thickness)
	return dc.Stroke()
}

// DrawRectangle strokes the outline of a rectangle.
func DrawRectangle(dc *gg.Context, x, y, width, height, thickness float64, c Color) error {
	dc.ClearPath()
	c.apply(dc)
	dc.DrawRectangle(x, y, width, height)
	dc.SetLineWidth(thickness)
	return dc.Stroke()
}

// DrawCircle strokes a circle and optionally fills it.
func DrawCircle(dc *gg.Context, x, y, radius, thickness float64, c Color, fill *Color) error {
	dc.ClearPath()
	c.apply(dc)
	dc.DrawCircle(x, y, radius)
	dc.SetLineWidth(thickness)
	if fill == nil {
		return dc.Stroke()
	}
	if err := dc.StrokePreserve(); err != nil {
		return err
	}
	fill.apply(dc)
	return dc.Fill()
}

// DrawArc strokes the arc of a circle from angle1 to angle2 (radians).
func DrawArc(dc *gg.Context, x, y, radius, angle1, angle2, thickness float64, c Color) error {
	if angle2 < angle1 {
		angle1, angle2 = angle2, angle1
	}
	if angle2-angle1 < 1e-9 {
		return nil
	}
	dc.ClearPath()
	c.apply(dc)
	dc.DrawArc(x, y, radius, angle1, math.Min(angle2, angle1+2*math.Pi))
	dc.SetLineWidth(thickness)
	return dc.Stroke()
}

// FillRectangle fills a rectangle with no outline.
func FillRectangle(dc *gg.Context, x, y, width, height float64, c Color) error {
	dc.ClearPath()
	c.apply(dc)
	dc.DrawRectangle(x, y, width, height)
	return dc.Fill()
}
