package scene

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/framecast/animate"
	"github.com/matt-g-everett/framecast/graphics"
	"github.com/matt-g-everett/framecast/stream"
)

// Axes draws a coordinate grid, moves a point along the x axis and then
// traces a circle around the origin.
type Axes struct {
	width   float64
	height  float64
	spacing float64
	radius  float64

	pointMove animate.Animator
	circle    animate.Animator
}

// NewAxes creates the scene for r.
func NewAxes(r *stream.Renderer) (*Axes, error) {
	w, h := r.FrameSize()
	return &Axes{
		width:     float64(w),
		height:    float64(h),
		spacing:   50,
		radius:    4,
		pointMove: animate.New(seconds(r, 1), seconds(r, 4), ease.InOutCubic, animate.Stop),
		circle:    animate.New(seconds(r, 4), seconds(r, 12), ease.InOutCubic, animate.RepeatEnd),
	}, nil
}

// Draw implements Scene.
func (a *Axes) Draw(f *stream.Frame, t float64) error {
	dc := f.Context()
	graphics.Clear(dc, graphics.Black)

	if err := a.drawAxes(f); err != nil {
		return err
	}
	if err := a.drawGrid(f); err != nil {
		return err
	}

	cx, cy := a.width/2, a.height/2
	if err := graphics.DrawText(dc, "x", a.width-60, cy-60, 32, graphics.White); err != nil {
		return err
	}
	if err := graphics.DrawText(dc, "y", cx+30, 10, 32, graphics.White); err != nil {
		return err
	}

	var err error
	a.pointMove.Draw(t, func(p float64) {
		x := cx + a.radius*a.spacing*p
		err = a.drawPoint(f, x, cy)
	})
	if err != nil {
		return err
	}

	a.circle.Draw(t, func(p float64) {
		err = a.drawTrace(f, p)
	})
	return err
}

func (a *Axes) drawAxes(f *stream.Frame) error {
	dc := f.Context()
	cx, cy := a.width/2, a.height/2
	if err := graphics.DrawLine(dc, 0, cy+1, a.width, cy+1, 2, graphics.White); err != nil {
		return err
	}
	return graphics.DrawLine(dc, cx, 0, cx, a.height, 2, graphics.White)
}

func (a *Axes) drawGrid(f *stream.Frame) error {
	dc := f.Context()
	for x := 0.0; x < a.width; x += a.spacing {
		if err := graphics.DrawLine(dc, x, 0, x, a.height, 1, graphics.Gray); err != nil {
			return err
		}
	}
	for y := 0.0; y < a.height; y += a.spacing {
		if err := graphics.DrawLine(dc, 0, y, a.width, y, 1, graphics.Gray); err != nil {
			return err
		}
	}
	return nil
}

// drawPoint draws a yellow dot at (x, y) labelled with its grid coordinates.
func (a *Axes) drawPoint(f *stream.Frame, x, y float64) error {
	dc := f.Context()
	fill := graphics.Yellow
	if err := graphics.DrawCircle(dc, x, y, 5, 10, graphics.Yellow, &fill); err != nil {
		return err
	}

	gx := (x - a.width/2) / a.spacing
	gy := -(y - a.height/2) / a.spacing
	label := fmt.Sprintf("(%.2f, %.2f)", noNegativeZero(gx), noNegativeZero(gy))
	return graphics.DrawText(dc, label, x+10, y-70, 32, graphics.White)
}

func (a *Axes) drawTrace(f *stream.Frame, p float64) error {
	dc := f.Context()
	cx, cy := a.width/2, a.height/2
	r := a.radius * a.spacing

	angle := math.Pi/2 + 2*math.Pi*p
	x := cx + math.Sin(angle)*r
	y := cy + math.Cos(angle)*r

	if p != 1 {
		if err := graphics.DrawLine(dc, cx, cy, x, y, 2, graphics.White); err != nil {
			return err
		}
	}
	if err := graphics.DrawArc(dc, cx, cy, r, math.Pi/2-angle, 0, 4, graphics.White); err != nil {
		return err
	}
	return a.drawPoint(f, x, y)
}

// noNegativeZero stops tiny negative values printing as "-0.00".
func noNegativeZero(v float64) float64 {
	if v > -0.005 && v < 0.005 {
		return 0
	}
	return v
}
