package scene

import (
	"context"
	"math"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/framecast/animate"
	"github.com/matt-g-everett/framecast/stream"
	"github.com/matt-g-everett/framecast/typst"
)

const (
	titleMarkup   = "#set text(fill: white, size: 20pt)\nEuler's identity"
	formulaMarkup = "#set text(fill: white, size: 28pt)\n$ e^(i pi) + 1 = 0 $"
)

// Equation slides a typeset title in from the left, then makes a formula
// breathe in the middle of the frame.
type Equation struct {
	width  float64
	height float64

	title      *typst.Document
	formula    *typst.Document
	builtScale float64

	slide animate.Animator
	pulse animate.Animator
}

// NewEquation typesets the scene's documents with compiler.
func NewEquation(ctx context.Context, r *stream.Renderer, compiler typst.VectorCompiler) (*Equation, error) {
	title, err := typst.Load(ctx, compiler, titleMarkup)
	if err != nil {
		return nil, err
	}
	formula, err := typst.Load(ctx, compiler, formulaMarkup)
	if err != nil {
		return nil, err
	}

	if err := title.Scale(2, 2).Build(); err != nil {
		return nil, err
	}

	w, h := r.FrameSize()
	return &Equation{
		width:   float64(w),
		height:  float64(h),
		title:   title,
		formula: formula,
		slide:   animate.New(seconds(r, 0.5), seconds(r, 2.5), ease.OutCubic, animate.RepeatEnd),
		pulse:   animate.New(seconds(r, 3), seconds(r, 5), ease.InOutSine, animate.Rewind),
	}, nil
}

// Draw implements Scene.
func (e *Equation) Draw(f *stream.Frame, t float64) error {
	tw, _ := e.title.Size()
	tw *= 2
	e.slide.Draw(t, func(p float64) {
		from, to := -tw, (e.width-tw)/2
		e.title.Translate(from+(to-from)*p, e.height*0.15).Render(f)
	})

	var err error
	e.pulse.Draw(t, func(p float64) {
		err = e.drawFormula(f, 3+p)
	})
	return err
}

func (e *Equation) drawFormula(f *stream.Frame, scale float64) error {
	// Rebuilding is the expensive part, so skip changes too small to see.
	if math.Abs(scale-e.builtScale) > 0.01 {
		if err := e.formula.Scale(scale, scale).Build(); err != nil {
			return err
		}
		e.builtScale = scale
	}

	w, h := e.formula.Size()
	w *= e.builtScale
	h *= e.builtScale
	e.formula.Translate((e.width-w)/2, (e.height-h)/2).Render(f)
	return nil
}
