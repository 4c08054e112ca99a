package scene

import (
	"math/rand"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/framecast/animate"
	"github.com/matt-g-everett/framecast/graphics"
	"github.com/matt-g-everett/framecast/stream"
	"github.com/matt-g-everett/framecast/util"
)

type particle struct {
	lut     []float64
	current int
	running bool
	hue     float64
}

func (p *particle) scintillate() bool {
	started := !p.running
	p.running = true
	return started
}

func (p *particle) increment() {
	if !p.running {
		return
	}
	p.current++
	if p.current == len(p.lut)-1 {
		p.current = 0
		p.running = false
	}
}

func (p *particle) gain() float64 {
	if !p.running {
		return 0
	}
	return p.lut[p.current]
}

// Twinkle fills the frame with a grid of dots that randomly flare up in
// rainbow colours.
type Twinkle struct {
	rng      *rand.Rand
	memoizer util.Memoizer

	cell       float64
	cols, rows int
	particles  []*particle
	chance     int32

	backColour graphics.Color
	fadeIn     animate.Animator
}

// NewTwinkle creates the scene for r. The same seed gives the same video.
func NewTwinkle(r *stream.Renderer, seed int64) *Twinkle {
	w, h := r.FrameSize()
	t := &Twinkle{
		rng:        rand.New(rand.NewSource(seed)),
		memoizer:   util.Memoizer{},
		cell:       25,
		chance:     int32(4 * r.FPS()),
		backColour: graphics.Hex("#100505"),
		fadeIn:     animate.New(0, seconds(r, 1), ease.InQuad, animate.RepeatEnd),
	}
	t.cols = int(float64(w)/t.cell) + 1
	t.rows = int(float64(h)/t.cell) + 1

	t.particles = make([]*particle, t.cols*t.rows)
	for i := range t.particles {
		t.particles[i] = &particle{
			lut: util.GenerateLutMemoized((t.rng.Intn(18)+6)*2, t.memoizer),
			hue: t.rng.Float64(),
		}
	}
	return t
}

// Draw implements Scene.
func (t *Twinkle) Draw(f *stream.Frame, now float64) error {
	dc := f.Context()
	graphics.Clear(dc, graphics.Black)

	var err error
	t.fadeIn.Draw(now, func(fade float64) {
		for i, p := range t.particles {
			if t.rng.Int31n(t.chance) == 0 && p.scintillate() {
				p.hue = t.rng.Float64()
			}
			p.increment()

			g := p.gain()
			c := t.backColour.Blend(graphics.Rainbow.At(p.hue, 1, 0.6), g).WithAlpha(fade)
			x := (float64(i%t.cols) + 0.5) * t.cell
			y := (float64(i/t.cols) + 0.5) * t.cell
			radius := t.cell * (0.15 + 0.25*g)
			if err = graphics.DrawCircle(dc, x, y, radius, 1, c, &c); err != nil {
				return
			}
		}
	})
	return err
}
