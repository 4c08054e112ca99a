package scene

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/framecast/graphics"
	"github.com/matt-g-everett/framecast/stream"
)

type stripe struct {
	colour graphics.Color
	length float64
}

// stripeGenerator picks random stripes, either from a palette or from
// random hues.
type stripeGenerator struct {
	rng       *rand.Rand
	palette   []graphics.Color
	current   int
	stripeMin float64
	stripeMax float64
}

func (g *stripeGenerator) next() stripe {
	var colour graphics.Color
	if len(g.palette) < 2 {
		colour = graphics.Color{Color: colorful.Hsl(g.rng.Float64()*360.0, 1.0, 0.35), A: 1}
	} else {
		// never the same colour twice in a row
		for {
			n := g.rng.Intn(len(g.palette))
			if n != g.current {
				g.current = n
				break
			}
		}
		colour = g.palette[g.current]
	}

	return stripe{colour, g.stripeMin + g.rng.Float64()*(g.stripeMax-g.stripeMin)}
}

// Stripes scrolls an endless run of coloured bands across the frame, wider
// towards the right, over a gradient trail along the bottom edge.
type Stripes struct {
	gen        stripeGenerator
	stripes    []stripe
	current    float64
	speed      float64
	duration   float64
	lastT      float64
	adjusted   bool
	width      float64
	height     float64
	trailSpeed float64
}

// NewStripes creates the scene for r. The same seed gives the same video.
func NewStripes(r *stream.Renderer, seed int64) *Stripes {
	w, h := r.FrameSize()
	s := &Stripes{
		gen: stripeGenerator{
			rng:       rand.New(rand.NewSource(seed)),
			stripeMin: float64(w) / 12,
			stripeMax: float64(w) / 4,
		},
		speed:      float64(w) / 3,
		duration:   r.Duration(),
		adjusted:   true,
		width:      float64(w),
		height:     float64(h),
		trailSpeed: 0.25,
	}
	return s
}

// stripeAt returns the stripe covering offset and the offset where it ends,
// growing the run as needed.
func (s *Stripes) stripeAt(offset float64) (stripe, float64) {
	if len(s.stripes) == 0 {
		s.stripes = append(s.stripes, s.gen.next())
	}

	end := 0.0
	for _, st := range s.stripes {
		end += st.length
		if offset < end {
			return st, end
		}
	}

	for offset >= end {
		st := s.gen.next()
		s.stripes = append(s.stripes, st)
		end += st.length
	}
	return s.stripes[len(s.stripes)-1], end
}

// Draw implements Scene.
func (s *Stripes) Draw(f *stream.Frame, t float64) error {
	dc := f.Context()
	graphics.Clear(dc, graphics.Black)

	// cull stripes that have scrolled past
	for len(s.stripes) > 0 && s.current > s.stripes[0].length {
		s.current -= s.stripes[0].length
		s.stripes = s.stripes[1:]
	}

	trail := s.height * 0.08
	bandHeight := s.height - trail
	const step = 4.0
	for x := 0.0; x < s.width; x += step {
		factor := 1.0
		if s.adjusted {
			factor = 1.0 + 1.4*(x/s.width)
		}
		st, _ := s.stripeAt(factor*x + s.current)
		if err := graphics.FillRectangle(dc, x, 0, step, bandHeight, st.colour); err != nil {
			return err
		}

		pos := math.Mod(x/s.width+t*s.duration*s.trailSpeed, 1)
		if err := graphics.FillRectangle(dc, x, bandHeight, step, trail, graphics.Rainbow.At(pos, 1, 0.5)); err != nil {
			return err
		}
	}

	s.current += s.speed * (t - s.lastT) * s.duration
	s.lastT = t
	return nil
}
