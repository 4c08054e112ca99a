package scene

import (
	"container/list"
	"math"
	"math/rand"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/framecast/graphics"
	"github.com/matt-g-everett/framecast/stream"
)

type streakParticle struct {
	colour    graphics.Color
	row       float64
	start     float64
	current   float64
	increment float64
	length    float64
	gainRate  float64
}

func (p *streakParticle) incrementPosition(width float64) bool {
	p.current += p.increment
	if p.current > width {
		return false
	} else if p.current < 0-p.length {
		return false
	}

	return true
}

func (p *streakParticle) easeDistance() float64 {
	return math.Abs(p.current-p.start) * p.gainRate
}

// overallGain fades a streak in over its first unit of ease distance and
// out over the second.
func overallGain(easeDistance float64) float64 {
	if easeDistance > 2 {
		return 0
	} else if easeDistance > 1 {
		easeDistance = 1 - (easeDistance - 1)
	}

	return ease.InOutQuad(easeDistance)
}

// Streak sends coloured streaks along the rows of the frame that fade in
// then out.
type Streak struct {
	rng          *rand.Rand
	backColour   graphics.Color
	streakChance int32
	rowHeight    float64
	width        float64
	rows         int
	particles    *list.List
}

// NewStreak creates the scene for r. The same seed gives the same video.
func NewStreak(r *stream.Renderer, seed int64) *Streak {
	w, h := r.FrameSize()
	s := &Streak{
		rng:          rand.New(rand.NewSource(seed)),
		backColour:   graphics.Hex("#050510"),
		streakChance: int32(max(1, r.FPS()/10)),
		rowHeight:    20,
		width:        float64(w),
		particles:    list.New(),
	}
	s.rows = max(1, int(float64(h)/s.rowHeight))
	return s
}

func (s *Streak) newParticle() *streakParticle {
	p := &streakParticle{
		colour:    graphics.Rainbow.At(s.rng.Float64(), 0.9, 0.6),
		row:       float64(s.rng.Intn(s.rows)) * s.rowHeight,
		length:    s.width * (0.05 + 0.1*s.rng.Float64()),
		increment: s.width * (0.004 + 0.008*s.rng.Float64()),
	}
	p.start = s.rng.Float64() * s.width * 0.5
	p.current = p.start
	p.gainRate = 2 / (s.width - p.start + p.length)
	return p
}

// Draw implements Scene.
func (s *Streak) Draw(f *stream.Frame, _ float64) error {
	dc := f.Context()
	graphics.Clear(dc, s.backColour)

	var toDelete []*list.Element
	for e := s.particles.Front(); e != nil; e = e.Next() {
		p := e.Value.(*streakParticle)
		if !p.incrementPosition(s.width) {
			toDelete = append(toDelete, e)
			continue
		}

		d := p.easeDistance()
		if d > 2 {
			toDelete = append(toDelete, e)
			continue
		}
		c := s.backColour.Blend(p.colour, overallGain(d))
		if err := graphics.FillRectangle(dc, p.current, p.row, p.length, s.rowHeight-2, c); err != nil {
			return err
		}
	}

	if s.rng.Int31n(s.streakChance) == 0 {
		s.particles.PushBack(s.newParticle())
	}

	for _, e := range toDelete {
		s.particles.Remove(e)
	}
	return nil
}
