package metrics

import (
	"math"

	"github.com/san-kum/plife/internal/life"
)

// Spread measures clustering: the mean distance of particles from their
// own group's centroid, averaged over groups. Tight clusters drive it
// toward zero; a uniform gas keeps it near the world scale.
type Spread struct {
	last    float64
	total   float64
	samples int
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(reg *life.Registry, t float64) {
	sum := 0.0
	groups := 0
	for i := 0; i < reg.Len(); i++ {
		g := reg.At(i)
		if len(g.Particles) == 0 {
			continue
		}
		var cx, cy float64
		for _, p := range g.Particles {
			cx += p.X
			cy += p.Y
		}
		n := float64(len(g.Particles))
		cx /= n
		cy /= n

		d := 0.0
		for _, p := range g.Particles {
			d += math.Hypot(p.X-cx, p.Y-cy)
		}
		sum += d / n
		groups++
	}
	if groups > 0 {
		s.last = sum / float64(groups)
	} else {
		s.last = 0
	}
	s.total += s.last
	s.samples++
}

func (s *Spread) Last() float64 { return s.last }

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Reset() {
	s.last = 0
	s.total = 0
	s.samples = 0
}
