package metrics

import (
	"github.com/san-kum/orbitsim/internal/physics"
)

// Stability is the fraction of observed steps in which every body stayed
// finite and within threshold of the barycentre. Distances are in world
// units, not display units.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sys *physics.System, t float64) {
	s.samples++
	if !sys.Valid() {
		s.violations++
		return
	}
	center := sys.MassCenter().Scale(1 / physics.PositionScale)
	for _, b := range sys.Bodies() {
		if b.Position.Sub(center).Length() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
