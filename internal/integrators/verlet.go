package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Verlet is velocity Verlet: a full position update from the current
// acceleration, then a velocity update from the mean of old and new.
type Verlet struct {
	scratch []dynamo.Vec3
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(s *physics.System, dt float64) {
	pos := s.Positions()
	vel := s.Velocities()
	acc := s.AccelerationsAt(pos)

	n := len(pos)
	if cap(v.scratch) < n {
		v.scratch = make([]dynamo.Vec3, n)
	}
	next := v.scratch[:n]

	dt2 := 0.5 * dt * dt
	for i := range pos {
		next[i] = pos[i].Add(vel[i].Scale(dt)).Add(acc[i].Scale(dt2))
	}

	accNew := s.AccelerationsAt(next)
	halfDt := 0.5 * dt
	for i := range vel {
		vel[i] = vel[i].Add(acc[i].Add(accNew[i]).Scale(halfDt))
	}
	s.SetState(next, vel)
}
