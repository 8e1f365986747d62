package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// RK4 is the classic fourth-order Runge-Kutta method over the combined
// position and velocity state.
type RK4 struct {
	scratch []dynamo.Vec3
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) []dynamo.Vec3 {
	if cap(r.scratch) < n {
		r.scratch = make([]dynamo.Vec3, n)
	}
	return r.scratch[:n]
}

func (r *RK4) Step(s *physics.System, dt float64) {
	x := s.Positions()
	v := s.Velocities()
	n := len(x)
	trial := r.ensureScratch(n)

	// k1: derivative at the start.
	k1x := v
	k1v := s.AccelerationsAt(x)

	k2x := make([]dynamo.Vec3, n)
	for i := range x {
		trial[i] = x[i].Add(k1x[i].Scale(dt * 0.5))
		k2x[i] = v[i].Add(k1v[i].Scale(dt * 0.5))
	}
	k2v := s.AccelerationsAt(trial)

	k3x := make([]dynamo.Vec3, n)
	for i := range x {
		trial[i] = x[i].Add(k2x[i].Scale(dt * 0.5))
		k3x[i] = v[i].Add(k2v[i].Scale(dt * 0.5))
	}
	k3v := s.AccelerationsAt(trial)

	k4x := make([]dynamo.Vec3, n)
	for i := range x {
		trial[i] = x[i].Add(k3x[i].Scale(dt))
		k4x[i] = v[i].Add(k3v[i].Scale(dt))
	}
	k4v := s.AccelerationsAt(trial)

	dt6 := dt / 6.0
	pos := make([]dynamo.Vec3, n)
	vel := make([]dynamo.Vec3, n)
	for i := range x {
		pos[i] = x[i].Add(k1x[i].Add(k2x[i].Scale(2)).Add(k3x[i].Scale(2)).Add(k4x[i]).Scale(dt6))
		vel[i] = v[i].Add(k1v[i].Add(k2v[i].Scale(2)).Add(k3v[i].Scale(2)).Add(k4v[i]).Scale(dt6))
	}
	s.SetState(pos, vel)
}
