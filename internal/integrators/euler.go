package integrators

import "github.com/san-kum/orbitsim/internal/physics"

// SemiImplicitEuler updates velocities from the current positions and then
// positions from the new velocities. It is what the interactive loop uses.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "euler" }

func (e *SemiImplicitEuler) Step(s *physics.System, dt float64) {
	s.Step(dt)
}

// Euler is the explicit variant: positions move with the old velocities.
// It gains energy on closed orbits and is kept as a baseline.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "explicit-euler" }

func (e *Euler) Step(s *physics.System, dt float64) {
	pos := s.Positions()
	vel := s.Velocities()
	acc := s.AccelerationsAt(pos)
	for i := range pos {
		pos[i] = pos[i].Add(vel[i].Scale(dt))
		vel[i] = vel[i].Add(acc[i].Scale(dt))
	}
	s.SetState(pos, vel)
}
