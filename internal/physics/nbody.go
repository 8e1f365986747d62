package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	// G is the gravitational constant in simulation units (not SI).
	G = 6.67430e-8
	// Eps is the separation below which a pair contributes no acceleration.
	// This drops the force for near-coincident bodies instead of softening it.
	Eps = 1e-9
	// PositionScale maps simulation positions into display space.
	PositionScale = 0.001
)

// Integrator advances every body of a System by dt. Implementations may keep
// scratch buffers and are not safe for concurrent use.
type Integrator interface {
	Name() string
	Step(s *System, dt float64)
}

// System owns an ordered collection of bodies. Indices follow insertion
// order and shift on removal; IDs do not.
type System struct {
	bodies []Body
	nextID ID

	positions []dynamo.Vec3
	acc       []dynamo.Vec3
}

func NewSystem() *System {
	return &System{nextID: 1}
}

// Add appends b, assigns it a fresh ID and returns that ID.
func (s *System) Add(b Body) ID {
	if s.nextID == 0 {
		s.nextID = 1
	}
	b.ID = s.nextID
	s.nextID++
	s.bodies = append(s.bodies, b)
	return b.ID
}

// Remove deletes the body with the given ID and reports whether it existed.
func (s *System) Remove(id ID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
	return true
}

// IndexOf returns the current index of id, or -1.
func (s *System) IndexOf(id ID) int {
	for i := range s.bodies {
		if s.bodies[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *System) Len() int { return len(s.bodies) }

// At returns the body at index i.
func (s *System) At(i int) (Body, bool) {
	if i < 0 || i >= len(s.bodies) {
		return Body{}, false
	}
	return s.bodies[i], true
}

func (s *System) ByID(id ID) (Body, bool) {
	return s.At(s.IndexOf(id))
}

// Update applies fn to the body at index i in place.
func (s *System) Update(i int, fn func(*Body) error) error {
	if i < 0 || i >= len(s.bodies) {
		return dynamo.ErrBodyNotFound
	}
	return fn(&s.bodies[i])
}

// Bodies returns a copy of the collection in order.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Accelerations returns the net gravitational acceleration on every body,
// computed from the positions as they stand now.
func (s *System) Accelerations() []dynamo.Vec3 {
	s.computeAccelerations()
	out := make([]dynamo.Vec3, len(s.acc))
	copy(out, s.acc)
	return out
}

// Accelerate applies one explicit Euler velocity step. All accelerations are
// computed from a snapshot of positions before any velocity is written.
func (s *System) Accelerate(dt float64) {
	s.computeAccelerations()
	for i := range s.bodies {
		s.bodies[i].Velocity = s.bodies[i].Velocity.Add(s.acc[i].Scale(dt))
	}
}

// MoveBodies advances every position by its velocity. Bodies may overlap;
// there is no collision handling.
func (s *System) MoveBodies(dt float64) {
	for i := range s.bodies {
		s.bodies[i].Position = s.bodies[i].Position.Add(s.bodies[i].Velocity.Scale(dt))
	}
}

// Step runs Accelerate followed by MoveBodies.
func (s *System) Step(dt float64) {
	s.Accelerate(dt)
	s.MoveBodies(dt)
}

// AccelerationsAt returns the accelerations the bodies would feel if they
// were at pos, which holds one position per body in order. Masses are taken
// from the system.
func (s *System) AccelerationsAt(pos []dynamo.Vec3) []dynamo.Vec3 {
	out := make([]dynamo.Vec3, len(s.bodies))
	if len(pos) != len(s.bodies) {
		return out
	}
	for i := range pos {
		for j := range pos {
			if i != j {
				out[i] = out[i].Add(pairAcceleration(pos[i], pos[j], s.bodies[j].Mass))
			}
		}
	}
	return out
}

// Positions returns a copy of every position in order.
func (s *System) Positions() []dynamo.Vec3 {
	out := make([]dynamo.Vec3, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.bodies[i].Position
	}
	return out
}

// Velocities returns a copy of every velocity in order.
func (s *System) Velocities() []dynamo.Vec3 {
	out := make([]dynamo.Vec3, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.bodies[i].Velocity
	}
	return out
}

// SetState overwrites positions and velocities. Both slices must hold one
// entry per body; otherwise nothing changes and false is returned.
func (s *System) SetState(pos, vel []dynamo.Vec3) bool {
	if len(pos) != len(s.bodies) || len(vel) != len(s.bodies) {
		return false
	}
	for i := range s.bodies {
		s.bodies[i].Position = pos[i]
		s.bodies[i].Velocity = vel[i]
	}
	return true
}

func (s *System) computeAccelerations() {
	n := len(s.bodies)
	if cap(s.positions) < n {
		s.positions = make([]dynamo.Vec3, n)
		s.acc = make([]dynamo.Vec3, n)
	}
	s.positions = s.positions[:n]
	s.acc = s.acc[:n]

	for i := range s.bodies {
		s.positions[i] = s.bodies[i].Position
		s.acc[i] = dynamo.Vec3{}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			s.acc[i] = s.acc[i].Add(pairAcceleration(s.positions[i], s.positions[j], s.bodies[j].Mass))
		}
	}
}

// pairAcceleration is the acceleration a body at p feels from mass m at q.
func pairAcceleration(p, q dynamo.Vec3, m float64) dynamo.Vec3 {
	d := q.Sub(p)
	r := d.Length()
	if r < Eps {
		return dynamo.Vec3{}
	}
	return d.Scale(G * m / (r * r * r))
}

// MassCenter returns the mass-weighted mean position in display space, or
// the zero vector when the system is empty or massless.
func (s *System) MassCenter() dynamo.Vec3 {
	var weighted dynamo.Vec3
	total := 0.0
	for _, b := range s.bodies {
		weighted = weighted.Add(b.Position.Scale(b.Mass))
		total += b.Mass
	}
	if len(s.bodies) == 0 || total == 0 {
		return dynamo.Vec3{}
	}
	return weighted.Scale(1 / total).Scale(PositionScale)
}

// Energy returns kinetic plus gravitational potential energy. Pairs closer
// than Eps are left out of the potential, matching Accelerate.
func (s *System) Energy() float64 {
	ke, pe := 0.0, 0.0
	for i, bi := range s.bodies {
		ke += 0.5 * bi.Mass * bi.Velocity.LengthSq()
		for j := i + 1; j < len(s.bodies); j++ {
			bj := s.bodies[j]
			r := bj.Position.Sub(bi.Position).Length()
			if r < Eps {
				continue
			}
			pe -= G * bi.Mass * bj.Mass / r
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func (s *System) Momentum() dynamo.Vec3 {
	var p dynamo.Vec3
	for _, b := range s.bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// Valid reports whether every body has finite position and velocity.
func (s *System) Valid() bool {
	for _, b := range s.bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() || math.IsNaN(b.Mass) {
			return false
		}
	}
	return true
}

// CircularSpeed is the speed of a circular orbit of radius r around mass m.
func CircularSpeed(m, r float64) float64 {
	if r < Eps {
		return 0
	}
	return math.Sqrt(G * m / r)
}

// OrbitalPeriod is the period of a circular orbit of radius r around mass m.
func OrbitalPeriod(m, r float64) float64 {
	v := CircularSpeed(m, r)
	if v == 0 {
		return 0
	}
	return 2 * math.Pi * r / v
}
