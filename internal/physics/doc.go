// Package physics implements the gravitational N-body integrator.
//
// A [System] owns an ordered list of [Body] values and advances them with
// semi-implicit Euler:
//
//	sys := physics.NewSystem()
//	sys.Add(physics.NewBody())
//	sys.Accelerate(dt) // velocities from a snapshot of positions
//	sys.MoveBodies(dt) // positions from the new velocities
//
// Pairs closer than [Eps] contribute no force. This is a safety clamp for
// coincident bodies, not a softened potential.
//
// [System.MassCenter] is returned in display space (scaled by
// [PositionScale]); every other quantity is in simulation units.
package physics
