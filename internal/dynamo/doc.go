// Package dynamo provides the core primitives shared by the simulator.
//
//   - [Vec3]: 3D vector used for positions, velocities and camera bases
//   - [Color]: RGB triple for body display
//   - domain errors such as [ErrParse] and [ErrBodyNotFound]
//
// # Example
//
//	dir := dynamo.Spherical(yaw, pitch)
//	right := dir.Cross(dynamo.WorldUp).Normalize()
//
// Values are plain structs and safe to copy. Nothing in this package keeps
// state.
package dynamo
