// Package camera implements the free-fly / orbit camera.
//
// The camera never reads devices. Front-ends resolve their input into an
// [Input] each frame and call either [Camera.UpdateFree] or
// [Camera.UpdateOrbit]; the choice between them belongs to the focus logic
// in package sim.
//
// # Key Bindings
//
//	Free:  W/S forward/back, A/D strafe, Q/E up/down, mouse look when grabbed
//	Orbit: A/D yaw, Q/E pitch, W/S zoom
//
// Pitch is clamped to ±1.5 rad in both modes and the orbit radius to a small
// positive minimum, so the basis never degenerates.
package camera
