// Package viz is the terminal front-end: a braille rendering of the scene
// with a sidebar for run state, energy and the body editor, built on
// Bubble Tea.
//
//   - [Model]: drives a sim.State from key, mouse and tick messages
//   - [Scene]: projects a snapshot onto a [Canvas]
//   - [RunInteractive]: scenario menu followed by the viewer
//
// # Key Bindings
//
//	W/S A/D Q/E - Move the free camera, or zoom and turn around the focus
//	Tab         - Toggle mouse look
//	Space       - Run / pause
//	F, M, B     - Free camera, mass centre, selected body
//	N, X/Del    - Add body, remove selected body
//	Arrows      - Select body and field
//	Enter       - Apply the typed value
//	T           - Cycle color themes
//	?           - Show help overlay
//
// Terminals only report key presses, so a press of a navigation key counts
// as held for a few ticks.
package viz
