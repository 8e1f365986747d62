// Package analysis characterizes the long-run behaviour of a set of bodies.
//
//   - [Lyapunov]: largest Lyapunov exponent via shadow-trajectory separation
//   - [Trajectory], [Trajectories]: position history of one or all bodies
//   - [DominantPeriod]: strongest period in a sampled series
//
// # Chaos Detection
//
// A clearly positive exponent means nearby starts diverge exponentially:
//
//	lambda := analysis.Lyapunov(bodies, integrators.NewVerlet, analysis.DefaultLyapunovConfig())
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
