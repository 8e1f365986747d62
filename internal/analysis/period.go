package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Trajectory integrates bodies for steps steps of dt and returns the
// position of the body at index after each step.
func Trajectory(bodies []physics.Body, in physics.Integrator, index int, dt float64, steps int) []dynamo.Vec3 {
	if index < 0 || index >= len(bodies) {
		return nil
	}
	return Trajectories(bodies, in, dt, steps)[index]
}

// Trajectories is Trajectory for every body at once, indexed like bodies.
func Trajectories(bodies []physics.Body, in physics.Integrator, dt float64, steps int) [][]dynamo.Vec3 {
	paths := make([][]dynamo.Vec3, len(bodies))
	if steps <= 0 {
		return paths
	}
	for i := range paths {
		paths[i] = make([]dynamo.Vec3, 0, steps)
	}
	s := systemOf(bodies)
	for i := 0; i < steps; i++ {
		in.Step(s, dt)
		for j, p := range s.Positions() {
			paths[j] = append(paths[j], p)
		}
	}
	return paths
}

// DominantPeriod returns the period of the strongest non-constant frequency
// in series, sampled every dt. It returns 0 for series that are too short
// or flat. The resolution is one frequency bin, so the series should cover
// several periods.
func DominantPeriod(series []float64, dt float64) float64 {
	n := len(series)
	if n < 4 || dt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	best, bestPower := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if p := cmplx.Abs(spectrum[k]); p > bestPower {
			best, bestPower = k, p
		}
	}
	if best == 0 || bestPower < 1e-12 {
		return 0
	}
	return float64(n) * dt / float64(best)
}

// Component extracts one coordinate from a trajectory: 0 for x, 1 for y,
// anything else for z.
func Component(path []dynamo.Vec3, axis int) []float64 {
	out := make([]float64, len(path))
	for i, p := range path {
		switch axis {
		case 0:
			out[i] = p.X
		case 1:
			out[i] = p.Y
		default:
			out[i] = p.Z
		}
	}
	return out
}
