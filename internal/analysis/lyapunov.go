package analysis

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

type LyapunovConfig struct {
	Dt       float64
	Duration float64
	// Perturbation is the initial offset along x of the first body, in
	// world units.
	Perturbation float64
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{Dt: 0.01, Duration: 100, Perturbation: 1e-6}
}

// Lyapunov estimates the largest Lyapunov exponent of bodies. A shadow copy
// with the first body displaced is integrated alongside the reference and
// pulled back to the initial separation after every step; the exponent is
// the mean log growth per unit time. newIntegrator is called once per copy.
func Lyapunov[I physics.Integrator](bodies []physics.Body, newIntegrator func() I, cfg LyapunovConfig) float64 {
	if len(bodies) == 0 || cfg.Dt <= 0 || cfg.Duration <= 0 || cfg.Perturbation <= 0 {
		return 0
	}

	ref := systemOf(bodies)
	shadow := systemOf(bodies)
	pos := shadow.Positions()
	pos[0].X += cfg.Perturbation
	shadow.SetState(pos, shadow.Velocities())

	inRef := newIntegrator()
	inShadow := newIntegrator()
	d0 := cfg.Perturbation

	sumLog := 0.0
	t := 0.0
	for t < cfg.Duration {
		inRef.Step(ref, cfg.Dt)
		inShadow.Step(shadow, cfg.Dt)
		t += cfg.Dt

		rp, rv := ref.Positions(), ref.Velocities()
		sp, sv := shadow.Positions(), shadow.Velocities()
		sep := separation(rp, rv, sp, sv)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range sp {
			sp[i] = rp[i].Add(sp[i].Sub(rp[i]).Scale(scale))
			sv[i] = rv[i].Add(sv[i].Sub(rv[i]).Scale(scale))
		}
		shadow.SetState(sp, sv)
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}

// separation is the phase-space distance between two states.
func separation(ap, av, bp, bv []dynamo.Vec3) float64 {
	sum := 0.0
	for i := range ap {
		sum += bp[i].Sub(ap[i]).LengthSq() + bv[i].Sub(av[i]).LengthSq()
	}
	return math.Sqrt(sum)
}

func systemOf(bodies []physics.Body) *physics.System {
	s := physics.NewSystem()
	for _, b := range bodies {
		s.Add(b)
	}
	return s
}
