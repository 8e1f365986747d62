package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func ringSystem(n int) *physics.System {
	s := physics.NewSystem()
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		b := physics.NewBody()
		b.Mass = 1e10
		b.Position = dynamo.V(100*math.Cos(a), 0, 100*math.Sin(a))
		s.Add(b)
	}
	return s
}

func benchIntegrator(b *testing.B, in physics.Integrator, n int) {
	s := ringSystem(n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Step(s, 0.001)
	}
}

func BenchmarkSemiImplicitEuler(b *testing.B) { benchIntegrator(b, NewSemiImplicitEuler(), 3) }
func BenchmarkEuler(b *testing.B)             { benchIntegrator(b, NewEuler(), 3) }
func BenchmarkVerlet(b *testing.B)            { benchIntegrator(b, NewVerlet(), 3) }
func BenchmarkRK4(b *testing.B)               { benchIntegrator(b, NewRK4(), 3) }

func BenchmarkVerlet_NBody32(b *testing.B) { benchIntegrator(b, NewVerlet(), 32) }
func BenchmarkRK4_NBody32(b *testing.B)    { benchIntegrator(b, NewRK4(), 32) }
