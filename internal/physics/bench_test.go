package physics

import (
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

func benchSystem(n int) *System {
	sys := NewSystem()
	for i := 0; i < n; i++ {
		b := NewBody()
		b.Position = dynamo.Spherical(float64(i), float64(i)*0.1).Scale(100 + float64(i))
		sys.Add(b)
	}
	return sys
}

func BenchmarkStep3(b *testing.B) {
	sys := benchSystem(3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.Step(0.01)
	}
}

func BenchmarkStep100(b *testing.B) {
	sys := benchSystem(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sys.Step(0.01)
	}
}

func BenchmarkMassCenter(b *testing.B) {
	sys := benchSystem(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sys.MassCenter()
	}
}
