package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Default is the integrator used when none is named.
const Default = "euler"

var registry = map[string]func() physics.Integrator{
	"euler":          func() physics.Integrator { return NewSemiImplicitEuler() },
	"explicit-euler": func() physics.Integrator { return NewEuler() },
	"verlet":         func() physics.Integrator { return NewVerlet() },
	"rk4":            func() physics.Integrator { return NewRK4() },
}

// New returns a fresh integrator by name. An empty name selects Default.
func New(name string) (physics.Integrator, error) {
	if name == "" {
		name = Default
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownIntegrator, name)
	}
	return mk(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
