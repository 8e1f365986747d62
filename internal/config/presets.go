package config

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Preset is a named starting configuration.
type Preset struct {
	Name        string
	Description string
	Bodies      func() []physics.Body
}

var (
	sunColor    = dynamo.Color{1, 0.85, 0.3}
	planetColor = dynamo.Color{0.3, 0.6, 1}
	palette     = []dynamo.Color{{1, 0.35, 0.3}, {0.35, 1, 0.45}, {0.35, 0.5, 1}}
)

var Presets = map[string]Preset{
	"empty": {
		Name:        "empty",
		Description: "no bodies; add them with N",
		Bodies:      func() []physics.Body { return nil },
	},
	"single": {
		Name:        "single",
		Description: "one default body at the origin",
		Bodies:      func() []physics.Body { return []physics.Body{physics.NewBody()} },
	},
	"sun-planet": {
		Name:        "sun-planet",
		Description: "heavy star with one planet on a circular orbit",
		Bodies:      sunPlanet,
	},
	"binary": {
		Name:        "binary",
		Description: "two equal stars circling their barycentre",
		Bodies:      binary,
	},
	"triangle": {
		Name:        "triangle",
		Description: "three equal bodies on Lagrange's rotating triangle",
		Bodies:      triangle,
	},
}

// GetPreset looks a preset up by name.
func GetPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownScenario, name)
	}
	return p, nil
}

// ListPresets returns preset names in a stable order.
func ListPresets() []string {
	return []string{"empty", "single", "sun-planet", "binary", "triangle"}
}

func sunPlanet() []physics.Body {
	const (
		sunMass    = 1e14
		planetMass = 1e10
		distance   = 1000.0
	)
	v := physics.CircularSpeed(sunMass, distance)

	sun := physics.NewBody()
	sun.Mass = sunMass
	sun.Radius = 8
	sun.Color = sunColor
	// Zero total momentum so the pair stays in view.
	sun.Velocity = dynamo.V(0, 0, -v*planetMass/sunMass)

	planet := physics.NewBody()
	planet.Mass = planetMass
	planet.Radius = 3
	planet.Color = planetColor
	planet.Position = dynamo.V(distance, 0, 0)
	planet.Velocity = dynamo.V(0, 0, v)

	return []physics.Body{sun, planet}
}

func binary() []physics.Body {
	const (
		mass       = 5e13
		separation = 1000.0
	)
	v := math.Sqrt(physics.G * mass / (2 * separation))

	a := physics.NewBody()
	a.Mass = mass
	a.Color = palette[0]
	a.Position = dynamo.V(-separation/2, 0, 0)
	a.Velocity = dynamo.V(0, 0, -v)

	b := physics.NewBody()
	b.Mass = mass
	b.Color = palette[2]
	b.Position = dynamo.V(separation/2, 0, 0)
	b.Velocity = dynamo.V(0, 0, v)

	return []physics.Body{a, b}
}

func triangle() []physics.Body {
	const (
		mass   = 5e13
		radius = 600.0
	)
	// Equilateral configuration: each body feels a net pull toward the
	// centre of magnitude G*m*sqrt(3)/(3*R^2) for circumradius R.
	v := math.Sqrt(physics.G * mass / (math.Sqrt(3) * radius))

	bodies := make([]physics.Body, 3)
	for i := range bodies {
		angle := float64(i) * 2 * math.Pi / 3
		dir := dynamo.V(math.Cos(angle), 0, math.Sin(angle))
		tangent := dynamo.V(-math.Sin(angle), 0, math.Cos(angle))

		b := physics.NewBody()
		b.Mass = mass
		b.Color = palette[i]
		b.Position = dir.Scale(radius)
		b.Velocity = tangent.Scale(v)
		bodies[i] = b
	}
	return bodies
}
