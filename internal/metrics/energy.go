package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Energy reports the mean total energy over all observed steps.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(sys *physics.System, t float64) {
	if sys.Len() == 0 {
		return
	}
	e.totalEnergy += sys.Energy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation from the first observed
// energy. Systems with zero initial energy never drift.
type EnergyDrift struct {
	name     string
	baseline float64
	maxDrift float64
	seen     bool
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(sys *physics.System, t float64) {
	energy := sys.Energy()
	if !e.seen {
		e.baseline, e.seen = energy, true
		return
	}
	if e.baseline != 0 {
		e.maxDrift = math.Max(e.maxDrift, math.Abs(energy-e.baseline)/math.Abs(e.baseline))
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	*e = EnergyDrift{name: e.name}
}
