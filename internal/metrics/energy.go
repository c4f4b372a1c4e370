package metrics

import (
	"math"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/sim"
)

// MeanEnergy averages one component of the step reports.
type MeanEnergy struct {
	name    string
	pick    func(dynamo.StepReport) float64
	samples int
	sum     float64
}

func NewMeanPotential() *MeanEnergy {
	return &MeanEnergy{name: "mean_potential", pick: func(r dynamo.StepReport) float64 { return r.Potential }}
}

func NewMeanKinetic() *MeanEnergy {
	return &MeanEnergy{name: "mean_kinetic", pick: func(r dynamo.StepReport) float64 { return r.Kinetic }}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(r dynamo.StepReport) {
	e.sum += e.pick(r)
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure of the total energy
// from its first reported value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "max_energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(r dynamo.StepReport) {
	if e.samples == 0 {
		e.initialEnergy = r.Total
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(r.Total-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Defaults returns the metrics recorded for every CLI run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewMeanPotential(),
		NewMeanKinetic(),
		NewEnergyDrift(),
	}
}
