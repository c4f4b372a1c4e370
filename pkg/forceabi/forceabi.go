// Package forceabi defines the contract between the mdsim engine and a
// force-law module.
//
// A force law receives a [Handle] describing one snapshot of the
// simulation and fills in per-particle forces and the total potential
// energy. The engine calls [ForceField.Initialize] exactly once before the
// first step and [ForceField.EvaluateForces] once per step.
//
// # Loadable modules
//
// A force law built with -buildmode=plugin exposes the contract as three
// package-level symbols:
//
//	var ABIVersion = forceabi.Version
//	func Initialize(h *forceabi.Handle) error
//	func EvaluateForces(h *forceabi.Handle) error
//
// The engine refuses a module whose ABIVersion differs from [Version] or
// whose entry points are missing.
//
// This package only depends on the standard library so out-of-tree modules
// can build against it.
package forceabi

import "errors"

// Version is bumped whenever Handle or the entry-point signatures change.
const Version = 1

// Exported symbol names a loadable module must provide.
const (
	SymbolVersion        = "ABIVersion"
	SymbolInitialize     = "Initialize"
	SymbolEvaluateForces = "EvaluateForces"
)

// Vec3 is a Cartesian vector indexed x=0, y=1, z=2.
type Vec3 [3]float64

// Handle grants a force law call-scoped access to the simulation state.
//
// Positions and Forces alias the engine's arrays; PotentialEnergy points at
// the engine's scalar. Forces and the potential energy are zeroed before
// EvaluateForces runs. A force law must not retain a Handle, or any slice
// taken from it, after the call returns.
type Handle struct {
	BoxSize         float64
	NParticles      int
	Positions       []Vec3
	Forces          []Vec3
	PotentialEnergy *float64
}

// Check reports whether the handle's arrays agree with NParticles.
func (h *Handle) Check() error {
	if h == nil {
		return ErrMalformedHandle
	}
	if len(h.Positions) != h.NParticles || len(h.Forces) != h.NParticles || h.PotentialEnergy == nil {
		return ErrMalformedHandle
	}
	return nil
}

// ForceField computes forces and potential energy for a particle
// configuration.
type ForceField interface {
	Initialize(h *Handle) error
	EvaluateForces(h *Handle) error
}

// InitializeFunc and EvaluateFunc are the signatures of the exported
// entry points of a loadable module.
type (
	InitializeFunc = func(h *Handle) error
	EvaluateFunc   = func(h *Handle) error
)

// Funcs adapts a pair of entry points to ForceField.
type Funcs struct {
	Init     InitializeFunc
	Evaluate EvaluateFunc
}

func (f Funcs) Initialize(h *Handle) error     { return f.Init(h) }
func (f Funcs) EvaluateForces(h *Handle) error { return f.Evaluate(h) }

var (
	// ErrMalformedHandle indicates array lengths disagree with NParticles
	// or the energy pointer is missing.
	ErrMalformedHandle = errors.New("forceabi: handle arrays do not match particle count")

	// ErrNotInitialized indicates EvaluateForces ran before Initialize.
	ErrNotInitialized = errors.New("forceabi: force field used before Initialize")
)
