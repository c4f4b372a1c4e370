package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a non-positive box size, particle count,
	// step count or timestep.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrCutoffTooLarge indicates a cutoff radius above half the box edge,
	// where the minimum-image convention no longer picks a unique replica.
	ErrCutoffTooLarge = errors.New("dynamo: cutoff radius exceeds half the box size")

	// ErrPluginLoad indicates the force-law module could not be opened.
	ErrPluginLoad = errors.New("dynamo: cannot load force-field module")

	// ErrEntryPoint indicates a required entry point is missing from the
	// module or has the wrong signature.
	ErrEntryPoint = errors.New("dynamo: force-field entry point unresolved")

	// ErrABIVersion indicates the module was built against another
	// version of the force-field contract.
	ErrABIVersion = errors.New("dynamo: force-field ABI version mismatch")

	// ErrUnknownForceField indicates a force-law name missing from the registry.
	ErrUnknownForceField = errors.New("dynamo: unknown force field")

	// ErrInvalidState indicates a non-finite energy after a step.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates per-particle arrays of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between particle arrays")

	// ErrCompleted indicates a step was requested after the run finished.
	ErrCompleted = errors.New("dynamo: simulation already completed")
)

// SimulationError wraps an error with the step it occurred on.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
