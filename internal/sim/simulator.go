package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

// Simulator advances a State with forward-Euler splitting: positions move
// with the previous step's velocities, forces are evaluated at the new
// positions, and velocities are updated last. Kinetic energy is reported
// from the velocities before their update.
type Simulator struct {
	state         *dynamo.State
	ff            forceabi.ForceField
	metrics       []Metric
	observers     []Observer
	logger        *zap.Logger
	validateState bool
	phase         Phase
	step          int
	err           error
}

type Option func(*Simulator)

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithValidateState aborts the run when a step reports a non-finite energy.
func WithValidateState(v bool) Option {
	return func(s *Simulator) { s.validateState = v }
}

// New builds the lattice initial state for cfg and initializes ff on it.
func New(cfg dynamo.Config, ff forceabi.ForceField, opts ...Option) (*Simulator, error) {
	st, err := NewLatticeState(cfg.BoxSize, cfg.NParticles)
	if err != nil {
		return nil, err
	}
	if cfg.ValidateState {
		opts = append(opts, WithValidateState(true))
	}
	return NewWithState(st, ff, opts...)
}

// NewWithState initializes ff on a caller-built state. The simulator takes
// ownership of st.
func NewWithState(st *dynamo.State, ff forceabi.ForceField, opts ...Option) (*Simulator, error) {
	if ff == nil {
		return nil, fmt.Errorf("%w: no force field", dynamo.ErrInvalidConfig)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		state:     st,
		ff:        ff,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := ff.Initialize(st.Handle()); err != nil {
		return nil, fmt.Errorf("initialize force field: %w", err)
	}
	s.phase = Ready

	s.logger.Info("simulation initialized",
		zap.Float64("box_size", st.BoxSize),
		zap.Int("particles", st.NParticles()),
	)
	return s, nil
}

func (s *Simulator) State() *dynamo.State { return s.state }
func (s *Simulator) Phase() Phase         { return s.phase }

// Err returns the error that aborted the run, if any.
func (s *Simulator) Err() error { return s.err }

// StepsTaken returns the number of completed steps.
func (s *Simulator) StepsTaken() int { return s.step }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step performs one integration step.
func (s *Simulator) Step(dt float64) (dynamo.StepReport, error) {
	switch s.phase {
	case Completed:
		return dynamo.StepReport{}, dynamo.ErrCompleted
	case Failed:
		return dynamo.StepReport{}, s.err
	}
	if s.phase != Ready && s.phase != Running {
		return dynamo.StepReport{}, fmt.Errorf("%w: simulator is %s", dynamo.ErrInvalidConfig, s.phase)
	}
	if !(dt > 0) {
		return dynamo.StepReport{}, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, dt)
	}
	s.phase = Running

	st := s.state
	box := st.BoxSize

	for i := range st.Positions {
		for k := 0; k < 3; k++ {
			st.Positions[i][k] = dynamo.Wrap(st.Positions[i][k]+st.Velocities[i][k]*dt, box)
		}
	}

	st.ZeroForces()

	if err := s.ff.EvaluateForces(st.Handle()); err != nil {
		return dynamo.StepReport{}, s.fail(fmt.Errorf("evaluate forces: %w", err))
	}

	ke := 0.0
	for _, v := range st.Velocities {
		ke += 0.5 * (v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	st.KineticEnergy = ke

	for i := range st.Velocities {
		for k := 0; k < 3; k++ {
			st.Velocities[i][k] += st.Forces[i][k] * dt
		}
	}

	report := dynamo.StepReport{
		Step:      s.step,
		Potential: st.PotentialEnergy,
		Kinetic:   st.KineticEnergy,
		Total:     st.PotentialEnergy + st.KineticEnergy,
	}

	if s.validateState && !report.IsValid() {
		return report, s.fail(dynamo.ErrInvalidState)
	}

	s.step++

	for _, m := range s.metrics {
		m.Observe(report)
	}
	for _, obs := range s.observers {
		obs.OnStep(report, st)
	}

	s.logger.Debug("step",
		zap.Int("step", report.Step),
		zap.Float64("potential", report.Potential),
		zap.Float64("kinetic", report.Kinetic),
		zap.Float64("total", report.Total),
	)

	return report, nil
}

// fail ends the run at the current step. The state is left half-updated,
// so every later Step or Run returns the same error.
func (s *Simulator) fail(err error) error {
	s.err = &dynamo.SimulationError{Step: s.step, Wrapped: err}
	s.phase = Failed
	return s.err
}

// Run performs nsteps steps of size dt and completes the simulation. A
// completed simulator cannot be run again.
func (s *Simulator) Run(nsteps int, dt float64) (*dynamo.Result, error) {
	if nsteps < 0 {
		return nil, fmt.Errorf("%w: step count must not be negative, got %d", dynamo.ErrInvalidConfig, nsteps)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, dt)
	}
	switch s.phase {
	case Completed:
		return nil, dynamo.ErrCompleted
	case Failed:
		return nil, s.err
	}

	reports := make([]dynamo.StepReport, 0, nsteps)

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < nsteps; i++ {
		report, err := s.Step(dt)
		if err != nil {
			s.logger.Error("simulation aborted", zap.Int("step", s.step), zap.Error(err))
			return nil, err
		}
		reports = append(reports, report)
	}
	s.phase = Completed

	result := dynamo.NewResult(reports)

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Info("simulation completed",
		zap.Int("steps", result.StepsTaken),
		zap.Float64("energy_drift", result.EnergyDrift),
	)
	return result, nil
}
