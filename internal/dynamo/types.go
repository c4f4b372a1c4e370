package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/mdsim/pkg/forceabi"
)

// State is the mutable configuration of a run. Particle ids are slice
// indices and never change.
type State struct {
	BoxSize         float64
	Positions       []forceabi.Vec3
	Velocities      []forceabi.Vec3
	Forces          []forceabi.Vec3
	PotentialEnergy float64
	KineticEnergy   float64
}

// NewState allocates a zeroed state for n particles in a cubic cell of
// edge boxSize.
func NewState(boxSize float64, n int) (*State, error) {
	if !(boxSize > 0) || math.IsInf(boxSize, 0) {
		return nil, fmt.Errorf("%w: box size must be positive, got %g", ErrInvalidConfig, boxSize)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidConfig, n)
	}
	return &State{
		BoxSize:    boxSize,
		Positions:  make([]forceabi.Vec3, n),
		Velocities: make([]forceabi.Vec3, n),
		Forces:     make([]forceabi.Vec3, n),
	}, nil
}

func (s *State) NParticles() int { return len(s.Positions) }

// Validate checks that all per-particle arrays have the same length.
func (s *State) Validate() error {
	n := len(s.Positions)
	if n == 0 {
		return fmt.Errorf("%w: no particles", ErrInvalidConfig)
	}
	if len(s.Velocities) != n || len(s.Forces) != n {
		return fmt.Errorf("%w: positions=%d velocities=%d forces=%d",
			ErrDimensionMismatch, n, len(s.Velocities), len(s.Forces))
	}
	return nil
}

// Handle returns a fresh view of the state for a single force-law call.
func (s *State) Handle() *forceabi.Handle {
	return &forceabi.Handle{
		BoxSize:         s.BoxSize,
		NParticles:      len(s.Positions),
		Positions:       s.Positions,
		Forces:          s.Forces,
		PotentialEnergy: &s.PotentialEnergy,
	}
}

// ZeroForces clears both energies and every force vector.
func (s *State) ZeroForces() {
	s.PotentialEnergy = 0
	s.KineticEnergy = 0
	for i := range s.Forces {
		s.Forces[i] = forceabi.Vec3{}
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Positions = append([]forceabi.Vec3(nil), s.Positions...)
	c.Velocities = append([]forceabi.Vec3(nil), s.Velocities...)
	c.Forces = append([]forceabi.Vec3(nil), s.Forces...)
	return &c
}

// Wrap maps a coordinate that left the cell by less than one box length
// back into [0, box).
func Wrap(x, box float64) float64 {
	if x < 0 {
		x += box
	}
	if x >= box {
		x -= box
	}
	return x
}

type Config struct {
	BoxSize       float64
	NParticles    int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		BoxSize:    20.0,
		NParticles: 1000,
	}
}

// StepReport holds the energies reported after one integration step.
// Kinetic is computed from the velocities before that step's update.
type StepReport struct {
	Step      int
	Potential float64
	Kinetic   float64
	Total     float64
}

func (r StepReport) IsValid() bool {
	for _, v := range [...]float64{r.Potential, r.Kinetic, r.Total} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Result struct {
	Reports     []StepReport
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// NewResult wraps reports and computes the relative drift of the total
// energy between the first and last step.
func NewResult(reports []StepReport) *Result {
	r := &Result{
		Reports:    reports,
		Metrics:    make(map[string]float64),
		StepsTaken: len(reports),
	}
	if len(reports) > 0 {
		first := reports[0].Total
		last := reports[len(reports)-1].Total
		if first != 0 {
			r.EnergyDrift = math.Abs(last-first) / math.Abs(first)
		}
	}
	return r
}
