package forcefield

import (
	"fmt"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

// DefaultCutoff is the interaction cutoff radius in reduced units.
const DefaultCutoff = 2.5

// LennardJones is the 12-6 potential in reduced units (sigma = epsilon = 1)
// with a hard cutoff and the potential shifted to zero at the cutoff.
//
// The minimum-image convention is only valid while Cutoff <= BoxSize/2;
// Initialize rejects larger cutoffs. Coincident particles produce
// non-finite forces and are not guarded against.
type LennardJones struct {
	Cutoff float64

	cutoff2     float64
	shift       float64
	initialized bool
}

func NewLennardJones(cutoff float64) *LennardJones {
	return &LennardJones{Cutoff: cutoff}
}

// Initialize validates the cutoff against the box and caches the potential
// value at the cutoff.
func (lj *LennardJones) Initialize(h *forceabi.Handle) error {
	if h == nil {
		return forceabi.ErrMalformedHandle
	}
	if !(lj.Cutoff > 0) {
		return fmt.Errorf("%w: cutoff must be positive, got %g", dynamo.ErrInvalidConfig, lj.Cutoff)
	}
	if lj.Cutoff > 0.5*h.BoxSize {
		return fmt.Errorf("%w: cutoff %g, box %g", dynamo.ErrCutoffTooLarge, lj.Cutoff, h.BoxSize)
	}
	lj.cutoff2 = lj.Cutoff * lj.Cutoff
	lj.shift = Potential(lj.cutoff2)
	lj.initialized = true
	return nil
}

// EvaluateForces visits every ordered pair, so each unordered pair's energy
// is added twice at half weight.
func (lj *LennardJones) EvaluateForces(h *forceabi.Handle) error {
	if !lj.initialized {
		return forceabi.ErrNotInitialized
	}
	if err := h.Check(); err != nil {
		return err
	}

	box := h.BoxSize
	pos := h.Positions
	forces := h.Forces
	pe := 0.0

	for i := 0; i < h.NParticles; i++ {
		for j := 0; j < h.NParticles; j++ {
			if i == j {
				continue
			}
			d, r2 := Separation(pos[i], pos[j], box)
			if r2 >= lj.cutoff2 {
				continue
			}

			inv2 := 1.0 / r2
			inv6 := inv2 * inv2 * inv2
			f := 24.0 * inv2 * (2.0*inv6*inv6 - inv6)

			forces[i][0] += f * d[0]
			forces[i][1] += f * d[1]
			forces[i][2] += f * d[2]

			pe += 0.5 * (4.0*(inv6*inv6-inv6) - lj.shift)
		}
	}

	*h.PotentialEnergy += pe
	return nil
}

// PairPotential is the shifted, cut potential for one unordered pair.
func (lj *LennardJones) PairPotential(r2 float64) float64 {
	if r2 >= lj.cutoff2 {
		return 0
	}
	return Potential(r2) - lj.shift
}

// Shift returns V(cutoff^2), zero before Initialize.
func (lj *LennardJones) Shift() float64 { return lj.shift }

// Potential is 4(r^-12 - r^-6) for squared distance r2.
func Potential(r2 float64) float64 {
	inv2 := 1.0 / r2
	inv6 := inv2 * inv2 * inv2
	return 4.0 * (inv6*inv6 - inv6)
}

// ForceFactor returns f such that f*d is the force on the first particle
// of a pair with displacement d and squared distance r2.
func ForceFactor(r2 float64) float64 {
	inv2 := 1.0 / r2
	inv6 := inv2 * inv2 * inv2
	return 24.0 * inv2 * (2.0*inv6*inv6 - inv6)
}

// MinimumImage maps one displacement component onto the nearest periodic
// replica.
func MinimumImage(d, box float64) float64 {
	half := 0.5 * box
	if d > half {
		d -= box
	}
	if d < -half {
		d += box
	}
	return d
}

// Separation returns the minimum-image displacement a-b and its squared
// length.
func Separation(a, b forceabi.Vec3, box float64) (forceabi.Vec3, float64) {
	var d forceabi.Vec3
	r2 := 0.0
	for k := 0; k < 3; k++ {
		d[k] = MinimumImage(a[k]-b[k], box)
		r2 += d[k] * d[k]
	}
	return d, r2
}
