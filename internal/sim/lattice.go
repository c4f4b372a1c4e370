package sim

import (
	"math"
	"math/rand"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

// LatticePositions places n particles on a simple-cubic grid with
// ceil(cbrt(n)) sites per axis, filled x fastest, then y, then z.
func LatticePositions(box float64, n int) []forceabi.Vec3 {
	perSide := int(math.Ceil(math.Cbrt(float64(n))))
	// Cbrt of a perfect cube can land just above the integer.
	if (perSide-1)*(perSide-1)*(perSide-1) >= n {
		perSide--
	}
	spacing := box / float64(perSide+1)
	offset := 0.5 * spacing

	positions := make([]forceabi.Vec3, n)
	for i := range positions {
		ix := i % perSide
		iy := (i / perSide) % perSide
		iz := i / (perSide * perSide)
		positions[i] = forceabi.Vec3{
			spacing*float64(ix) + offset,
			spacing*float64(iy) + offset,
			spacing*float64(iz) + offset,
		}
	}
	return positions
}

// SeededVelocities draws each particle's velocity in [-0.5, 0.5)^3 from a
// generator seeded with the particle index, so the result does not depend
// on the order particles are initialized in.
func SeededVelocities(n int) []forceabi.Vec3 {
	velocities := make([]forceabi.Vec3, n)
	for i := range velocities {
		r := rand.New(rand.NewSource(int64(i)))
		velocities[i] = forceabi.Vec3{
			r.Float64() - 0.5,
			r.Float64() - 0.5,
			r.Float64() - 0.5,
		}
	}
	return velocities
}

// NewLatticeState builds the initial state of a run: lattice positions,
// seeded velocities and zero forces.
func NewLatticeState(box float64, n int) (*dynamo.State, error) {
	st, err := dynamo.NewState(box, n)
	if err != nil {
		return nil, err
	}
	copy(st.Positions, LatticePositions(box, n))
	copy(st.Velocities, SeededVelocities(n))
	return st, nil
}
