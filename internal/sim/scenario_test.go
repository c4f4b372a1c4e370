package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/forcefield"
	"github.com/san-kum/mdsim/internal/sim"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

func dimer(separation float64) *dynamo.State {
	st, err := dynamo.NewState(20, 2)
	Expect(err).NotTo(HaveOccurred())
	st.Positions[0] = forceabi.Vec3{9, 10, 10}
	st.Positions[1] = forceabi.Vec3{9 + separation, 10, 10}
	return st
}

// maxDeviation runs the dimer for a fixed span of time and returns the
// largest departure of the reported total energy from its first value.
func maxDeviation(span, dt float64) float64 {
	s, err := sim.NewWithState(dimer(1.5), forcefield.NewLennardJones(forcefield.DefaultCutoff))
	Expect(err).NotTo(HaveOccurred())

	result, err := s.Run(int(math.Round(span/dt)), dt)
	Expect(err).NotTo(HaveOccurred())

	e0 := result.Reports[0].Total
	dev := 0.0
	for _, r := range result.Reports {
		dev = math.Max(dev, math.Abs(r.Total-e0))
	}
	return dev
}

var _ = Describe("Lennard-Jones dimer", func() {
	var (
		st *dynamo.State
		s  *sim.Simulator
	)

	BeforeEach(func() {
		var err error
		st = dimer(1.5)
		s, err = sim.NewWithState(st, forcefield.NewLennardJones(forcefield.DefaultCutoff))
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports the single pair energy after one step", func() {
		report, err := s.Step(0.005)
		Expect(err).NotTo(HaveOccurred())

		want := forcefield.Potential(1.5*1.5) - forcefield.Potential(forcefield.DefaultCutoff*forcefield.DefaultCutoff)
		Expect(report.Step).To(Equal(0))
		Expect(report.Kinetic).To(BeZero())
		Expect(report.Potential).To(BeNumerically("~", want, 1e-12))
		Expect(report.Total).To(Equal(report.Potential + report.Kinetic))
	})

	It("pulls the particles together from outside the potential minimum", func() {
		_, err := s.Step(0.005)
		Expect(err).NotTo(HaveOccurred())

		Expect(st.Forces[0][0]).To(BeNumerically(">", 0))
		Expect(st.Forces[1][0]).To(BeNumerically("~", -st.Forces[0][0], 1e-12))
		Expect(st.Velocities[0][0]).To(BeNumerically(">", 0))
		Expect(st.Velocities[1][0]).To(BeNumerically("<", 0))

		for i := 0; i < 50; i++ {
			_, err := s.Step(0.005)
			Expect(err).NotTo(HaveOccurred())
		}
		_, r2 := forcefield.Separation(st.Positions[0], st.Positions[1], st.BoxSize)
		Expect(math.Sqrt(r2)).To(BeNumerically("<", 1.5))
	})

	It("keeps total energy close to its initial value", func() {
		result, err := s.Run(100, 0.005)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Reports).To(HaveLen(100))

		e0 := result.Reports[0].Total
		for _, r := range result.Reports {
			Expect(r.Total).To(BeNumerically("~", e0, 0.05))
		}
	})

	It("drifts less as the timestep shrinks", func() {
		coarse := maxDeviation(0.5, 0.005)
		fine := maxDeviation(0.5, 0.0025)
		finer := maxDeviation(0.5, 0.00125)

		Expect(coarse).To(BeNumerically(">", 0))
		Expect(fine).To(BeNumerically("<", coarse))
		Expect(finer).To(BeNumerically("<", fine))
	})
})

var _ = Describe("Lattice start", func() {
	newSim := func() *sim.Simulator {
		s, err := sim.New(dynamo.Config{BoxSize: 20, NParticles: 125}, forcefield.NewLennardJones(forcefield.DefaultCutoff))
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	It("is reproducible run to run", func() {
		a, err := newSim().Run(5, 0.005)
		Expect(err).NotTo(HaveOccurred())
		b, err := newSim().Run(5, 0.005)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Reports).To(Equal(b.Reports))
	})

	It("keeps every particle inside the cell", func() {
		s := newSim()
		_, err := s.Run(20, 0.005)
		Expect(err).NotTo(HaveOccurred())

		for _, p := range s.State().Positions {
			for k := 0; k < 3; k++ {
				Expect(p[k]).To(BeNumerically(">=", 0))
				Expect(p[k]).To(BeNumerically("<", 20))
			}
		}
	})

	It("rejects a cutoff beyond half the box before stepping", func() {
		_, err := sim.New(dynamo.Config{BoxSize: 4, NParticles: 8}, forcefield.NewLennardJones(forcefield.DefaultCutoff))
		Expect(err).To(MatchError(dynamo.ErrCutoffTooLarge))
	})
})

var _ = Describe("Ideal gas", func() {
	It("moves particles in straight lines through the periodic boundary", func() {
		st, err := dynamo.NewState(10, 1)
		Expect(err).NotTo(HaveOccurred())
		st.Positions[0] = forceabi.Vec3{9.5, 5, 5}
		st.Velocities[0] = forceabi.Vec3{1, 0, 0}

		s, err := sim.NewWithState(st, forcefield.NewIdeal())
		Expect(err).NotTo(HaveOccurred())

		result, err := s.Run(10, 0.1)
		Expect(err).NotTo(HaveOccurred())

		Expect(st.Positions[0][0]).To(BeNumerically("~", 0.5, 1e-9))
		Expect(st.Velocities[0]).To(Equal(forceabi.Vec3{1, 0, 0}))
		for _, r := range result.Reports {
			Expect(r.Potential).To(BeZero())
			Expect(r.Kinetic).To(BeNumerically("~", 0.5, 1e-12))
		}
		Expect(result.EnergyDrift).To(BeNumerically("~", 0, 1e-12))
	})
})
