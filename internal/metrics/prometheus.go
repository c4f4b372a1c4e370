package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/mdsim/internal/dynamo"
)

// Exporter publishes the latest step report as Prometheus gauges.
type Exporter struct {
	steps     prometheus.Counter
	potential prometheus.Gauge
	kinetic   prometheus.Gauge
	total     prometheus.Gauge
	particles prometheus.Gauge
}

// NewExporter creates the mdsim collectors and registers them with reg.
func NewExporter(reg prometheus.Registerer) (*Exporter, error) {
	e := &Exporter{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mdsim",
			Name:      "steps_total",
			Help:      "Integration steps completed.",
		}),
		potential: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsim",
			Name:      "potential_energy",
			Help:      "Potential energy reported by the last step.",
		}),
		kinetic: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsim",
			Name:      "kinetic_energy",
			Help:      "Kinetic energy reported by the last step.",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsim",
			Name:      "total_energy",
			Help:      "Total energy reported by the last step.",
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsim",
			Name:      "particles",
			Help:      "Number of particles in the cell.",
		}),
	}

	for _, c := range []prometheus.Collector{e.steps, e.potential, e.kinetic, e.total, e.particles} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// OnStep implements sim.Observer.
func (e *Exporter) OnStep(r dynamo.StepReport, st *dynamo.State) {
	e.steps.Inc()
	e.potential.Set(r.Potential)
	e.kinetic.Set(r.Kinetic)
	e.total.Set(r.Total)
	e.particles.Set(float64(st.NParticles()))
}
