package sim

import "github.com/san-kum/mdsim/internal/dynamo"

// Phase is the lifecycle stage of a Simulator.
type Phase int

const (
	Uninitialized Phase = iota
	Ready
	Running
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(r dynamo.StepReport, st *dynamo.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r dynamo.StepReport, st *dynamo.State)

func (f ObserverFunc) OnStep(r dynamo.StepReport, st *dynamo.State) { f(r, st) }

// Metric accumulates a scalar over the step reports of a run.
type Metric interface {
	Name() string
	Observe(r dynamo.StepReport)
	Value() float64
	Reset()
}
