// Package report renders per-step energies as plain text.
package report

import (
	"fmt"
	"io"

	"github.com/san-kum/mdsim/internal/dynamo"
)

// Text writes one block per step:
//
//	Iteration 0
//	    Potential Energy: -0.30402
//	    Kinetic Energy:   0
//	    Total Energy:     -0.30402
//
// Write errors are sticky and returned by Err and Done.
type Text struct {
	w   io.Writer
	err error
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// OnStep implements sim.Observer.
func (t *Text) OnStep(r dynamo.StepReport, _ *dynamo.State) {
	t.Write(r)
}

func (t *Text) Write(r dynamo.StepReport) {
	t.printf("Iteration %d\n", r.Step)
	t.printf("    Potential Energy: %.6g\n", r.Potential)
	t.printf("    Kinetic Energy:   %.6g\n", r.Kinetic)
	t.printf("    Total Energy:     %.6g\n\n", r.Total)
}

// Done writes the completion line.
func (t *Text) Done() error {
	t.printf("Simulation completed.\n")
	return t.err
}

func (t *Text) Err() error { return t.err }

func (t *Text) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
