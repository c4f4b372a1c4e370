package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/san-kum/mdsim/internal/dynamo"
)

func TestTextWrite(t *testing.T) {
	var buf bytes.Buffer
	rep := NewText(&buf)

	rep.OnStep(dynamo.StepReport{Step: 0, Potential: -0.5, Kinetic: 0.25, Total: -0.25}, nil)
	rep.OnStep(dynamo.StepReport{Step: 1, Potential: -1234.56789, Kinetic: 1e-7, Total: -1234.5678899}, nil)
	if err := rep.Done(); err != nil {
		t.Fatalf("done: %v", err)
	}

	want := "Iteration 0\n" +
		"    Potential Energy: -0.5\n" +
		"    Kinetic Energy:   0.25\n" +
		"    Total Energy:     -0.25\n\n" +
		"Iteration 1\n" +
		"    Potential Energy: -1234.57\n" +
		"    Kinetic Energy:   1e-07\n" +
		"    Total Energy:     -1234.57\n\n" +
		"Simulation completed.\n"

	if got := buf.String(); got != want {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", got, want)
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestTextStickyError(t *testing.T) {
	w := &failingWriter{}
	rep := NewText(w)

	rep.Write(dynamo.StepReport{})
	rep.Write(dynamo.StepReport{Step: 1})

	if w.calls != 1 {
		t.Errorf("expected writes to stop after the first failure, got %d calls", w.calls)
	}
	if err := rep.Done(); err == nil {
		t.Error("expected error from Done")
	}
}
