package forcefield

import (
	"fmt"
	"sort"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

// Params carries the settings a force law may read at construction.
type Params struct {
	Cutoff float64
}

// Ideal is a non-interacting force law: forces and potential energy stay
// at the zero values the engine sets before each call.
type Ideal struct{}

func NewIdeal() *Ideal { return &Ideal{} }

func (Ideal) Initialize(h *forceabi.Handle) error { return nil }

func (Ideal) EvaluateForces(h *forceabi.Handle) error { return h.Check() }

// Registry resolves force laws compiled into the binary by name.
type Registry struct {
	laws map[string]func(Params) forceabi.ForceField
}

func NewRegistry() *Registry {
	r := &Registry{
		laws: make(map[string]func(Params) forceabi.ForceField),
	}

	r.laws["lj"] = func(p Params) forceabi.ForceField {
		cutoff := p.Cutoff
		if cutoff == 0 {
			cutoff = DefaultCutoff
		}
		return NewLennardJones(cutoff)
	}
	r.laws["ideal"] = func(Params) forceabi.ForceField { return NewIdeal() }

	return r
}

// Register adds or replaces a named force law.
func (r *Registry) Register(name string, fn func(Params) forceabi.ForceField) {
	r.laws[name] = fn
}

func (r *Registry) Get(name string, p Params) (forceabi.ForceField, error) {
	fn, ok := r.laws[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownForceField, name, r.List())
	}
	return fn(p), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.laws))
	for name := range r.laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
