package forcefield

import (
	"errors"
	"plugin"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"ideal", "lj"}, r.List())

	ff, err := r.Get("lj", Params{})
	require.NoError(t, err)
	lj, ok := ff.(*LennardJones)
	require.True(t, ok)
	assert.Equal(t, DefaultCutoff, lj.Cutoff)

	ff, err = r.Get("lj", Params{Cutoff: 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, ff.(*LennardJones).Cutoff)

	_, err = r.Get("morse", Params{})
	assert.ErrorIs(t, err, dynamo.ErrUnknownForceField)
}

func TestRegistry_ReturnsFreshInstances(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Get("lj", Params{})
	b, _ := r.Get("lj", Params{})
	assert.NotSame(t, a, b)
}

func TestIdeal(t *testing.T) {
	st, err := dynamo.NewState(10, 3)
	require.NoError(t, err)
	st.Positions[1] = forceabi.Vec3{0.1, 0, 0}

	ff := NewIdeal()
	require.NoError(t, ff.Initialize(st.Handle()))
	require.NoError(t, ff.EvaluateForces(st.Handle()))

	assert.Zero(t, st.PotentialEnergy)
	for _, f := range st.Forces {
		assert.Equal(t, forceabi.Vec3{}, f)
	}
}

type symbols map[string]plugin.Symbol

func (s symbols) Lookup(name string) (plugin.Symbol, error) {
	sym, ok := s[name]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return sym, nil
}

func moduleSymbols(version int) symbols {
	lj := NewLennardJones(DefaultCutoff)
	return symbols{
		forceabi.SymbolVersion:        &version,
		forceabi.SymbolInitialize:     lj.Initialize,
		forceabi.SymbolEvaluateForces: lj.EvaluateForces,
	}
}

func TestFromSymbols(t *testing.T) {
	ff, err := FromSymbols(moduleSymbols(forceabi.Version))
	require.NoError(t, err)

	st, err := dynamo.NewState(20, 2)
	require.NoError(t, err)
	st.Positions[0] = forceabi.Vec3{5, 5, 5}
	st.Positions[1] = forceabi.Vec3{6.5, 5, 5}

	require.NoError(t, ff.Initialize(st.Handle()))
	require.NoError(t, ff.EvaluateForces(st.Handle()))
	assert.InDelta(t, Potential(2.25)-Potential(6.25), st.PotentialEnergy, 1e-12)
}

func TestFromSymbols_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(symbols)
		want   error
	}{
		{"missing version", func(s symbols) { delete(s, forceabi.SymbolVersion) }, dynamo.ErrEntryPoint},
		{"version wrong type", func(s symbols) { s[forceabi.SymbolVersion] = "1" }, dynamo.ErrEntryPoint},
		{"version mismatch", func(s symbols) {
			v := forceabi.Version + 1
			s[forceabi.SymbolVersion] = &v
		}, dynamo.ErrABIVersion},
		{"missing initialize", func(s symbols) { delete(s, forceabi.SymbolInitialize) }, dynamo.ErrEntryPoint},
		{"missing evaluate", func(s symbols) { delete(s, forceabi.SymbolEvaluateForces) }, dynamo.ErrEntryPoint},
		{"evaluate wrong signature", func(s symbols) {
			s[forceabi.SymbolEvaluateForces] = func(h *forceabi.Handle) {}
		}, dynamo.ErrEntryPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := moduleSymbols(forceabi.Version)
			tt.mutate(s)
			_, err := FromSymbols(s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpen_MissingModule(t *testing.T) {
	_, err := Open(t.TempDir() + "/missing.so")
	assert.ErrorIs(t, err, dynamo.ErrPluginLoad)
}
