package forcefield

import (
	"fmt"
	"plugin"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

// SymbolTable is satisfied by *plugin.Plugin.
type SymbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

// Open loads a force law built with -buildmode=plugin and resolves its
// entry points.
func Open(path string) (forceabi.ForceField, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrPluginLoad, path, err)
	}
	ff, err := FromSymbols(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ff, nil
}

// FromSymbols checks the module's ABI version and binds its Initialize and
// EvaluateForces functions.
func FromSymbols(tab SymbolTable) (forceabi.ForceField, error) {
	sym, err := tab.Lookup(forceabi.SymbolVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrEntryPoint, forceabi.SymbolVersion, err)
	}
	version, ok := sym.(*int)
	if !ok {
		return nil, fmt.Errorf("%w: %s has type %T, want *int", dynamo.ErrEntryPoint, forceabi.SymbolVersion, sym)
	}
	if *version != forceabi.Version {
		return nil, fmt.Errorf("%w: module %d, engine %d", dynamo.ErrABIVersion, *version, forceabi.Version)
	}

	initFn, err := lookupFunc(tab, forceabi.SymbolInitialize)
	if err != nil {
		return nil, err
	}
	eval, err := lookupFunc(tab, forceabi.SymbolEvaluateForces)
	if err != nil {
		return nil, err
	}
	return forceabi.Funcs{Init: initFn, Evaluate: eval}, nil
}

func lookupFunc(tab SymbolTable, name string) (func(*forceabi.Handle) error, error) {
	sym, err := tab.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrEntryPoint, name, err)
	}
	fn, ok := sym.(func(*forceabi.Handle) error)
	if !ok {
		return nil, fmt.Errorf("%w: %s has type %T", dynamo.ErrEntryPoint, name, sym)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %s is nil", dynamo.ErrEntryPoint, name)
	}
	return fn, nil
}
