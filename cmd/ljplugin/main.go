// Command ljplugin packages the Lennard-Jones force law as a loadable
// module:
//
//	go build -buildmode=plugin -o lj.so ./cmd/ljplugin
//	mdsim run --plugin ./lj.so
package main

import (
	"github.com/san-kum/mdsim/internal/forcefield"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

var ABIVersion = forceabi.Version

var lj = forcefield.NewLennardJones(forcefield.DefaultCutoff)

func Initialize(h *forceabi.Handle) error {
	return lj.Initialize(h)
}

func EvaluateForces(h *forceabi.Handle) error {
	return lj.EvaluateForces(h)
}

func main() {}
