// Package forcefield implements the force laws shipped with mdsim and the
// two ways the engine obtains one.
//
// Force laws compiled into the binary are looked up by name through a
// [Registry] ("lj", "ideal"). Force laws built separately with
// -buildmode=plugin are loaded with [Open], which resolves the entry points
// described in package forceabi and rejects modules built against another
// ABI version.
//
// [LennardJones] evaluates all ordered pairs with the minimum-image
// convention and a hard cutoff. Each ordered pair contributes half of the
// shifted pair energy, so the reported potential counts every unordered
// pair exactly once.
package forcefield
