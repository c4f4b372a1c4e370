// Package dynamo provides the core data types of an mdsim run.
//
// The package holds the simulation state and the values exchanged around
// it:
//
//   - [State]: particle positions, velocities, forces and energies in a
//     periodic cubic cell
//   - [Config]: box size, particle count and run options
//   - [StepReport]: energies reported after each integration step
//   - [Result]: the outcome of a completed run
//
// Force laws never see a State directly. They receive a
// [forceabi.Handle] built by [State.Handle] for the duration of one call.
//
// # Example
//
//	st, _ := dynamo.NewState(20.0, 2)
//	st.Positions[1] = forceabi.Vec3{1.5, 0, 0}
//	h := st.Handle()
//	_ = ff.EvaluateForces(h)
//
// # Thread Safety
//
// State is NOT thread-safe. It is owned by a single simulator goroutine.
package dynamo
