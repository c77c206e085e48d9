// Package dynamo provides the numeric primitives shared by the aerodynamic
// model and the flight loop.
//
// Contents:
//
//   - [Lerp], [InverseLerp], [Clamp01]: clamped interpolation helpers
//   - [SafeNormalize], [IsFiniteVec]: guarded vector operations on mgl64 types
//   - [ParallelFor]: chunked fan-out for independent per-surface work
//   - domain errors ([ErrParameterBounds], [ErrInvalidState], ...) and
//     [SimError] for step/time context
//
// # Example
//
//	dir, ok := dynamo.SafeNormalize(airflow)
//	if !ok {
//	    return aero.ForceTorque{}
//	}
//
// # Thread Safety
//
// Every function here is pure. [ParallelFor] only calls fn on disjoint ranges.
package dynamo
