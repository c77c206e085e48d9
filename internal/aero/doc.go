// Package aero models the aerodynamics of a single lifting surface.
//
// A [Surface] owns a validated [SurfaceConfig] and the flap deflection
// commanded by the control layer. Every call to [Surface.SetFlapAngle]
// recomputes the flap-shifted zero-lift angle and stall boundaries, so the
// evaluation path never sees stale derived state.
//
// Coefficients are produced in three regimes:
//
//   - linear: thin-airfoil lift with finite-aspect-ratio and induced-angle
//     corrections
//   - full stall: flat-plate normal force with a reduced skin-friction term
//   - blend: linear interpolation between the two across a padding band
//     beyond each stall angle
//
// Surface-local axes: X runs along the chord (leading edge toward +X),
// Y is the surface normal and Z is the span. Airflow arriving along -X is
// zero angle of attack.
//
// # Example
//
//	wing := aero.NewSurface(aero.DefaultSurfaceConfig())
//	wing.SetFlapAngle(mgl64.DegToRad(10))
//	ft, diag := wing.CalculateForces(orientation, airflow, 1.2, offset)
//
// [Surface.CalculateForces] is pure with respect to the surface: any number of
// goroutines may evaluate the same surface as long as none calls
// SetFlapAngle concurrently.
package aero
