// Package flight runs the fixed-tick flight loop.
//
// Each tick the [control.Pilot] produces stick input, the [control.Mixer]
// deflects the bound surfaces, the [aircraft.Aggregator] samples the
// stabilised aerodynamic load and the [integrators.Integrator] advances the
// rigid body under that load, thrust and gravity.
//
// # Usage
//
//	sim := flight.New(agg, mixer, pilot, integrators.NewSemiImplicitEuler())
//	sim.Env.AirDensity = 1.225
//	result, err := sim.Run(ctx, k0, flight.Config{Dt: 0.02, Duration: 60})
package flight
