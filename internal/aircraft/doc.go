// Package aircraft sums surface forces over a rigid body.
//
// An [Aggregator] holds the surfaces mounted on one airframe. Each physics
// tick it samples every surface at the body's current kinematic state,
// predicts the velocities half a step ahead from that sample, samples again
// at the prediction and returns the average of the two. Feeding the average
// to an explicit integrator damps the oscillation that strongly
// velocity-dependent aerodynamic forces otherwise cause at typical fixed
// timesteps.
//
// Body axes: +Z forward, +Y up, +X right. [Kinematics] is owned by the
// caller and is read-only here; the aggregator never advances position or
// attitude.
package aircraft
