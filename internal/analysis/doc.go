// Package analysis provides offline aerodynamic and flight-dynamics tools.
//
//   - [Polar]: lift, drag and moment coefficients across an AoA sweep
//   - [StaticStability]: center of lift and pitching moment versus AoA
//   - [DominantFrequency]: strongest oscillation in a telemetry channel
//   - [NewPhasePortrait]: two telemetry channels against each other
//
// # Phugoid Detection
//
// The long-period pitch oscillation shows up as a low-frequency peak in the
// altitude or airspeed channel:
//
//	f, _, err := analysis.DominantFrequency(tel.Column("y"), dt)
//	period := 1 / f
package analysis
