// Package control turns pilot input into control surface deflections.
//
// A [Pilot] produces normalised [Controls] each tick. A [Mixer] maps each
// axis onto the flap angle of one or more bound surfaces:
//
//   - [Manual]: fixed stick and throttle, set from the outside
//   - [PitchHold]: PID loop holding a pitch attitude
//
// # Usage
//
//	mixer, err := control.NewMixer(agg, []control.Binding{
//		{Mount: "elevator", Axis: control.Pitch, Deflection: -0.35},
//	})
//	mixer.Apply(pilot.Compute(&k, t))
//
// Pilots implementing [dynamo.Configurable] support live tuning.
package control
