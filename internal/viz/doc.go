// Package viz provides the terminal flight view.
//
// The view is a Bubble Tea program:
//
//   - [Model]: preset menu, then a live chase view of the airframe with
//     telemetry and altitude/airspeed graphs
//   - [Canvas]: Braille-based pixel canvas for the wireframe
//   - [Camera]: chase camera projecting world points onto the canvas
//
// # Key Bindings
//
//	W/S   - Pitch down/up
//	A/D   - Roll left/right
//	Z/C   - Yaw left/right
//	+/-   - Throttle
//	X     - Center the stick
//	[ ]   - Orbit the camera
//	, .   - Zoom out/in
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	T     - Cycle color themes
//	?     - Show help overlay
//	Esc   - Back to the menu
package viz
