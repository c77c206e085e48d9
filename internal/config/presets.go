package config

import (
	"sort"

	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/flight"
)

// wing lays a surface flat with its leading edge toward body +Z.
var wing = [3]float64{0, -90, 0}

// fin stands a surface upright with its normal toward body -X.
var fin = [3]float64{0, -90, 90}

func surface(chord, span, flapFraction, zeroLift float64) aero.SurfaceConfig {
	s := aero.DefaultSurfaceConfig()
	s.Chord = chord
	s.Span = span
	s.FlapFraction = flapFraction
	s.ZeroLiftAoA = zeroLift
	return s
}

var Presets = map[string]*Config{
	"trainer": {
		Name:       "trainer",
		Integrator: DefaultIntegrator,
		Sim:        flight.Config{Dt: 0.01, Duration: 60, ValidateState: true},
		Environment: EnvironmentConfig{
			AirDensity: DefaultAirDensity,
			Gravity:    DefaultGravity,
		},
		Airframe: AirframeConfig{
			Mass:               700,
			Inertia:            [3]float64{2000, 2500, 900},
			CenterOfMass:       [3]float64{0, 0, 0.2},
			MaxThrust:          3000,
			PredictionFraction: DefaultPredictFrac,
		},
		Surfaces: []MountConfig{
			{Name: "wing_left", Position: [3]float64{-1.75, 0, 0}, RotationDeg: wing, Surface: surface(1.5, 3.5, 0, -2)},
			{Name: "wing_right", Position: [3]float64{1.75, 0, 0}, RotationDeg: wing, Surface: surface(1.5, 3.5, 0, -2)},
			{Name: "aileron_left", Position: [3]float64{-4.25, 0, 0}, RotationDeg: wing, Surface: surface(1.5, 1.5, 0.25, -2)},
			{Name: "aileron_right", Position: [3]float64{4.25, 0, 0}, RotationDeg: wing, Surface: surface(1.5, 1.5, 0.25, -2)},
			{Name: "elevator", Position: [3]float64{0, 0.3, -4.5}, RotationDeg: wing, Surface: surface(1, 3, 0.4, 0)},
			{Name: "rudder", Position: [3]float64{0, 0.9, -4.6}, RotationDeg: fin, Surface: surface(1, 1.5, 0.4, 0)},
		},
		Bindings: []BindingConfig{
			{Mount: "aileron_left", Axis: control.Roll, DeflectionDeg: 15},
			{Mount: "aileron_right", Axis: control.Roll, DeflectionDeg: -15},
			{Mount: "elevator", Axis: control.Pitch, DeflectionDeg: -20},
			{Mount: "rudder", Axis: control.Yaw, DeflectionDeg: 20},
		},
		Pilot: PilotConfig{Kind: "manual", Throttle: 0.6, Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		Initial: InitialConfig{
			Altitude: 1000,
			Airspeed: 45,
			PitchDeg: 6,
		},
	},
	"glider": {
		Name:       "glider",
		Integrator: DefaultIntegrator,
		Sim:        flight.Config{Dt: 0.01, Duration: 120, ValidateState: true},
		Environment: EnvironmentConfig{
			AirDensity: DefaultAirDensity,
			Gravity:    DefaultGravity,
		},
		Airframe: AirframeConfig{
			Mass:               350,
			Inertia:            [3]float64{900, 1100, 400},
			CenterOfMass:       [3]float64{0, 0, 0.15},
			PredictionFraction: DefaultPredictFrac,
		},
		Surfaces: []MountConfig{
			{Name: "wing_left", Position: [3]float64{-3, 0, 0}, RotationDeg: wing, Surface: surface(1, 6, 0, -1)},
			{Name: "wing_right", Position: [3]float64{3, 0, 0}, RotationDeg: wing, Surface: surface(1, 6, 0, -1)},
			{Name: "aileron_left", Position: [3]float64{-6.75, 0, 0}, RotationDeg: wing, Surface: surface(0.8, 1.5, 0.3, -1)},
			{Name: "aileron_right", Position: [3]float64{6.75, 0, 0}, RotationDeg: wing, Surface: surface(0.8, 1.5, 0.3, -1)},
			{Name: "elevator", Position: [3]float64{0, 0.4, -5}, RotationDeg: wing, Surface: surface(0.7, 2.4, 0.4, 0)},
			{Name: "rudder", Position: [3]float64{0, 0.8, -5.1}, RotationDeg: fin, Surface: surface(0.8, 1.2, 0.4, 0)},
		},
		Bindings: []BindingConfig{
			{Mount: "aileron_left", Axis: control.Roll, DeflectionDeg: 15},
			{Mount: "aileron_right", Axis: control.Roll, DeflectionDeg: -15},
			{Mount: "elevator", Axis: control.Pitch, DeflectionDeg: -20},
			{Mount: "rudder", Axis: control.Yaw, DeflectionDeg: 20},
		},
		Pilot: PilotConfig{Kind: "pitch_hold", Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd, TargetDeg: 2},
		Initial: InitialConfig{
			Altitude: 600,
			Airspeed: 30,
			PitchDeg: 3,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Surfaces = append([]MountConfig(nil), p.Surfaces...)
	cfg.Bindings = append([]BindingConfig(nil), p.Bindings...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
