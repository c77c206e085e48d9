package config

import (
	"fmt"
	"os"

	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/flight"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 30.0
	DefaultAirDensity  = 1.225
	DefaultGravity     = 9.81
	DefaultIntegrator  = "semi-implicit"
	DefaultPilot       = "manual"
	DefaultAltitude    = 1000.0
	DefaultAirspeed    = 45.0
	DefaultKp          = 2.0
	DefaultKi          = 0.2
	DefaultKd          = 0.6
	DefaultPredictFrac = 0.5
)

// Config describes one aircraft and how to fly it.
type Config struct {
	Name        string            `yaml:"name"`
	Integrator  string            `yaml:"integrator"`
	Sim         flight.Config     `yaml:"sim"`
	Environment EnvironmentConfig `yaml:"environment"`
	Airframe    AirframeConfig    `yaml:"airframe"`
	Surfaces    []MountConfig     `yaml:"surfaces"`
	Bindings    []BindingConfig   `yaml:"bindings"`
	Pilot       PilotConfig       `yaml:"pilot"`
	Initial     InitialConfig     `yaml:"initial"`
}

type EnvironmentConfig struct {
	AirDensity float64    `yaml:"air_density"`
	Wind       [3]float64 `yaml:"wind"`
	Gravity    float64    `yaml:"gravity"`
}

// AirframeConfig holds mass properties in body coordinates: +X right, +Y up,
// +Z forward.
type AirframeConfig struct {
	Mass               float64    `yaml:"mass"`
	Inertia            [3]float64 `yaml:"inertia"`
	InertiaRotationDeg [3]float64 `yaml:"inertia_rotation_deg"`
	CenterOfMass       [3]float64 `yaml:"center_of_mass"`
	MaxThrust          float64    `yaml:"max_thrust"`
	PredictionFraction float64    `yaml:"prediction_fraction"`
	Parallel           bool       `yaml:"parallel"`
}

// MountConfig places one surface. RotationDeg turns surface-local axes
// (X chord, Y normal, Z span) into body axes, applied X then Y then Z.
type MountConfig struct {
	Name        string             `yaml:"name"`
	Position    [3]float64         `yaml:"position"`
	RotationDeg [3]float64         `yaml:"rotation_deg"`
	Disabled    bool               `yaml:"disabled,omitempty"`
	Surface     aero.SurfaceConfig `yaml:"surface"`
}

type BindingConfig struct {
	Mount         string       `yaml:"mount"`
	Axis          control.Axis `yaml:"axis"`
	DeflectionDeg float64      `yaml:"deflection_deg"`
}

type PilotConfig struct {
	Kind      string  `yaml:"kind"`
	Pitch     float64 `yaml:"pitch"`
	Yaw       float64 `yaml:"yaw"`
	Roll      float64 `yaml:"roll"`
	Throttle  float64 `yaml:"throttle"`
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
	TargetDeg float64 `yaml:"target_deg"`
}

// InitialConfig starts the body in level translation at Airspeed, nose
// raised by PitchDeg.
type InitialConfig struct {
	Altitude   float64 `yaml:"altitude"`
	Airspeed   float64 `yaml:"airspeed"`
	PitchDeg   float64 `yaml:"pitch_deg"`
	HeadingDeg float64 `yaml:"heading_deg"`
	BankDeg    float64 `yaml:"bank_deg"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "default",
		Integrator: DefaultIntegrator,
		Sim: flight.Config{
			Dt:            DefaultDt,
			Duration:      DefaultDuration,
			ValidateState: true,
		},
		Environment: EnvironmentConfig{
			AirDensity: DefaultAirDensity,
			Gravity:    DefaultGravity,
		},
		Airframe: AirframeConfig{
			Mass:               700,
			Inertia:            [3]float64{2000, 2500, 900},
			PredictionFraction: DefaultPredictFrac,
		},
		Pilot: PilotConfig{
			Kind: DefaultPilot,
			Kp:   DefaultKp,
			Ki:   DefaultKi,
			Kd:   DefaultKd,
		},
		Initial: InitialConfig{
			Altitude: DefaultAltitude,
			Airspeed: DefaultAirspeed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot be flown. Surface coefficients are
// not checked here; they are clamped when the surface is built.
func (c *Config) Validate() error {
	if !(c.Sim.Dt > 0) || !(c.Sim.Duration > 0) {
		return fmt.Errorf("sim dt %v, duration %v: %w", c.Sim.Dt, c.Sim.Duration, dynamo.ErrParameterBounds)
	}
	if !(c.Airframe.Mass > 0) {
		return fmt.Errorf("mass %v: %w", c.Airframe.Mass, dynamo.ErrParameterBounds)
	}
	for i, v := range c.Airframe.Inertia {
		if !(v > 0) {
			return fmt.Errorf("inertia[%d] %v: %w", i, v, dynamo.ErrParameterBounds)
		}
	}
	if c.Environment.AirDensity < 0 || c.Airframe.MaxThrust < 0 {
		return fmt.Errorf("air density %v, max thrust %v: %w", c.Environment.AirDensity, c.Airframe.MaxThrust, dynamo.ErrParameterBounds)
	}

	seen := make(map[string]bool, len(c.Surfaces))
	for _, s := range c.Surfaces {
		if s.Name == "" {
			return fmt.Errorf("surface without a name: %w", dynamo.ErrParameterBounds)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate surface %q: %w", s.Name, dynamo.ErrParameterBounds)
		}
		seen[s.Name] = true
	}
	for _, b := range c.Bindings {
		if !seen[b.Mount] {
			return fmt.Errorf("binding %s: surface %q: %w", b.Axis, b.Mount, dynamo.ErrUnknownName)
		}
	}
	return nil
}
