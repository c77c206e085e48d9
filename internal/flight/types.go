package flight

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/control"
)

// StandardGravity is the default gravitational acceleration (m/s²).
var StandardGravity = mgl64.Vec3{0, -9.81, 0}

type Config struct {
	Dt            float64 `yaml:"dt" json:"dt"`
	Duration      float64 `yaml:"duration" json:"duration"`
	ValidateState bool    `yaml:"validate_state" json:"validate_state"`
}

// Sample is the body state at the start of a tick together with the load
// and controls applied during it.
type Sample struct {
	Time            float64
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Controls        control.Controls
	Aero            aero.ForceTorque
	Thrust          mgl64.Vec3
	Airspeed        float64
	AngleOfAttack   float64 // body-axis, radians
	LoadFactor      float64
	Stalled         int
	Surfaces        int
}

// Altitude is the height of the body origin.
func (s Sample) Altitude() float64 { return s.Position.Y() }

// StallFraction is the share of surfaces outside the linear regime.
func (s Sample) StallFraction() float64 {
	if s.Surfaces == 0 {
		return 0
	}
	return float64(s.Stalled) / float64(s.Surfaces)
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}
