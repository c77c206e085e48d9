package control

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// PitchHold flies the pitch axis with a PID loop on pitch attitude. Wings are
// held level with a proportional roll term; throttle is fixed.
type PitchHold struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64 // pitch attitude, radians
	Throttle float64
	RollGain float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPitchHold(kp, ki, kd, target, throttle float64) *PitchHold {
	return &PitchHold{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Target:   target,
		Throttle: throttle,
		RollGain: 1,
		first:    true,
	}
}

// PitchAngle is the nose elevation above the horizon in radians.
func PitchAngle(k *aircraft.Kinematics) float64 {
	return math.Asin(mgl64.Clamp(k.Forward().Y(), -1, 1))
}

// BankAngle is the right-wing-down roll angle in radians.
func BankAngle(k *aircraft.Kinematics) float64 {
	right := k.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	return -math.Asin(mgl64.Clamp(right.Y(), -1, 1))
}

func (p *PitchHold) Compute(k *aircraft.Kinematics, t float64) Controls {
	err := p.Target - PitchAngle(k)
	c := Controls{
		Roll:     -p.RollGain * BankAngle(k),
		Throttle: p.Throttle,
	}

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		c.Pitch = p.Kp * err
		return c.Clamped()
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		c.Pitch = p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t
		return c.Clamped()
	}
	c.Pitch = p.Kp * err
	return c.Clamped()
}

// Reset clears integral and derivative state
func (p *PitchHold) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PitchHold) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":       p.Kp,
		"Ki":       p.Ki,
		"Kd":       p.Kd,
		"Target":   mgl64.RadToDeg(p.Target),
		"Throttle": p.Throttle,
	}
}

// SetParam adjusts a parameter. Target is given in degrees.
func (p *PitchHold) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = mgl64.DegToRad(value)
	case "Throttle":
		p.Throttle = dynamo.Clamp01(value)
	default:
		return fmt.Errorf("parameter %q: %w", name, dynamo.ErrUnknownName)
	}
	return nil
}

var _ dynamo.Configurable = (*PitchHold)(nil)
