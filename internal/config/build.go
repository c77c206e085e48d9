package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/flight"
	"github.com/san-kum/aerosim/internal/integrators"
)

// Rotation converts [rx, ry, rz] degrees into a quaternion applying the X
// turn first, then Y, then Z.
func Rotation(deg [3]float64) mgl64.Quat {
	rx := mgl64.QuatRotate(mgl64.DegToRad(deg[0]), mgl64.Vec3{1, 0, 0})
	ry := mgl64.QuatRotate(mgl64.DegToRad(deg[1]), mgl64.Vec3{0, 1, 0})
	rz := mgl64.QuatRotate(mgl64.DegToRad(deg[2]), mgl64.Vec3{0, 0, 1})
	return rz.Mul(ry).Mul(rx)
}

func vec(v [3]float64) mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

// Gravity is the gravitational acceleration vector.
func (c *Config) Gravity() mgl64.Vec3 {
	return mgl64.Vec3{0, -c.Environment.Gravity, 0}
}

func (c *Config) Env() aircraft.Environment {
	return aircraft.Environment{Wind: vec(c.Environment.Wind), AirDensity: c.Environment.AirDensity}
}

// BuildAggregator creates fresh surfaces for every mount.
func (c *Config) BuildAggregator() *aircraft.Aggregator {
	mounts := make([]aircraft.Mount, 0, len(c.Surfaces))
	for _, m := range c.Surfaces {
		s := aero.NewSurface(m.Surface)
		s.Enabled = !m.Disabled
		mounts = append(mounts, aircraft.Mount{
			Name:     m.Name,
			Surface:  s,
			Position: vec(m.Position),
			Rotation: Rotation(m.RotationDeg),
		})
	}

	agg := aircraft.NewAggregator(mounts, c.Airframe.MaxThrust)
	if c.Airframe.PredictionFraction > 0 {
		agg.PredictionFraction = c.Airframe.PredictionFraction
	}
	agg.Parallel = c.Airframe.Parallel
	agg.Gravity = c.Gravity()
	return agg
}

func (c *Config) BuildMixer(agg *aircraft.Aggregator) (*control.Mixer, error) {
	bindings := make([]control.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		bindings = append(bindings, control.Binding{
			Mount:      b.Mount,
			Axis:       b.Axis,
			Deflection: mgl64.DegToRad(b.DeflectionDeg),
		})
	}
	return control.NewMixer(agg, bindings)
}

func (c *Config) BuildPilot() (control.Pilot, error) {
	p := c.Pilot
	switch p.Kind {
	case "", "manual":
		return control.NewManual(control.Controls{Pitch: p.Pitch, Yaw: p.Yaw, Roll: p.Roll, Throttle: p.Throttle}), nil
	case "pitch_hold":
		return control.NewPitchHold(p.Kp, p.Ki, p.Kd, mgl64.DegToRad(p.TargetDeg), p.Throttle), nil
	}
	return nil, fmt.Errorf("pilot %q: %w", p.Kind, dynamo.ErrUnknownName)
}

// InitialKinematics places the body at the configured altitude, attitude and
// airspeed.
func (c *Config) InitialKinematics() aircraft.Kinematics {
	in := c.Initial
	heading := mgl64.QuatRotate(mgl64.DegToRad(in.HeadingDeg), mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(mgl64.DegToRad(-in.PitchDeg), mgl64.Vec3{1, 0, 0})
	bank := mgl64.QuatRotate(mgl64.DegToRad(-in.BankDeg), mgl64.Vec3{0, 0, 1})
	rot := heading.Mul(pitch).Mul(bank)

	pos := mgl64.Vec3{0, in.Altitude, 0}
	return aircraft.Kinematics{
		Position:        pos,
		Rotation:        rot,
		Velocity:        heading.Rotate(mgl64.Vec3{0, 0, in.Airspeed}),
		CenterOfMass:    pos.Add(rot.Rotate(vec(c.Airframe.CenterOfMass))),
		Mass:            c.Airframe.Mass,
		Inertia:         vec(c.Airframe.Inertia),
		InertiaRotation: Rotation(c.Airframe.InertiaRotationDeg),
	}
}

// Build wires a ready-to-run simulator and its initial state.
func (c *Config) Build() (*flight.Simulator, aircraft.Kinematics, error) {
	if err := c.Validate(); err != nil {
		return nil, aircraft.Kinematics{}, err
	}

	integ, err := integrators.New(c.Integrator)
	if err != nil {
		return nil, aircraft.Kinematics{}, err
	}
	pilot, err := c.BuildPilot()
	if err != nil {
		return nil, aircraft.Kinematics{}, err
	}

	agg := c.BuildAggregator()
	mixer, err := c.BuildMixer(agg)
	if err != nil {
		return nil, aircraft.Kinematics{}, err
	}

	sim := flight.New(agg, mixer, pilot, integ)
	sim.Env = c.Env()
	sim.Gravity = c.Gravity()
	return sim, c.InitialKinematics(), nil
}
