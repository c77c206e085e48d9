package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(k *aircraft.Kinematics, load aero.ForceTorque, gravity mgl64.Vec3, dt float64) {
	a := linearAcceleration(k, load.Force, gravity)
	alpha := angularAcceleration(k, k.Rotation, k.AngularVelocity, load.Torque)

	com := k.CenterOfMass.Add(k.Velocity.Mul(dt))
	q := rotate(k.Rotation, k.AngularVelocity, dt)
	commit(k, com, q, k.Velocity.Add(a.Mul(dt)), k.AngularVelocity.Add(alpha.Mul(dt)))
}

type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (s *SemiImplicitEuler) Step(k *aircraft.Kinematics, load aero.ForceTorque, gravity mgl64.Vec3, dt float64) {
	a := linearAcceleration(k, load.Force, gravity)
	alpha := angularAcceleration(k, k.Rotation, k.AngularVelocity, load.Torque)

	v := k.Velocity.Add(a.Mul(dt))
	w := k.AngularVelocity.Add(alpha.Mul(dt))
	commit(k, k.CenterOfMass.Add(v.Mul(dt)), rotate(k.Rotation, w, dt), v, w)
}
