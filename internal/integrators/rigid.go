package integrators

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// Integrator advances k by dt under load (about the center of mass) and a
// uniform gravitational acceleration.
type Integrator interface {
	Step(k *aircraft.Kinematics, load aero.ForceTorque, gravity mgl64.Vec3, dt float64)
}

// New returns the integrator registered under name.
func New(name string) (Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "", "semi-implicit", "symplectic":
		return NewSemiImplicitEuler(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("integrator %q: %w", name, dynamo.ErrUnknownName)
}

// Names lists the registered integrators.
func Names() []string {
	return []string{"euler", "semi-implicit", "rk4"}
}

func linearAcceleration(k *aircraft.Kinematics, force, gravity mgl64.Vec3) mgl64.Vec3 {
	return force.Mul(1 / k.Mass).Add(gravity)
}

// angularAcceleration solves I·α = τ − ω×(I·ω) in principal axes for a body
// at attitude q.
func angularAcceleration(k *aircraft.Kinematics, q mgl64.Quat, w, torque mgl64.Vec3) mgl64.Vec3 {
	rot := q.Mul(k.InertiaRotation)
	inv := rot.Inverse()
	wp := inv.Rotate(w)
	tp := inv.Rotate(torque)
	gyro := wp.Cross(dynamo.MulElem(k.Inertia, wp))
	return rot.Rotate(dynamo.DivElem(tp.Sub(gyro), k.Inertia))
}

// rotate applies a world-frame angular velocity w for dt to q.
func rotate(q mgl64.Quat, w mgl64.Vec3, dt float64) mgl64.Quat {
	rate := w.Len()
	angle := rate * dt
	if angle < dynamo.Epsilon {
		return q
	}
	dq := mgl64.QuatRotate(angle, w.Mul(1/rate))
	return dq.Mul(q).Normalize()
}

// commit writes the integrated center of mass state back into k and moves
// the body origin rigidly with it.
func commit(k *aircraft.Kinematics, com mgl64.Vec3, q mgl64.Quat, v, w mgl64.Vec3) {
	offset := k.Position.Sub(k.CenterOfMass)
	turn := q.Mul(k.Rotation.Inverse())
	k.Position = com.Add(turn.Rotate(offset))
	k.CenterOfMass = com
	k.Rotation = q
	k.Velocity = v
	k.AngularVelocity = w
}
