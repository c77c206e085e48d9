package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
)

type bodyState struct {
	com mgl64.Vec3
	q   mgl64.Quat
	v   mgl64.Vec3
	w   mgl64.Vec3
}

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) derive(k *aircraft.Kinematics, s bodyState, load aero.ForceTorque, gravity mgl64.Vec3) bodyState {
	spin := mgl64.Quat{W: 0, V: s.w}
	return bodyState{
		com: s.v,
		q:   spin.Mul(s.q).Scale(0.5),
		v:   linearAcceleration(k, load.Force, gravity),
		w:   angularAcceleration(k, s.q.Normalize(), s.w, load.Torque),
	}
}

func advance(s, d bodyState, h float64) bodyState {
	return bodyState{
		com: s.com.Add(d.com.Mul(h)),
		q:   s.q.Add(d.q.Scale(h)),
		v:   s.v.Add(d.v.Mul(h)),
		w:   s.w.Add(d.w.Mul(h)),
	}
}

func (r *RK4) Step(k *aircraft.Kinematics, load aero.ForceTorque, gravity mgl64.Vec3, dt float64) {
	s := bodyState{com: k.CenterOfMass, q: k.Rotation, v: k.Velocity, w: k.AngularVelocity}

	k1 := r.derive(k, s, load, gravity)
	k2 := r.derive(k, advance(s, k1, dt/2), load, gravity)
	k3 := r.derive(k, advance(s, k2, dt/2), load, gravity)
	k4 := r.derive(k, advance(s, k3, dt), load, gravity)

	sum := bodyState{
		com: k1.com.Add(k2.com.Mul(2)).Add(k3.com.Mul(2)).Add(k4.com),
		q:   k1.q.Add(k2.q.Scale(2)).Add(k3.q.Scale(2)).Add(k4.q),
		v:   k1.v.Add(k2.v.Mul(2)).Add(k3.v.Mul(2)).Add(k4.v),
		w:   k1.w.Add(k2.w.Mul(2)).Add(k3.w.Mul(2)).Add(k4.w),
	}
	next := advance(s, sum, dt/6)

	commit(k, next.com, next.q.Normalize(), next.v, next.w)
}
