package aircraft

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// Kinematics is the rigid-body state supplied by the physics integrator.
type Kinematics struct {
	Position        mgl64.Vec3 // body origin, world frame
	Rotation        mgl64.Quat // body to world
	Velocity        mgl64.Vec3 // of the center of mass, world frame
	AngularVelocity mgl64.Vec3 // world frame
	CenterOfMass    mgl64.Vec3 // world frame
	Mass            float64
	Inertia         mgl64.Vec3 // diagonal, principal axes
	InertiaRotation mgl64.Quat // principal axes to body
}

// Forward is the body +Z axis in world coordinates.
func (k *Kinematics) Forward() mgl64.Vec3 {
	return k.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Up is the body +Y axis in world coordinates.
func (k *Kinematics) Up() mgl64.Vec3 {
	return k.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// InertiaWorldRotation maps principal axes to world axes.
func (k *Kinematics) InertiaWorldRotation() mgl64.Quat {
	return k.Rotation.Mul(k.InertiaRotation)
}

// PointVelocity is the world velocity of a point rigidly attached to the body.
func (k *Kinematics) PointVelocity(point mgl64.Vec3) mgl64.Vec3 {
	return pointVelocity(k.Velocity, k.AngularVelocity, point.Sub(k.CenterOfMass))
}

// pointVelocity is v + ω×rel for a point at rel from the center of mass.
func pointVelocity(velocity, angular, rel mgl64.Vec3) mgl64.Vec3 {
	return velocity.Add(angular.Cross(rel))
}

// Validate reports non-finite fields or non-physical mass properties.
func (k *Kinematics) Validate() error {
	vecs := []mgl64.Vec3{k.Position, k.Velocity, k.AngularVelocity, k.CenterOfMass, k.Inertia}
	for _, v := range vecs {
		if !dynamo.IsFiniteVec(v) {
			return dynamo.ErrInvalidState
		}
	}
	if !dynamo.IsFiniteQuat(k.Rotation) || !dynamo.IsFiniteQuat(k.InertiaRotation) {
		return dynamo.ErrInvalidState
	}
	if !(k.Mass > 0) || !dynamo.IsFinite(k.Mass) {
		return fmt.Errorf("mass %v: %w", k.Mass, dynamo.ErrParameterBounds)
	}
	if k.Inertia[0] <= 0 || k.Inertia[1] <= 0 || k.Inertia[2] <= 0 {
		return fmt.Errorf("inertia %v: %w", k.Inertia, dynamo.ErrParameterBounds)
	}
	return nil
}
