package aero

import "github.com/go-gl/mathgl/mgl64"

// ForceTorque is a world-frame force and the torque it produces about a
// shared reference point. The zero value is the additive identity.
type ForceTorque struct {
	Force  mgl64.Vec3
	Torque mgl64.Vec3
}

func (a ForceTorque) Add(b ForceTorque) ForceTorque {
	return ForceTorque{Force: a.Force.Add(b.Force), Torque: a.Torque.Add(b.Torque)}
}

func (a ForceTorque) Scale(f float64) ForceTorque {
	return ForceTorque{Force: a.Force.Mul(f), Torque: a.Torque.Mul(f)}
}

func (a ForceTorque) IsZero() bool {
	return a == ForceTorque{}
}

// Average returns the arithmetic mean of the pairs, or the zero pair for an
// empty argument list.
func Average(pairs ...ForceTorque) ForceTorque {
	if len(pairs) == 0 {
		return ForceTorque{}
	}
	var sum ForceTorque
	for _, p := range pairs {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pairs)))
}
