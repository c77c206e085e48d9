package analysis

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aircraft"
)

type StabilityPoint struct {
	AoADeg       float64
	Force        mgl64.Vec3
	CenterOfLift mgl64.Vec3 // body frame, relative to the center of mass
	PitchMoment  float64    // nose-up positive, N·m about the center of mass
	Defined      bool
}

// StaticStability evaluates the airframe in a steady freestream at each AoA
// with the body level at the origin. Flaps stay where they are.
func StaticStability(agg *aircraft.Aggregator, k aircraft.Kinematics, airspeed, density float64, aoaDeg []float64) []StabilityPoint {
	comBody := k.Rotation.Inverse().Rotate(k.CenterOfMass.Sub(k.Position))

	body := k
	body.Position = mgl64.Vec3{}
	body.Rotation = mgl64.QuatIdent()
	body.CenterOfMass = comBody
	body.AngularVelocity = mgl64.Vec3{}

	points := make([]StabilityPoint, 0, len(aoaDeg))
	for _, a := range aoaDeg {
		rad := mgl64.DegToRad(a)
		body.Velocity = mgl64.Vec3{0, -math.Sin(rad), math.Cos(rad)}.Mul(airspeed)

		ft := agg.Forces(&body, aircraft.Environment{AirDensity: density})
		p := StabilityPoint{
			AoADeg:      a,
			Force:       ft.Force,
			PitchMoment: -ft.Torque.X(),
		}

		center, err := aircraft.CenterOfLift(comBody, ft)
		if err == nil {
			p.CenterOfLift = center.Sub(comBody)
			p.Defined = true
		} else if !errors.Is(err, aircraft.ErrNoNetForce) {
			continue
		}
		points = append(points, p)
	}
	return points
}

// PitchStiffness is the least-squares slope dM/dα (N·m per degree). A
// negative value means the airframe weathervanes back to its trim AoA.
func PitchStiffness(points []StabilityPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for _, p := range points {
		sx += p.AoADeg
		sy += p.PitchMoment
		sxx += p.AoADeg * p.AoADeg
		sxy += p.AoADeg * p.PitchMoment
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}

// TrimAoA interpolates the AoA where the pitch moment crosses zero.
func TrimAoA(points []StabilityPoint) (float64, bool) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.PitchMoment == 0 {
			return a.AoADeg, true
		}
		if (a.PitchMoment < 0) != (b.PitchMoment < 0) {
			t := a.PitchMoment / (a.PitchMoment - b.PitchMoment)
			return a.AoADeg + t*(b.AoADeg-a.AoADeg), true
		}
	}
	return 0, false
}
