package analysis

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/dynamo"
)

type PolarPoint struct {
	AoADeg float64
	Lift   float64
	Drag   float64
	Torque float64
	Regime aero.Regime
}

// LiftToDrag is CL/CD, or 0 when drag vanishes.
func (p PolarPoint) LiftToDrag() float64 {
	if p.Drag == 0 {
		return 0
	}
	return p.Lift / p.Drag
}

// Polar sweeps a surface built from cfg with the flap at flapDeg.
func Polar(cfg aero.SurfaceConfig, flapDeg, fromDeg, toDeg, stepDeg float64) ([]PolarPoint, error) {
	if !(stepDeg > 0) || !(toDeg >= fromDeg) {
		return nil, fmt.Errorf("sweep %v..%v step %v: %w", fromDeg, toDeg, stepDeg, dynamo.ErrParameterBounds)
	}

	s := aero.NewSurface(cfg)
	s.SetFlapAngle(mgl64.DegToRad(flapDeg))

	n := int((toDeg-fromDeg)/stepDeg+1e-9) + 1
	points := make([]PolarPoint, 0, n)
	for i := 0; i < n; i++ {
		aoa := fromDeg + float64(i)*stepDeg
		c := s.Coefficients(mgl64.DegToRad(aoa))
		points = append(points, PolarPoint{
			AoADeg: aoa,
			Lift:   c.Lift,
			Drag:   c.Drag,
			Torque: c.Torque,
			Regime: c.Regime,
		})
	}
	return points, nil
}

// BestGlide returns the point with the highest lift-to-drag ratio.
func BestGlide(points []PolarPoint) (PolarPoint, bool) {
	if len(points) == 0 {
		return PolarPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.LiftToDrag() > best.LiftToDrag() {
			best = p
		}
	}
	return best, true
}

// MaxLift returns the point with the highest lift coefficient.
func MaxLift(points []PolarPoint) (PolarPoint, bool) {
	if len(points) == 0 {
		return PolarPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Lift > best.Lift {
			best = p
		}
	}
	return best, true
}
