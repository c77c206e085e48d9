package aero

import (
	"math"

	"github.com/san-kum/aerosim/internal/dynamo"
)

// Regime identifies which coefficient model produced a result.
type Regime int

const (
	RegimeLinear Regime = iota
	RegimeBlend
	RegimeStall
)

func (r Regime) String() string {
	switch r {
	case RegimeLinear:
		return "linear"
	case RegimeBlend:
		return "blend"
	case RegimeStall:
		return "stall"
	default:
		return "unknown"
	}
}

// Coefficients are the non-dimensional lift, drag and pitching-torque
// coefficients at one angle of attack.
type Coefficients struct {
	Lift   float64
	Drag   float64
	Torque float64
	Regime Regime
}

// minCos keeps the linear-regime normal resolution away from cos(θ) = 0.
const minCos = 1e-6

// Coefficients evaluates the surface at angle of attack aoa (radians) with
// the current flap deflection.
func (s *Surface) Coefficients(aoa float64) Coefficients {
	st := &s.state
	if aoa < st.StallAngleHigh && aoa > st.StallAngleLow {
		c := s.linearCoefficients(aoa)
		c.Regime = RegimeLinear
		return c
	}

	if aoa > st.FullStallAngleHigh || aoa < st.FullStallAngleLow {
		c := s.stallCoefficients(aoa)
		c.Regime = RegimeStall
		return c
	}

	var low, stall Coefficients
	var t float64
	if aoa >= st.StallAngleHigh {
		low = s.linearCoefficients(st.StallAngleHigh)
		stall = s.stallCoefficients(st.FullStallAngleHigh)
		t = dynamo.InverseLerp(st.StallAngleHigh, st.FullStallAngleHigh, aoa)
	} else {
		low = s.linearCoefficients(st.StallAngleLow)
		stall = s.stallCoefficients(st.FullStallAngleLow)
		t = dynamo.InverseLerp(st.StallAngleLow, st.FullStallAngleLow, aoa)
	}

	return Coefficients{
		Lift:   dynamo.Lerp(low.Lift, stall.Lift, t),
		Drag:   dynamo.Lerp(low.Drag, stall.Drag, t),
		Torque: dynamo.Lerp(low.Torque, stall.Torque, t),
		Regime: RegimeBlend,
	}
}

func (s *Surface) linearCoefficients(aoa float64) Coefficients {
	st := &s.state
	ar := s.cfg.AspectRatio

	lift := st.CorrectedLiftSlope * (aoa - st.ZeroLiftAoA)
	inducedAngle := lift / (math.Pi * ar)
	effective := aoa - st.ZeroLiftAoA - inducedAngle

	sinE, cosE := math.Sincos(effective)
	tangential := s.cfg.SkinFriction * cosE

	div := cosE
	if math.Abs(div) < minCos {
		div = math.Copysign(minCos, div)
	}
	normal := (lift + sinE*tangential) / div

	return Coefficients{
		Lift:   lift,
		Drag:   normal*sinE + tangential*cosE,
		Torque: -normal * torqueArmFraction(effective),
	}
}

func (s *Surface) stallCoefficients(aoa float64) Coefficients {
	st := &s.state
	ar := s.cfg.AspectRatio
	halfPi := math.Pi / 2
	clamped := math.Max(-halfPi, math.Min(halfPi, aoa))

	// Induced angle fades from its stall-boundary value to zero at ±90°.
	var liftAtStall, fade float64
	if aoa > st.StallAngleHigh {
		liftAtStall = st.CorrectedLiftSlope * (st.StallAngleHigh - st.ZeroLiftAoA)
		fade = dynamo.InverseLerp(halfPi, st.StallAngleHigh, clamped)
	} else {
		liftAtStall = st.CorrectedLiftSlope * (st.StallAngleLow - st.ZeroLiftAoA)
		fade = dynamo.InverseLerp(-halfPi, st.StallAngleLow, clamped)
	}
	inducedAngle := dynamo.Lerp(0, liftAtStall/(math.Pi*ar), fade)
	effective := aoa - st.ZeroLiftAoA - inducedAngle

	sinE, cosE := math.Sincos(effective)
	normal := s.frictionAt90() * sinE *
		(1/(0.56+0.44*math.Abs(sinE)) - 0.41*(1-math.Exp(-17/ar)))
	tangential := 0.5 * s.cfg.SkinFriction * cosE

	return Coefficients{
		Lift:   normal*cosE - tangential*sinE,
		Drag:   normal*sinE + tangential*cosE,
		Torque: -normal * torqueArmFraction(effective),
	}
}

// torqueArmFraction moves the center of pressure from quarter chord toward
// mid chord as the effective angle grows.
func torqueArmFraction(effective float64) float64 {
	return 0.25 - 0.175*(1-2*math.Abs(effective)/math.Pi)
}

func (s *Surface) frictionAt90() float64 {
	f := s.state.FlapAngle
	return 1.98 - 4.26e-2*f*f + 2.1e-1*f
}
