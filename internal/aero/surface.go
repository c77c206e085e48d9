package aero

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// MaxFlapAngle is the deflection limit in radians applied by SetFlapAngle.
const MaxFlapAngle = 50 * math.Pi / 180

// SurfaceState is the flap-dependent state derived from a config. All angles
// are in radians.
type SurfaceState struct {
	FlapAngle          float64
	CorrectedLiftSlope float64
	ZeroLiftAoA        float64
	StallAngleHigh     float64
	StallAngleLow      float64
	FullStallAngleHigh float64
	FullStallAngleLow  float64
}

// Surface evaluates lift, drag and pitching torque for one lifting surface.
type Surface struct {
	// Enabled false makes the surface contribute nothing.
	Enabled bool

	cfg   SurfaceConfig
	area  float64
	state SurfaceState
}

// NewSurface validates cfg and initialises the surface with zero flap.
func NewSurface(cfg SurfaceConfig) *Surface {
	s := &Surface{Enabled: true, cfg: cfg.Validate()}
	s.area = s.cfg.Area()
	ar := s.cfg.AspectRatio
	s.state.CorrectedLiftSlope = s.cfg.LiftSlope * ar / (ar + 2*(ar+4)/(ar+2))
	s.SetFlapAngle(0)
	return s
}

func (s *Surface) Config() SurfaceConfig { return s.cfg }
func (s *Surface) State() SurfaceState   { return s.state }
func (s *Surface) FlapAngle() float64    { return s.state.FlapAngle }

// SetFlapAngle clamps angle (radians) to ±MaxFlapAngle and recomputes the
// flap-shifted zero-lift and stall angles.
func (s *Surface) SetFlapAngle(angle float64) {
	if math.IsNaN(angle) {
		angle = 0
	}
	flap := mgl64.Clamp(angle, -MaxFlapAngle, MaxFlapAngle)
	st := &s.state
	st.FlapAngle = flap

	cls := st.CorrectedLiftSlope
	theta := math.Acos(2*s.cfg.FlapFraction - 1)
	flapEffectiveness := 1 - (theta-math.Sin(theta))/math.Pi
	deltaLift := cls * flapEffectiveness * flapEffectivenessCorrection(flap) * flap

	zeroLiftBase := mgl64.DegToRad(s.cfg.ZeroLiftAoA)
	stallHighBase := mgl64.DegToRad(s.cfg.StallAngleHigh)
	stallLowBase := mgl64.DegToRad(s.cfg.StallAngleLow)

	if cls == 0 {
		// A zero lift slope carries no lift to shift.
		st.ZeroLiftAoA = zeroLiftBase
		st.StallAngleHigh = stallHighBase
		st.StallAngleLow = stallLowBase
	} else {
		st.ZeroLiftAoA = zeroLiftBase - deltaLift/cls

		maxFraction := liftCoefficientMaxFraction(s.cfg.FlapFraction)
		clMaxHigh := cls*(stallHighBase-zeroLiftBase) + deltaLift*maxFraction
		clMaxLow := cls*(stallLowBase-zeroLiftBase) + deltaLift*maxFraction

		st.StallAngleHigh = st.ZeroLiftAoA + clMaxHigh/cls
		st.StallAngleLow = st.ZeroLiftAoA + clMaxLow/cls
	}

	pad := blendPadding(flap)
	st.FullStallAngleHigh = st.StallAngleHigh + pad
	st.FullStallAngleLow = st.StallAngleLow - pad
}

// flapEffectivenessCorrection is the empirical 0.8 → 0.4 falloff over a flap
// magnitude of 10° → 60°.
func flapEffectivenessCorrection(flap float64) float64 {
	deg := math.Abs(mgl64.RadToDeg(flap))
	return dynamo.Lerp(0.8, 0.4, (deg-10)/50)
}

func liftCoefficientMaxFraction(flapFraction float64) float64 {
	return dynamo.Clamp01(1 - 0.5*(flapFraction-0.1)/0.3)
}

// blendPadding is the width of the blend band beyond each stall angle:
// 15° at zero flap narrowing to 5° at full deflection.
func blendPadding(flap float64) float64 {
	deg := math.Abs(mgl64.RadToDeg(flap))
	return mgl64.DegToRad(dynamo.Lerp(15, 5, deg/50))
}

// Diagnostics describes one force evaluation for visualization. It never
// feeds back into simulation state.
type Diagnostics struct {
	AngleOfAttack float64
	Coefficients  Coefficients
	Lift          mgl64.Vec3
	Drag          mgl64.Vec3
	Torque        mgl64.Vec3
	Stalled       bool
}

// CalculateForces converts a relative airflow sample into a world-frame force
// and torque about the reference point.
//
// orientation rotates surface-local axes into world axes, airflow is the
// world-frame velocity of the air relative to the surface and offset is the
// surface position relative to the reference point (usually the center of
// mass). The out-of-plane (spanwise) airflow component is discarded.
func (s *Surface) CalculateForces(orientation mgl64.Quat, airflow mgl64.Vec3, airDensity float64, offset mgl64.Vec3) (ForceTorque, Diagnostics) {
	if s == nil || !s.Enabled {
		return ForceTorque{}, Diagnostics{}
	}

	local := orientation.Inverse().Rotate(airflow)
	local[2] = 0

	localDir, ok := dynamo.SafeNormalize(local)
	if !ok {
		return ForceTorque{}, Diagnostics{}
	}

	spanAxis := orientation.Rotate(mgl64.Vec3{0, 0, 1})
	dragDir := orientation.Rotate(localDir)
	liftDir := dragDir.Cross(spanAxis)

	aoa := math.Atan2(local[1], -local[0])
	c := s.Coefficients(aoa)

	qs := 0.5 * airDensity * local.LenSqr() * s.area

	diag := Diagnostics{
		AngleOfAttack: aoa,
		Coefficients:  c,
		Lift:          liftDir.Mul(c.Lift * qs),
		Drag:          dragDir.Mul(c.Drag * qs),
		Torque:        spanAxis.Mul(-c.Torque * qs * s.cfg.Chord),
		Stalled:       c.Regime != RegimeLinear,
	}

	force := diag.Lift.Add(diag.Drag)
	return ForceTorque{
		Force:  force,
		Torque: offset.Cross(force).Add(diag.Torque),
	}, diag
}
