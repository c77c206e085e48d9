package aero_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/aerosim/internal/aero"
)

const tolerance = 1e-4

// airflowAt returns a surface-local airflow of the given speed arriving at
// angle of attack aoa (radians).
func airflowAt(aoa, speed float64) mgl64.Vec3 {
	return mgl64.Vec3{-speed * math.Cos(aoa), speed * math.Sin(aoa), 0}
}

func scenarioConfig() aero.SurfaceConfig {
	return aero.SurfaceConfig{
		LiftSlope:       6.28,
		SkinFriction:    0.02,
		ZeroLiftAoA:     0,
		StallAngleHigh:  15,
		StallAngleLow:   -15,
		Chord:           1,
		Span:            1,
		FlapFraction:    0,
		AutoAspectRatio: true,
	}
}

var _ = Describe("Surface", func() {
	var surface *aero.Surface

	BeforeEach(func() {
		surface = aero.NewSurface(scenarioConfig())
	})

	Describe("derived state", func() {
		It("applies the finite aspect ratio correction", func() {
			ar := 1.0
			want := 6.28 * ar / (ar + 2*(ar+4)/(ar+2))
			Expect(surface.State().CorrectedLiftSlope).To(BeNumerically("~", want, 1e-12))
		})

		It("reproduces the unflapped baseline at zero flap", func() {
			cfg := scenarioConfig()
			cfg.ZeroLiftAoA = -2
			cfg.FlapFraction = 0.25
			s := aero.NewSurface(cfg)
			s.SetFlapAngle(0)

			st := s.State()
			Expect(st.ZeroLiftAoA).To(BeNumerically("~", mgl64.DegToRad(-2), tolerance))
			Expect(st.StallAngleHigh).To(BeNumerically("~", mgl64.DegToRad(15), tolerance))
			Expect(st.StallAngleLow).To(BeNumerically("~", mgl64.DegToRad(-15), tolerance))
			Expect(st.FullStallAngleHigh).To(BeNumerically(">", st.StallAngleHigh))
			Expect(st.FullStallAngleLow).To(BeNumerically("<", st.StallAngleLow))
		})

		It("lowers the zero-lift angle for a positive flap", func() {
			cfg := scenarioConfig()
			cfg.FlapFraction = 0.3
			s := aero.NewSurface(cfg)
			before := s.State()

			s.SetFlapAngle(mgl64.DegToRad(20))
			after := s.State()

			Expect(after.ZeroLiftAoA).To(BeNumerically("<", before.ZeroLiftAoA))
			Expect(after.StallAngleHigh).To(BeNumerically("<", before.StallAngleHigh))
		})

		It("recomputes derived fields on every flap change", func() {
			cfg := scenarioConfig()
			cfg.FlapFraction = 0.3
			s := aero.NewSurface(cfg)

			s.SetFlapAngle(mgl64.DegToRad(30))
			s.SetFlapAngle(0)
			Expect(s.State().ZeroLiftAoA).To(BeNumerically("~", 0, 1e-12))
		})

		It("clamps flap commands exactly at fifty degrees", func() {
			cfg := scenarioConfig()
			cfg.FlapFraction = 0.3
			over := aero.NewSurface(cfg)
			limit := aero.NewSurface(cfg)

			over.SetFlapAngle(mgl64.DegToRad(70))
			limit.SetFlapAngle(aero.MaxFlapAngle)

			Expect(over.FlapAngle()).To(Equal(limit.FlapAngle()))
			Expect(over.State()).To(Equal(limit.State()))
			for _, deg := range []float64{-30, 0, 10, 40, 90} {
				aoa := mgl64.DegToRad(deg)
				Expect(over.Coefficients(aoa)).To(Equal(limit.Coefficients(aoa)))
			}
		})

		It("treats a NaN flap command as neutral", func() {
			surface.SetFlapAngle(math.NaN())
			Expect(surface.FlapAngle()).To(BeZero())
		})
	})

	Describe("coefficients", func() {
		It("uses only the linear formula inside the stall angles", func() {
			cls := surface.State().CorrectedLiftSlope
			for deg := -14.0; deg <= 14.0; deg += 0.5 {
				aoa := mgl64.DegToRad(deg)
				c := surface.Coefficients(aoa)
				Expect(c.Regime).To(Equal(aero.RegimeLinear))
				Expect(c.Lift).To(BeNumerically("~", cls*aoa, 1e-12))
			}
		})

		It("increases lift monotonically through the linear range", func() {
			prev := math.Inf(-1)
			for deg := -14.9; deg < 15; deg += 0.1 {
				cl := surface.Coefficients(mgl64.DegToRad(deg)).Lift
				Expect(cl).To(BeNumerically(">", prev))
				prev = cl
			}
		})

		It("is continuous across every regime boundary", func() {
			for _, flapDeg := range []float64{-40, -10, 0, 15, 50} {
				cfg := scenarioConfig()
				cfg.FlapFraction = 0.2
				s := aero.NewSurface(cfg)
				s.SetFlapAngle(mgl64.DegToRad(flapDeg))
				st := s.State()

				for _, edge := range []float64{st.StallAngleHigh, st.FullStallAngleHigh, st.StallAngleLow, st.FullStallAngleLow} {
					below := s.Coefficients(edge - 1e-7)
					above := s.Coefficients(edge + 1e-7)
					Expect(above.Lift).To(BeNumerically("~", below.Lift, tolerance))
					Expect(above.Drag).To(BeNumerically("~", below.Drag, tolerance))
					Expect(above.Torque).To(BeNumerically("~", below.Torque, tolerance))
				}
			}
		})

		It("classifies the blend band", func() {
			st := surface.State()
			mid := 0.5 * (st.StallAngleHigh + st.FullStallAngleHigh)
			Expect(surface.Coefficients(mid).Regime).To(Equal(aero.RegimeBlend))
			Expect(surface.Coefficients(st.FullStallAngleHigh + 0.01).Regime).To(Equal(aero.RegimeStall))
		})

		It("routes ninety degrees through the stall model without blowing up", func() {
			c := surface.Coefficients(math.Pi / 2)
			Expect(c.Regime).To(Equal(aero.RegimeStall))
			Expect(math.IsNaN(c.Lift) || math.IsInf(c.Lift, 0)).To(BeFalse())
			Expect(math.IsNaN(c.Drag) || math.IsInf(c.Drag, 0)).To(BeFalse())
			Expect(c.Drag).To(BeNumerically(">", 1))
		})

		It("stays finite for a reversed airflow", func() {
			c := surface.Coefficients(math.Pi)
			Expect(c.Regime).To(Equal(aero.RegimeStall))
			Expect(math.IsNaN(c.Torque)).To(BeFalse())
		})
	})

	Describe("CalculateForces", func() {
		It("matches the hand-computed lift at five degrees", func() {
			aoa := mgl64.DegToRad(5)
			ft, diag := surface.CalculateForces(mgl64.QuatIdent(), airflowAt(aoa, 50), 1.2, mgl64.Vec3{})

			cl := surface.State().CorrectedLiftSlope * aoa
			Expect(diag.Coefficients.Lift).To(BeNumerically("~", cl, 1e-9))

			expected := 0.5 * 1.2 * 50 * 50 * 1 * cl
			Expect(diag.Lift.Len()).To(BeNumerically("~", expected, 0.02*expected))
			Expect(diag.Stalled).To(BeFalse())
			Expect(ft.Force.Y()).To(BeNumerically(">", 0))
		})

		It("points drag along the airflow and lift across it", func() {
			aoa := mgl64.DegToRad(8)
			flow := airflowAt(aoa, 30)
			_, diag := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.2, mgl64.Vec3{})

			Expect(diag.Drag.Dot(flow)).To(BeNumerically(">", 0))
			Expect(diag.Lift.Dot(flow)).To(BeNumerically("~", 0, 1e-9))
		})

		It("short-circuits a zero in-plane airflow", func() {
			ft, diag := surface.CalculateForces(mgl64.QuatIdent(), mgl64.Vec3{0, 0, 25}, 1.2, mgl64.Vec3{1, 2, 3})
			Expect(ft.IsZero()).To(BeTrue())
			Expect(diag).To(Equal(aero.Diagnostics{}))
		})

		It("contributes nothing when disabled", func() {
			surface.Enabled = false
			ft, _ := surface.CalculateForces(mgl64.QuatIdent(), airflowAt(0.1, 40), 1.2, mgl64.Vec3{})
			Expect(ft.IsZero()).To(BeTrue())
		})

		It("scales linearly with air density", func() {
			flow := airflowAt(mgl64.DegToRad(6), 40)
			offset := mgl64.Vec3{0.5, 0, -2}
			single, _ := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.0, offset)
			double, _ := surface.CalculateForces(mgl64.QuatIdent(), flow, 2.0, offset)

			Expect(double.Force.Len()).To(BeNumerically("~", 2*single.Force.Len(), 1e-9))
			Expect(double.Torque.Len()).To(BeNumerically("~", 2*single.Torque.Len(), 1e-9))
		})

		It("adds the moment of the force about the reference point", func() {
			flow := airflowAt(mgl64.DegToRad(4), 40)
			atOrigin, diag := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.2, mgl64.Vec3{})
			offset := mgl64.Vec3{0, 0, -3}
			shifted, _ := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.2, offset)

			Expect(atOrigin.Torque.Sub(diag.Torque).Len()).To(BeNumerically("<", 1e-9))
			want := offset.Cross(atOrigin.Force).Add(diag.Torque)
			Expect(shifted.Torque.Sub(want).Len()).To(BeNumerically("<", 1e-9))
		})

		It("is invariant to a rigid rotation of surface and airflow", func() {
			rot := mgl64.QuatRotate(mgl64.DegToRad(-90), mgl64.Vec3{0, 1, 0})
			flow := airflowAt(mgl64.DegToRad(7), 45)

			local, _ := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.2, mgl64.Vec3{})
			world, _ := surface.CalculateForces(rot, rot.Rotate(flow), 1.2, mgl64.Vec3{})

			Expect(world.Force.Sub(rot.Rotate(local.Force)).Len()).To(BeNumerically("<", 1e-6))
			Expect(world.Torque.Sub(rot.Rotate(local.Torque)).Len()).To(BeNumerically("<", 1e-6))
		})

		It("ignores the spanwise airflow component", func() {
			flow := airflowAt(mgl64.DegToRad(3), 40)
			plain, _ := surface.CalculateForces(mgl64.QuatIdent(), flow, 1.2, mgl64.Vec3{})
			crossflow, _ := surface.CalculateForces(mgl64.QuatIdent(), flow.Add(mgl64.Vec3{0, 0, 12}), 1.2, mgl64.Vec3{})

			Expect(crossflow.Force.Sub(plain.Force).Len()).To(BeNumerically("<", 1e-9))
		})
	})
})
