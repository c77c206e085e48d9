package aero

import "github.com/san-kum/aerosim/internal/dynamo"

// Validation bounds applied by [SurfaceConfig.Validate].
const (
	MaxFlapFraction = 0.4
	MinChord        = 1e-3
)

// SurfaceConfig holds the static aerodynamic parameters of one surface shape.
// Angles are in degrees. A config is shared read-only by every surface built
// from it.
type SurfaceConfig struct {
	LiftSlope       float64 `yaml:"lift_slope"`
	SkinFriction    float64 `yaml:"skin_friction"`
	ZeroLiftAoA     float64 `yaml:"zero_lift_aoa"`
	StallAngleHigh  float64 `yaml:"stall_angle_high"`
	StallAngleLow   float64 `yaml:"stall_angle_low"`
	Chord           float64 `yaml:"chord"`
	Span            float64 `yaml:"span"`
	FlapFraction    float64 `yaml:"flap_fraction"`
	AutoAspectRatio bool    `yaml:"auto_aspect_ratio"`
	AspectRatio     float64 `yaml:"aspect_ratio"`
}

func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		LiftSlope:       6.28,
		SkinFriction:    0.02,
		ZeroLiftAoA:     0,
		StallAngleHigh:  15,
		StallAngleLow:   -15,
		Chord:           1,
		Span:            1,
		FlapFraction:    0,
		AutoAspectRatio: true,
		AspectRatio:     2,
	}
}

// Validate returns a copy clamped to the nearest valid values. It never fails:
// out-of-range parameters are pulled back to their bounds and non-finite ones
// take their DefaultSurfaceConfig value.
func (c SurfaceConfig) Validate() SurfaceConfig {
	d := DefaultSurfaceConfig()
	for _, f := range []struct{ v, def *float64 }{
		{&c.LiftSlope, &d.LiftSlope},
		{&c.SkinFriction, &d.SkinFriction},
		{&c.ZeroLiftAoA, &d.ZeroLiftAoA},
		{&c.StallAngleHigh, &d.StallAngleHigh},
		{&c.StallAngleLow, &d.StallAngleLow},
		{&c.Chord, &d.Chord},
		{&c.Span, &d.Span},
		{&c.FlapFraction, &d.FlapFraction},
		{&c.AspectRatio, &d.AspectRatio},
	} {
		if !dynamo.IsFinite(*f.v) {
			*f.v = *f.def
		}
	}

	if c.FlapFraction > MaxFlapFraction {
		c.FlapFraction = MaxFlapFraction
	}
	if c.FlapFraction < 0 {
		c.FlapFraction = 0
	}

	if c.StallAngleHigh < 0 {
		c.StallAngleHigh = 0
	}
	if c.StallAngleLow > 0 {
		c.StallAngleLow = 0
	}

	if c.Chord < MinChord {
		c.Chord = MinChord
	}
	if c.Span < 0 {
		c.Span = 0
	}

	if c.AutoAspectRatio {
		c.AspectRatio = c.Span / c.Chord
	}
	if c.AspectRatio < MinChord {
		c.AspectRatio = MinChord
	}
	return c
}

// Area is the planform area chord × span.
func (c SurfaceConfig) Area() float64 {
	return c.Chord * c.Span
}
