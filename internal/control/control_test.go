package control

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/dynamo"
)

func testAggregator() *aircraft.Aggregator {
	cfg := aero.DefaultSurfaceConfig()
	cfg.FlapFraction = 0.3
	return aircraft.NewAggregator([]aircraft.Mount{
		{Name: "aileron_left", Surface: aero.NewSurface(cfg)},
		{Name: "aileron_right", Surface: aero.NewSurface(cfg)},
		{Name: "elevator", Surface: aero.NewSurface(cfg)},
	}, 1000)
}

func level() *aircraft.Kinematics {
	return &aircraft.Kinematics{Rotation: mgl64.QuatIdent(), InertiaRotation: mgl64.QuatIdent(), Mass: 1, Inertia: mgl64.Vec3{1, 1, 1}}
}

func TestControlsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Controls
		want Controls
	}{
		{"in range", Controls{0.5, -0.5, 0.25, 0.75}, Controls{0.5, -0.5, 0.25, 0.75}},
		{"saturated", Controls{3, -3, 2, 1.5}, Controls{1, -1, 1, 1}},
		{"negative throttle", Controls{Throttle: -1}, Controls{}},
		{"nan", Controls{Pitch: math.NaN(), Throttle: math.NaN()}, Controls{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{Pitch, Yaw, Roll} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("throttle"); !errors.Is(err, dynamo.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestMixerSetsFlaps(t *testing.T) {
	agg := testAggregator()
	mixer, err := NewMixer(agg, []Binding{
		{Mount: "aileron_left", Axis: Roll, Deflection: 0.3},
		{Mount: "aileron_right", Axis: Roll, Deflection: -0.3},
		{Mount: "elevator", Axis: Pitch, Deflection: -0.4},
	})
	if err != nil {
		t.Fatalf("NewMixer: %v", err)
	}
	if mixer.Len() != 3 {
		t.Fatalf("expected 3 bound surfaces, got %d", mixer.Len())
	}

	applied := mixer.Apply(Controls{Pitch: 0.5, Roll: 2})
	if applied.Roll != 1 {
		t.Errorf("roll not clamped: %v", applied.Roll)
	}
	if mixer.Last() != applied {
		t.Error("Last() does not report the applied controls")
	}

	want := map[string]float64{"aileron_left": 0.3, "aileron_right": -0.3, "elevator": -0.2}
	for name, angle := range want {
		m, _ := agg.Mount(name)
		if got := m.Surface.FlapAngle(); math.Abs(got-angle) > 1e-12 {
			t.Errorf("%s flap = %v, want %v", name, got, angle)
		}
	}
}

func TestMixerUnknownMount(t *testing.T) {
	_, err := NewMixer(testAggregator(), []Binding{{Mount: "rudder", Axis: Yaw, Deflection: 0.3}})
	if !errors.Is(err, dynamo.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestManual(t *testing.T) {
	m := NewManual(Controls{Throttle: 0.5})
	if got := m.Compute(level(), 0); got.Throttle != 0.5 {
		t.Errorf("throttle = %v, want 0.5", got.Throttle)
	}

	m.Set(Controls{Pitch: 0.9})
	got := m.Nudge(Controls{Pitch: 0.3, Throttle: 0.2})
	if got.Pitch != 1 || got.Throttle != 0.2 {
		t.Errorf("Nudge() = %+v", got)
	}
	if m.Compute(level(), 1) != got {
		t.Error("Compute does not return nudged controls")
	}
}

func TestAttitudeAngles(t *testing.T) {
	k := level()
	k.Rotation = mgl64.QuatRotate(mgl64.DegToRad(-10), mgl64.Vec3{1, 0, 0})
	if got := mgl64.RadToDeg(PitchAngle(k)); math.Abs(got-10) > 1e-9 {
		t.Errorf("pitch = %v, want 10", got)
	}

	// Right wing down is a negative rotation about the forward axis.
	k.Rotation = mgl64.QuatRotate(mgl64.DegToRad(20), mgl64.Vec3{0, 0, 1})
	if got := mgl64.RadToDeg(BankAngle(k)); math.Abs(got+20) > 1e-9 {
		t.Errorf("bank = %v, want -20", got)
	}
}

func TestPitchHold(t *testing.T) {
	p := NewPitchHold(2, 0.1, 0.5, mgl64.DegToRad(5), 0.7)

	c := p.Compute(level(), 0)
	if c.Pitch <= 0 {
		t.Error("expected nose-up input below target pitch")
	}
	if c.Throttle != 0.7 {
		t.Errorf("throttle = %v, want 0.7", c.Throttle)
	}

	nose := level()
	nose.Rotation = mgl64.QuatRotate(mgl64.DegToRad(-30), mgl64.Vec3{1, 0, 0})
	p.Reset()
	if c := p.Compute(nose, 0); c.Pitch >= 0 {
		t.Error("expected nose-down input above target pitch")
	}
	if c := p.Compute(nose, 0.1); c.Pitch < -1 {
		t.Errorf("pitch not clamped: %v", c.Pitch)
	}
}

func TestPitchHoldParams(t *testing.T) {
	p := NewPitchHold(1, 0, 0, 0, 0.5)
	if err := p.SetParam("Target", 10); err != nil {
		t.Fatal(err)
	}
	if got := p.GetParams()["Target"]; math.Abs(got-10) > 1e-9 {
		t.Errorf("Target = %v, want 10", got)
	}
	if err := p.SetParam("Gain", 1); !errors.Is(err, dynamo.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}
