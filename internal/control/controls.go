package control

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// Axis selects which stick input drives a surface.
type Axis int

const (
	Pitch Axis = iota
	Yaw
	Roll
)

func (a Axis) String() string {
	switch a {
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	case Roll:
		return "roll"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts the lower-case axis names used in aircraft files.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pitch":
		return Pitch, nil
	case "yaw":
		return Yaw, nil
	case "roll":
		return Roll, nil
	}
	return 0, fmt.Errorf("axis %q: %w", s, dynamo.ErrUnknownName)
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Controls is one tick of pilot input. Pitch, Yaw and Roll are in [-1, 1],
// Throttle in [0, 1]. Positive pitch raises the nose.
type Controls struct {
	Pitch    float64
	Yaw      float64
	Roll     float64
	Throttle float64
}

// Clamped returns c with every input pulled into range. NaN inputs become
// zero.
func (c Controls) Clamped() Controls {
	return Controls{
		Pitch:    clampStick(c.Pitch),
		Yaw:      clampStick(c.Yaw),
		Roll:     clampStick(c.Roll),
		Throttle: dynamo.Clamp01(zeroNaN(c.Throttle)),
	}
}

// Axis returns the input for a.
func (c Controls) Axis(a Axis) float64 {
	switch a {
	case Pitch:
		return c.Pitch
	case Yaw:
		return c.Yaw
	case Roll:
		return c.Roll
	}
	return 0
}

// Effort is the sum of squared stick inputs.
func (c Controls) Effort() float64 {
	return c.Pitch*c.Pitch + c.Yaw*c.Yaw + c.Roll*c.Roll
}

func clampStick(v float64) float64 {
	return mgl64.Clamp(zeroNaN(v), -1, 1)
}

func zeroNaN(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}
