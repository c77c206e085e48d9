package control

import (
	"fmt"

	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// Binding drives the flap of a named mount from one stick axis. Deflection
// is the flap angle (radians) at full positive input and may be negative.
type Binding struct {
	Mount      string  `yaml:"mount"`
	Axis       Axis    `yaml:"axis"`
	Deflection float64 `yaml:"deflection"`
}

type boundSurface struct {
	surface    *aero.Surface
	axis       Axis
	deflection float64
}

// Mixer applies Controls to the bound surfaces of one airframe.
type Mixer struct {
	bound []boundSurface
	last  Controls
}

// NewMixer resolves every binding against the aggregator's mounts.
func NewMixer(agg *aircraft.Aggregator, bindings []Binding) (*Mixer, error) {
	m := &Mixer{bound: make([]boundSurface, 0, len(bindings))}
	for _, b := range bindings {
		mount, ok := agg.Mount(b.Mount)
		if !ok {
			return nil, fmt.Errorf("binding %s: mount %q: %w", b.Axis, b.Mount, dynamo.ErrUnknownName)
		}
		m.bound = append(m.bound, boundSurface{
			surface:    mount.Surface,
			axis:       b.Axis,
			deflection: b.Deflection,
		})
	}
	return m, nil
}

// Apply clamps c, sets every bound flap to input·deflection and returns the
// clamped controls.
func (m *Mixer) Apply(c Controls) Controls {
	c = c.Clamped()
	for _, b := range m.bound {
		b.surface.SetFlapAngle(c.Axis(b.axis) * b.deflection)
	}
	m.last = c
	return c
}

// Last returns the controls applied most recently.
func (m *Mixer) Last() Controls { return m.last }

// Len is the number of bound surfaces.
func (m *Mixer) Len() int { return len(m.bound) }
