package control

import (
	"sync"

	"github.com/san-kum/aerosim/internal/aircraft"
)

// Pilot computes the controls for the next tick.
type Pilot interface {
	Compute(k *aircraft.Kinematics, t float64) Controls
}

// Manual holds the stick where it was last put. Set may be called from
// another goroutine, e.g. a key handler.
type Manual struct {
	mu sync.Mutex
	c  Controls
}

func NewManual(c Controls) *Manual {
	return &Manual{c: c.Clamped()}
}

// Set replaces the stored controls.
func (m *Manual) Set(c Controls) {
	m.mu.Lock()
	m.c = c.Clamped()
	m.mu.Unlock()
}

// Nudge adds d to the stored controls.
func (m *Manual) Nudge(d Controls) Controls {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c = Controls{
		Pitch:    m.c.Pitch + d.Pitch,
		Yaw:      m.c.Yaw + d.Yaw,
		Roll:     m.c.Roll + d.Roll,
		Throttle: m.c.Throttle + d.Throttle,
	}.Clamped()
	return m.c
}

func (m *Manual) Compute(_ *aircraft.Kinematics, _ float64) Controls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.c
}
