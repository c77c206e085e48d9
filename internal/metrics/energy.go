package metrics

import (
	"math"

	"github.com/san-kum/aerosim/internal/flight"
)

// AltitudeChange is the height gained between the first and last tick.
type AltitudeChange struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewAltitudeChange() *AltitudeChange {
	return &AltitudeChange{name: "altitude_change"}
}

func (a *AltitudeChange) Name() string { return a.name }

func (a *AltitudeChange) Observe(s flight.Sample) {
	if a.samples == 0 {
		a.first = s.Altitude()
	}
	a.last = s.Altitude()
	a.samples++
}

func (a *AltitudeChange) Value() float64 {
	return a.last - a.first
}

func (a *AltitudeChange) Reset() {
	a.first = 0
	a.last = 0
	a.samples = 0
}

// EnergyHeight tracks specific energy h + v²/2g and reports the largest
// relative change from the first tick.
type EnergyHeight struct {
	name     string
	gravity  float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyHeight(gravity float64) *EnergyHeight {
	return &EnergyHeight{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyHeight) Name() string { return e.name }

// Height is the specific energy of s in metres.
func (e *EnergyHeight) Height(s flight.Sample) float64 {
	if e.gravity == 0 {
		return s.Altitude()
	}
	return s.Altitude() + s.Velocity.LenSqr()/(2*e.gravity)
}

func (e *EnergyHeight) Observe(s flight.Sample) {
	h := e.Height(s)
	if e.samples == 0 {
		e.initial = h
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(h-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyHeight) Value() float64 {
	return e.maxDrift
}

func (e *EnergyHeight) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Standard returns the metric set recorded by the CLI.
func Standard(gravity float64) []flight.Metric {
	return []flight.Metric{
		NewStallFraction(),
		NewPeakLoadFactor(),
		NewControlEffort(),
		NewAltitudeChange(),
		NewEnergyHeight(gravity),
		NewStability(1.0),
	}
}
