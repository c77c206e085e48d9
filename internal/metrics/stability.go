package metrics

import (
	"math"

	"github.com/san-kum/aerosim/internal/flight"
)

// Stability is the share of ticks with every body rate below threshold
// (rad/s).
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x flight.Sample) {
	s.samples++
	for _, val := range x.AngularVelocity {
		if math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// StallFraction is the mean share of surfaces outside the linear regime.
type StallFraction struct {
	sum     float64
	samples int
}

func NewStallFraction() *StallFraction { return &StallFraction{} }

func (s *StallFraction) Name() string { return "stall_fraction" }

func (s *StallFraction) Observe(x flight.Sample) {
	s.sum += x.StallFraction()
	s.samples++
}

func (s *StallFraction) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *StallFraction) Reset() {
	s.sum = 0
	s.samples = 0
}

// PeakLoadFactor is the largest |n| seen.
type PeakLoadFactor struct {
	peak float64
}

func NewPeakLoadFactor() *PeakLoadFactor { return &PeakLoadFactor{} }

func (p *PeakLoadFactor) Name() string { return "peak_load_factor" }

func (p *PeakLoadFactor) Observe(x flight.Sample) {
	p.peak = math.Max(p.peak, math.Abs(x.LoadFactor))
}

func (p *PeakLoadFactor) Value() float64 { return p.peak }

func (p *PeakLoadFactor) Reset() { p.peak = 0 }
