package flight

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/integrators"
)

type Simulator struct {
	Env     aircraft.Environment
	Gravity mgl64.Vec3

	agg        *aircraft.Aggregator
	mixer      *control.Mixer
	pilot      control.Pilot
	integrator integrators.Integrator
	metrics    []Metric
	observers  []Observer
	log        zerolog.Logger
	t          float64
}

// New wires a flight loop. mixer may be nil for an airframe without control
// surfaces.
func New(agg *aircraft.Aggregator, mixer *control.Mixer, pilot control.Pilot, integrator integrators.Integrator) *Simulator {
	return &Simulator{
		Env:        aircraft.Environment{AirDensity: 1.225},
		Gravity:    StandardGravity,
		agg:        agg,
		mixer:      mixer,
		pilot:      pilot,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        zerolog.Nop(),
	}
}

func (s *Simulator) AddMetric(m Metric)           { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)       { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(log zerolog.Logger) { s.log = log }
func (s *Simulator) Aggregator() *aircraft.Aggregator {
	return s.agg
}
func (s *Simulator) Pilot() control.Pilot { return s.pilot }

// Mixer is nil when the airframe has no control bindings.
func (s *Simulator) Mixer() *control.Mixer { return s.mixer }

// Time is the simulated time reached by Step.
func (s *Simulator) Time() float64 { return s.t }

// Reset rewinds the clock used by Step.
func (s *Simulator) Reset() { s.t = 0 }

// Step advances k by one tick of length dt and returns the sample taken at
// the start of the tick.
func (s *Simulator) Step(k *aircraft.Kinematics, dt float64) Sample {
	c := s.pilot.Compute(k, s.t)
	if s.mixer != nil {
		c = s.mixer.Apply(c)
	} else {
		c = c.Clamped()
	}

	s.agg.Gravity = s.Gravity
	out := s.agg.Tick(k, s.Env, c.Throttle, dt)
	sample := s.sample(k, c, out)

	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}

	load := out.Aero
	load.Force = load.Force.Add(out.Thrust)
	s.integrator.Step(k, load, s.Gravity, dt)
	s.t += dt

	return sample
}

func (s *Simulator) sample(k *aircraft.Kinematics, c control.Controls, out aircraft.Output) Sample {
	air := k.Velocity.Sub(s.Env.Wind)
	body := k.Rotation.Inverse().Rotate(air)

	var load float64
	if g := s.Gravity.Len(); g > 0 {
		load = out.Aero.Force.Dot(k.Up()) / (k.Mass * g)
	}

	return Sample{
		Time:            s.t,
		Position:        k.Position,
		Rotation:        k.Rotation,
		Velocity:        k.Velocity,
		AngularVelocity: k.AngularVelocity,
		Controls:        c,
		Aero:            out.Aero,
		Thrust:          out.Thrust,
		Airspeed:        air.Len(),
		AngleOfAttack:   math.Atan2(-body.Y(), body.Z()),
		LoadFactor:      load,
		Stalled:         out.Stalled(),
		Surfaces:        len(out.Surfaces),
	}
}

// Run flies k0 for cfg.Duration. The returned result holds one sample per
// tick; it is also returned, partially filled, when ctx is canceled.
func (s *Simulator) Run(ctx context.Context, k0 aircraft.Kinematics, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := k0.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	steps := int(math.Floor(cfg.Duration/cfg.Dt + 1e-9))
	result := &Result{
		Samples: make([]Sample, 0, steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Info().
		Int("steps", steps).
		Float64("dt", cfg.Dt).
		Int("surfaces", len(s.agg.Mounts)).
		Msg("flight started")

	k := k0
	s.t = 0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.log.Warn().Int("step", i).Msg("flight canceled")
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		result.Samples = append(result.Samples, s.Step(&k, cfg.Dt))
		result.StepsTaken++

		if cfg.ValidateState {
			if err := k.Validate(); err != nil {
				simErr := dynamo.SimError{Time: s.t, Step: i, Message: err.Error()}
				s.log.Error().Err(simErr).Msg("flight diverged")
				result.Errors = append(result.Errors, simErr)
				break
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info().
		Int("steps_taken", result.StepsTaken).
		Float64("altitude", k.Position.Y()).
		Int("errors", len(result.Errors)).
		Msg("flight finished")

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrParameterBounds)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f: %w", cfg.Duration, dynamo.ErrParameterBounds)
	}
	return nil
}

// RunWithCallback flies k until callback returns false, ctx is done or
// cfg.Duration elapses. k is advanced in place. A state that fails
// validation stops the flight with a *dynamo.SimulationError.
func (s *Simulator) RunWithCallback(ctx context.Context, k *aircraft.Kinematics, cfg Config, callback func(Sample) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	steps := int(math.Floor(cfg.Duration/cfg.Dt + 1e-9))
	s.t = 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if !callback(s.Step(k, cfg.Dt)) {
			return nil
		}

		if cfg.ValidateState {
			if err := k.Validate(); err != nil {
				return &dynamo.SimulationError{Step: i, Time: s.t, Wrapped: err}
			}
		}
	}

	return nil
}
