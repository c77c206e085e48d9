package aircraft

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/aero"
	"github.com/san-kum/aerosim/internal/dynamo"
)

// DefaultPredictionFraction is the share of the timestep the predictor looks
// ahead.
const DefaultPredictionFraction = 0.5

// MinNetForce is the force magnitude (N) below which the center of lift is
// undefined.
const MinNetForce = 1e-6

// ErrNoNetForce is returned by CenterOfLift when the net force is too small to
// locate a line of action.
var ErrNoNetForce = errors.New("aircraft: net force too small for a center of lift")

// Mount places a surface on the body. Position and Rotation are in body
// coordinates relative to the body origin.
type Mount struct {
	Name     string
	Surface  *aero.Surface
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Environment is the air the body flies through.
type Environment struct {
	Wind       mgl64.Vec3
	AirDensity float64
}

// Output is the result of one Tick.
type Output struct {
	Aero   aero.ForceTorque // about the center of mass
	Thrust mgl64.Vec3
	// Surfaces holds diagnostics from the tick-start pass, indexed like
	// Aggregator.Mounts. The slice is reused by the next Tick.
	Surfaces []aero.Diagnostics
}

// Stalled counts surfaces reporting stall in the tick-start pass.
func (o Output) Stalled() int {
	n := 0
	for _, d := range o.Surfaces {
		if d.Stalled {
			n++
		}
	}
	return n
}

// Aggregator sums every mounted surface into one net force and torque.
type Aggregator struct {
	Mounts             []Mount
	MaxThrust          float64
	PredictionFraction float64
	// Gravity is added to the linear prediction. Leave zero when the
	// integrator applies no gravity.
	Gravity mgl64.Vec3
	// Parallel evaluates surfaces on multiple goroutines. The sum is formed
	// in mount order either way.
	Parallel bool

	diags   []aero.Diagnostics
	scratch []aero.ForceTorque
}

func NewAggregator(mounts []Mount, maxThrust float64) *Aggregator {
	return &Aggregator{
		Mounts:             mounts,
		MaxThrust:          maxThrust,
		PredictionFraction: DefaultPredictionFraction,
	}
}

// Mount looks up a surface by name.
func (a *Aggregator) Mount(name string) (*Mount, bool) {
	for i := range a.Mounts {
		if a.Mounts[i].Name == name {
			return &a.Mounts[i], true
		}
	}
	return nil, false
}

func (a *Aggregator) ensureBuffers() {
	if len(a.diags) != len(a.Mounts) {
		a.diags = make([]aero.Diagnostics, len(a.Mounts))
		a.scratch = make([]aero.ForceTorque, len(a.Mounts))
	}
}

// Tick computes the stabilised aerodynamic load and thrust for one step of
// length dt. throttle is clamped to [0, 1].
func (a *Aggregator) Tick(k *Kinematics, env Environment, throttle, dt float64) Output {
	a.ensureBuffers()

	current := a.forces(k.Velocity, k.AngularVelocity, k, env, a.diags)

	v, w := a.predict(k, current, dt)
	predicted := a.forces(v, w, k, env, nil)

	return Output{
		Aero:     aero.Average(current, predicted),
		Thrust:   k.Forward().Mul(a.MaxThrust * dynamo.Clamp01(throttle)),
		Surfaces: a.diags,
	}
}

// Forces evaluates a single pass at the body's current state.
func (a *Aggregator) Forces(k *Kinematics, env Environment) aero.ForceTorque {
	return a.forces(k.Velocity, k.AngularVelocity, k, env, nil)
}

// predict advances the linear and angular velocity by a fraction of dt under
// the sampled load.
func (a *Aggregator) predict(k *Kinematics, ft aero.ForceTorque, dt float64) (mgl64.Vec3, mgl64.Vec3) {
	h := dt * a.PredictionFraction

	accel := a.Gravity
	if k.Mass > 0 {
		accel = accel.Add(ft.Force.Mul(1 / k.Mass))
	}
	v := k.Velocity.Add(accel.Mul(h))

	rot := k.InertiaWorldRotation()
	torqueDiag := rot.Inverse().Rotate(ft.Torque)
	alpha := rot.Rotate(dynamo.DivElem(torqueDiag, k.Inertia))
	w := k.AngularVelocity.Add(alpha.Mul(h))

	return v, w
}

func (a *Aggregator) forces(velocity, angular mgl64.Vec3, k *Kinematics, env Environment, diags []aero.Diagnostics) aero.ForceTorque {
	a.ensureBuffers()

	if a.Parallel {
		dynamo.ParallelFor(len(a.Mounts), 4, func(start, end int) {
			a.evaluate(start, end, velocity, angular, k, env, diags)
		})
	} else {
		a.evaluate(0, len(a.Mounts), velocity, angular, k, env, diags)
	}

	var sum aero.ForceTorque
	for _, ft := range a.scratch {
		sum = sum.Add(ft)
	}
	return sum
}

// evaluate fills scratch (and diags when non-nil) for mounts [start, end).
func (a *Aggregator) evaluate(start, end int, velocity, angular mgl64.Vec3, k *Kinematics, env Environment, diags []aero.Diagnostics) {
	for i := start; i < end; i++ {
		m := &a.Mounts[i]
		rel := k.Rotation.Rotate(m.Position).Add(k.Position).Sub(k.CenterOfMass)
		airflow := env.Wind.Sub(pointVelocity(velocity, angular, rel))
		ft, d := m.Surface.CalculateForces(k.Rotation.Mul(m.Rotation), airflow, env.AirDensity, rel)
		a.scratch[i] = ft
		if diags != nil {
			diags[i] = d
		}
	}
}

// CenterOfLift returns the point on the line of action of ft.Force closest to
// com, where the residual torque is parallel to the force. ErrNoNetForce is
// returned when |ft.Force| < MinNetForce.
func CenterOfLift(com mgl64.Vec3, ft aero.ForceTorque) (mgl64.Vec3, error) {
	f2 := ft.Force.LenSqr()
	if !(f2 >= MinNetForce*MinNetForce) {
		return com, ErrNoNetForce
	}
	return com.Add(ft.Force.Cross(ft.Torque).Mul(1 / f2)), nil
}

// PreviewCenterOfLift evaluates the airframe in a steady freestream of
// airVelocity (world frame, the velocity of the air) with no rotation and
// returns the center of lift and the net force.
func (a *Aggregator) PreviewCenterOfLift(k *Kinematics, airVelocity mgl64.Vec3, airDensity float64) (mgl64.Vec3, mgl64.Vec3, error) {
	ft := a.forces(airVelocity.Mul(-1), mgl64.Vec3{}, k, Environment{AirDensity: airDensity}, nil)
	center, err := CenterOfLift(k.CenterOfMass, ft)
	return center, ft.Force, err
}
