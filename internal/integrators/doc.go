// Package integrators advances rigid-body kinematics under a net load.
//
// Every stepper integrates the center of mass and the attitude, then carries
// the body origin along so the body rotates about its center of mass.
// Angular acceleration is resolved in the principal-axis frame and includes
// the gyroscopic term ω×(Iω).
//
//   - [Euler]: explicit, velocities updated after positions
//   - [SemiImplicitEuler]: symplectic, positions use the updated velocities
//   - [RK4]: fourth order with the load held constant over the step
package integrators
