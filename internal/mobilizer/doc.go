// Package mobilizer defines the joint models of the multibody engine.
//
// A mobilizer couples a body to its parent through two frames: F fixed
// in the parent and M fixed in the body. Each variant maps its own
// generalized coordinates q and speeds u to the across-joint transform
// X_FM and the velocity Jacobian H (V_FM = H*u, expressed in F), plus
// the inverse "fit" operators and the qdot = N(q)*u coordinate-rate
// coupling.
//
// The sixteen variants:
//
//	Weld (0 dof), Torsion, Slider, Screw (1), Cylinder, Universal,
//	BendStretch (2), Translate, Planar, Gimbal, Ball, Ellipsoid,
//	LineOrientation (2 rot dof), Free (6), FreeLine (5), Custom (1-6)
//
// Joints with 3 rotational degrees of freedom carry their orientation
// either as body-fixed XYZ Euler angles or as a unit quaternion,
// selected per state by the UseEuler flag in [Kinematics]; Gimbal is
// Euler-only. Quaternion-carrying joints contribute one unit-norm
// constraint each, enforced by EnforceQuaternionConstraints.
//
// Fit operators (SetQToFit*, SetUToFit*) are best effort: motion the
// joint cannot represent is silently projected away, never an error.
//
// A joint mounted backwards is wrapped by [Reverse], which presents
// the ordinary parent-to-child contract while negating and shifting
// the underlying definition internally; callers never see the
// reversal.
package mobilizer
