package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// gimbal is the 3-dof orientation joint parameterized by body-fixed
// XYZ Euler angles regardless of the state's representation choice;
// generalized speeds are w_FM in F. Singular at q1 = +-pi/2, which is
// a conditioning hazard, not an error.
type gimbal struct{}

func NewGimbal() Mobilizer { return gimbal{} }

func (gimbal) Type() Type                { return Gimbal }
func (gimbal) NumU() int                 { return 3 }
func (gimbal) MaxNQ() int                { return 3 }
func (gimbal) NQ(bool) int               { return 3 }
func (gimbal) UsesQuaternion(bool) bool  { return false }
func (gimbal) DefaultQ(_ bool, q []float64) { zero(q) }

func (gimbal) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{R: spatial.RotationFromBodyXYZ(eulerOf(k.Q))}
}

func (gimbal) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitX}
	h[1] = spatial.SpatialVec{W: spatial.UnitY}
	h[2] = spatial.SpatialVec{W: spatial.UnitZ}
}

func (gimbal) JacobianDot(_ *Kinematics, hdot []spatial.SpatialVec) {
	for i := range hdot {
		hdot[i] = spatial.SpatialVec{}
	}
}

func (gimbal) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	rotSetRotation(true, k.Q, r)
}

func (gimbal) SetQToFitTranslation(*Kinematics, spatial.Vec3) {}

func (gimbal) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0], k.U[1], k.U[2] = w[0], w[1], w[2]
}

func (gimbal) SetUToFitLinearVelocity(*Kinematics, spatial.Vec3) {}

func (gimbal) QDot(k *Kinematics, qdot []float64) {
	rotQDotFromParentW(true, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, qdot)
}

func (gimbal) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	rotQDotDotFromParentW(true, k.Q,
		spatial.Vec3{k.U[0], k.U[1], k.U[2]},
		spatial.Vec3{udot[0], udot[1], udot[2]}, qdotdot)
}

func (gimbal) MultiplyByN(k *Kinematics, in, out []float64) {
	rotMultiplyByN(true, k.Q, in, out)
}

func (gimbal) MultiplyByNInv(k *Kinematics, in, out []float64) {
	rotMultiplyByNInv(true, k.Q, in, out)
}

func (gimbal) MultiplyByNDot(k *Kinematics, in, out []float64) {
	rotMultiplyByNDot(true, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, in, out)
}

func (gimbal) EnforceQuaternionConstraints(*Kinematics, []float64) bool { return false }

func (gimbal) ConvertToEuler(qIn, qOut []float64)      { copy(qOut, qIn) }
func (gimbal) ConvertToQuaternion(qIn, qOut []float64) { copy(qOut, qIn) }
