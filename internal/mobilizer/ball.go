package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// ball is the 3-dof orientation joint; generalized speeds are w_FM in
// F, coordinates are Euler angles or a quaternion per the state's
// representation choice.
type ball struct{}

func NewBall() Mobilizer { return ball{} }

func (ball) Type() Type { return Ball }
func (ball) NumU() int  { return 3 }
func (ball) MaxNQ() int { return 4 }

func (ball) NQ(useEuler bool) int            { return rotNQ(useEuler) }
func (ball) UsesQuaternion(useEuler bool) bool { return !useEuler }

func (ball) DefaultQ(useEuler bool, q []float64) { rotDefaultQ(useEuler, q) }

func (ball) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{R: rotGetRotation(k.UseEuler, k.Q)}
}

func (ball) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitX}
	h[1] = spatial.SpatialVec{W: spatial.UnitY}
	h[2] = spatial.SpatialVec{W: spatial.UnitZ}
}

func (ball) JacobianDot(_ *Kinematics, hdot []spatial.SpatialVec) {
	for i := range hdot {
		hdot[i] = spatial.SpatialVec{}
	}
}

func (ball) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	rotSetRotation(k.UseEuler, k.Q, r)
}

func (ball) SetQToFitTranslation(*Kinematics, spatial.Vec3) {}

func (ball) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0], k.U[1], k.U[2] = w[0], w[1], w[2]
}

func (ball) SetUToFitLinearVelocity(*Kinematics, spatial.Vec3) {}

func (ball) QDot(k *Kinematics, qdot []float64) {
	rotQDotFromParentW(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, qdot)
}

func (ball) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	rotQDotDotFromParentW(k.UseEuler, k.Q,
		spatial.Vec3{k.U[0], k.U[1], k.U[2]},
		spatial.Vec3{udot[0], udot[1], udot[2]}, qdotdot)
}

func (ball) MultiplyByN(k *Kinematics, in, out []float64) {
	rotMultiplyByN(k.UseEuler, k.Q, in, out)
}

func (ball) MultiplyByNInv(k *Kinematics, in, out []float64) {
	rotMultiplyByNInv(k.UseEuler, k.Q, in, out)
}

func (ball) MultiplyByNDot(k *Kinematics, in, out []float64) {
	rotMultiplyByNDot(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, in, out)
}

func (ball) EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool {
	return rotEnforceQuat(k.UseEuler, k.Q, qErrEst)
}

func (ball) ConvertToEuler(qIn, qOut []float64)      { rotConvertToEuler(qIn, qOut) }
func (ball) ConvertToQuaternion(qIn, qOut []float64) { rotConvertToQuaternion(qIn, qOut) }
