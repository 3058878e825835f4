package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// free is the unrestricted 6-dof joint: ball-like orientation
// coordinates followed by the position of M's origin in F. Speeds are
// (w_FM, v_FM), both in F.
type free struct{}

func NewFree() Mobilizer { return free{} }

func (free) Type() Type { return Free }
func (free) NumU() int  { return 6 }
func (free) MaxNQ() int { return 7 }

func (free) NQ(useEuler bool) int              { return rotNQ(useEuler) + 3 }
func (free) UsesQuaternion(useEuler bool) bool { return !useEuler }

func (f free) DefaultQ(useEuler bool, q []float64) {
	zero(q)
	rotDefaultQ(useEuler, q)
}

func (free) Transform(k *Kinematics) spatial.Transform {
	t := rotNQ(k.UseEuler)
	return spatial.Transform{
		R: rotGetRotation(k.UseEuler, k.Q),
		P: spatial.Vec3{k.Q[t], k.Q[t+1], k.Q[t+2]},
	}
}

func (free) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitX}
	h[1] = spatial.SpatialVec{W: spatial.UnitY}
	h[2] = spatial.SpatialVec{W: spatial.UnitZ}
	h[3] = spatial.SpatialVec{V: spatial.UnitX}
	h[4] = spatial.SpatialVec{V: spatial.UnitY}
	h[5] = spatial.SpatialVec{V: spatial.UnitZ}
}

func (free) JacobianDot(_ *Kinematics, hdot []spatial.SpatialVec) {
	for i := range hdot {
		hdot[i] = spatial.SpatialVec{}
	}
}

func (free) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	rotSetRotation(k.UseEuler, k.Q, r)
}

func (free) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	t := rotNQ(k.UseEuler)
	k.Q[t], k.Q[t+1], k.Q[t+2] = p[0], p[1], p[2]
}

func (free) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0], k.U[1], k.U[2] = w[0], w[1], w[2]
}

func (free) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[3], k.U[4], k.U[5] = v[0], v[1], v[2]
}

func (free) QDot(k *Kinematics, qdot []float64) {
	rotQDotFromParentW(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, qdot)
	t := rotNQ(k.UseEuler)
	qdot[t], qdot[t+1], qdot[t+2] = k.U[3], k.U[4], k.U[5]
}

func (free) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	rotQDotDotFromParentW(k.UseEuler, k.Q,
		spatial.Vec3{k.U[0], k.U[1], k.U[2]},
		spatial.Vec3{udot[0], udot[1], udot[2]}, qdotdot)
	t := rotNQ(k.UseEuler)
	qdotdot[t], qdotdot[t+1], qdotdot[t+2] = udot[3], udot[4], udot[5]
}

func (free) MultiplyByN(k *Kinematics, in, out []float64) {
	rotMultiplyByN(k.UseEuler, k.Q, in, out)
	t := rotNQ(k.UseEuler)
	out[t], out[t+1], out[t+2] = in[3], in[4], in[5]
}

func (free) MultiplyByNInv(k *Kinematics, in, out []float64) {
	rotMultiplyByNInv(k.UseEuler, k.Q, in, out)
	t := rotNQ(k.UseEuler)
	out[3], out[4], out[5] = in[t], in[t+1], in[t+2]
}

func (free) MultiplyByNDot(k *Kinematics, in, out []float64) {
	rotMultiplyByNDot(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], k.U[2]}, in, out)
	t := rotNQ(k.UseEuler)
	out[t], out[t+1], out[t+2] = 0, 0, 0
}

func (free) EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool {
	return rotEnforceQuat(k.UseEuler, k.Q, qErrEst)
}

func (free) ConvertToEuler(qIn, qOut []float64) {
	rotConvertToEuler(qIn, qOut)
	qOut[3], qOut[4], qOut[5] = qIn[4], qIn[5], qIn[6]
}

func (free) ConvertToQuaternion(qIn, qOut []float64) {
	rotConvertToQuaternion(qIn, qOut)
	qOut[4], qOut[5], qOut[6] = qIn[3], qIn[4], qIn[5]
}
