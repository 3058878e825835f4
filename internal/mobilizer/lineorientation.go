package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// lineorientation orients a line (M's z axis) in F with 2 dof:
// ball-like orientation coordinates, but the generalized speeds are
// only the x and y components of w_FM expressed in M, so spin about
// the line is excluded from the joint's freedoms.
type lineorientation struct{}

func NewLineOrientation() Mobilizer { return lineorientation{} }

func (lineorientation) Type() Type { return LineOrientation }
func (lineorientation) NumU() int  { return 2 }
func (lineorientation) MaxNQ() int { return 4 }

func (lineorientation) NQ(useEuler bool) int              { return rotNQ(useEuler) }
func (lineorientation) UsesQuaternion(useEuler bool) bool { return !useEuler }

func (lineorientation) DefaultQ(useEuler bool, q []float64) { rotDefaultQ(useEuler, q) }

func (lineorientation) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{R: rotGetRotation(k.UseEuler, k.Q)}
}

func (lineorientation) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: k.XFM.R.AxisX()}
	h[1] = spatial.SpatialVec{W: k.XFM.R.AxisY()}
}

func (lineorientation) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	hdot[0] = spatial.SpatialVec{W: k.VFM.W.Cross(k.XFM.R.AxisX())}
	hdot[1] = spatial.SpatialVec{W: k.VFM.W.Cross(k.XFM.R.AxisY())}
}

func (lineorientation) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	rotSetRotation(k.UseEuler, k.Q, r)
}

func (lineorientation) SetQToFitTranslation(*Kinematics, spatial.Vec3) {}

// SetUToFitAngularVelocity keeps the components transverse to the
// line and silently drops any spin about it.
func (lineorientation) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	wm := rotGetRotation(k.UseEuler, k.Q).InvApply(w)
	k.U[0], k.U[1] = wm[0], wm[1]
}

func (lineorientation) SetUToFitLinearVelocity(*Kinematics, spatial.Vec3) {}

func (lineorientation) QDot(k *Kinematics, qdot []float64) {
	rotQDotFromBodyW(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], 0}, qdot)
}

func (lineorientation) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	rotQDotDotFromBodyW(k.UseEuler, k.Q,
		spatial.Vec3{k.U[0], k.U[1], 0},
		spatial.Vec3{udot[0], udot[1], 0}, qdotdot)
}

func (lineorientation) MultiplyByN(k *Kinematics, in, out []float64) {
	rotQDotFromBodyW(k.UseEuler, k.Q, spatial.Vec3{in[0], in[1], 0}, out)
}

func (lineorientation) MultiplyByNInv(k *Kinematics, in, out []float64) {
	var w [3]float64
	if k.UseEuler {
		e := spatial.EulerXYZNInv(eulerOf(k.Q)).MulVec(spatial.Vec3{in[0], in[1], in[2]})
		w[0], w[1] = e[0], e[1]
	} else {
		wf := spatial.QuaternionAngVel(quatOf(k.Q), spatial.Quaternion{in[0], in[1], in[2], in[3]})
		wm := rotGetRotation(false, k.Q).InvApply(wf)
		w[0], w[1] = wm[0], wm[1]
	}
	out[0], out[1] = w[0], w[1]
}

func (l lineorientation) MultiplyByNDot(k *Kinematics, in, out []float64) {
	wm := spatial.Vec3{k.U[0], k.U[1], 0}
	vm := spatial.Vec3{in[0], in[1], 0}
	if k.UseEuler {
		e := eulerOf(k.Q)
		ed := spatial.EulerXYZN(e).MulVec(wm)
		res := spatial.EulerXYZNDot(e, ed).MulVec(vm)
		out[0], out[1], out[2] = res[0], res[1], res[2]
		return
	}
	r := rotGetRotation(false, k.Q)
	qd := spatial.QuaternionQDot(quatOf(k.Q), r.Apply(wm))
	// N(q) v with v in M is 0.5*M(q)*(R v); the derivative picks up
	// both the q rate and the frame rotation of v
	nd := spatial.QuaternionNDotMul(qd, r.Apply(vm))
	frame := spatial.QuaternionQDot(quatOf(k.Q), r.Apply(wm).Cross(r.Apply(vm)))
	for i := range out[:4] {
		out[i] = nd[i] + frame[i]
	}
}

func (lineorientation) EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool {
	return rotEnforceQuat(k.UseEuler, k.Q, qErrEst)
}

func (lineorientation) ConvertToEuler(qIn, qOut []float64)      { rotConvertToEuler(qIn, qOut) }
func (lineorientation) ConvertToQuaternion(qIn, qOut []float64) { rotConvertToQuaternion(qIn, qOut) }
