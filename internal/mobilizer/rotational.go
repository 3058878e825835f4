package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// Shared machinery for joints whose leading coordinate block is a full
// orientation: three body-fixed XYZ Euler angles, or a four-slot unit
// quaternion when the state is not using Euler angles.

func rotNQ(useEuler bool) int {
	if useEuler {
		return 3
	}
	return 4
}

func quatOf(q []float64) spatial.Quaternion {
	return spatial.Quaternion{q[0], q[1], q[2], q[3]}
}

func eulerOf(q []float64) spatial.Vec3 {
	return spatial.Vec3{q[0], q[1], q[2]}
}

func rotGetRotation(useEuler bool, q []float64) spatial.Rotation {
	if useEuler {
		return spatial.RotationFromBodyXYZ(eulerOf(q))
	}
	return quatOf(q).Normalized().ToRotation()
}

func rotSetRotation(useEuler bool, q []float64, r spatial.Rotation) {
	if useEuler {
		e := r.ToBodyXYZ()
		q[0], q[1], q[2] = e[0], e[1], e[2]
		return
	}
	qu := r.ToQuaternion()
	q[0], q[1], q[2], q[3] = qu[0], qu[1], qu[2], qu[3]
}

func rotDefaultQ(useEuler bool, q []float64) {
	zero(q)
	if !useEuler {
		q[0] = 1
	}
}

// qdot for joints whose generalized speeds are the angular velocity
// w_FM expressed in F (ball, gimbal, ellipsoid, free).
func rotQDotFromParentW(useEuler bool, q []float64, w spatial.Vec3, qdot []float64) {
	if useEuler {
		wm := rotGetRotation(true, q).InvApply(w)
		e := spatial.EulerXYZN(eulerOf(q)).MulVec(wm)
		qdot[0], qdot[1], qdot[2] = e[0], e[1], e[2]
		return
	}
	qd := spatial.QuaternionQDot(quatOf(q), w)
	copy(qdot, qd[:])
}

func rotQDotDotFromParentW(useEuler bool, q []float64, w, wdot spatial.Vec3, qdotdot []float64) {
	if useEuler {
		r := rotGetRotation(true, q)
		wm := r.InvApply(w)
		wdm := r.InvApply(wdot)
		e := eulerOf(q)
		ed := spatial.EulerXYZN(e).MulVec(wm)
		out := spatial.EulerXYZNDot(e, ed).MulVec(wm).Add(spatial.EulerXYZN(e).MulVec(wdm))
		qdotdot[0], qdotdot[1], qdotdot[2] = out[0], out[1], out[2]
		return
	}
	qdd := spatial.QuaternionQDotDot(quatOf(q), w, wdot)
	copy(qdotdot, qdd[:])
}

// qdot for joints whose generalized speeds are (components of) the
// angular velocity expressed in M (line-orientation, free-line).
func rotQDotFromBodyW(useEuler bool, q []float64, wm spatial.Vec3, qdot []float64) {
	if useEuler {
		e := spatial.EulerXYZN(eulerOf(q)).MulVec(wm)
		qdot[0], qdot[1], qdot[2] = e[0], e[1], e[2]
		return
	}
	w := rotGetRotation(false, q).Apply(wm)
	qd := spatial.QuaternionQDot(quatOf(q), w)
	copy(qdot, qd[:])
}

func rotQDotDotFromBodyW(useEuler bool, q []float64, wm, wdotm spatial.Vec3, qdotdot []float64) {
	if useEuler {
		e := eulerOf(q)
		ed := spatial.EulerXYZN(e).MulVec(wm)
		out := spatial.EulerXYZNDot(e, ed).MulVec(wm).Add(spatial.EulerXYZN(e).MulVec(wdotm))
		qdotdot[0], qdotdot[1], qdotdot[2] = out[0], out[1], out[2]
		return
	}
	r := rotGetRotation(false, q)
	// d(R*wm)/dt = R*wdotm + w x (R*wm) and w = R*wm, so the cross
	// term vanishes
	w := r.Apply(wm)
	qdd := spatial.QuaternionQDotDot(quatOf(q), w, r.Apply(wdotm))
	copy(qdotdot, qdd[:])
}

// N operators for the parent-frame speed convention.
func rotMultiplyByN(useEuler bool, q, in, out []float64) {
	v := spatial.Vec3{in[0], in[1], in[2]}
	if useEuler {
		vm := rotGetRotation(true, q).InvApply(v)
		e := spatial.EulerXYZN(eulerOf(q)).MulVec(vm)
		out[0], out[1], out[2] = e[0], e[1], e[2]
		return
	}
	qd := spatial.QuaternionQDot(quatOf(q), v)
	copy(out, qd[:])
}

func rotMultiplyByNInv(useEuler bool, q, in, out []float64) {
	if useEuler {
		e := spatial.EulerXYZNInv(eulerOf(q)).MulVec(spatial.Vec3{in[0], in[1], in[2]})
		w := rotGetRotation(true, q).Apply(e)
		out[0], out[1], out[2] = w[0], w[1], w[2]
		return
	}
	w := spatial.QuaternionAngVel(quatOf(q), spatial.Quaternion{in[0], in[1], in[2], in[3]})
	out[0], out[1], out[2] = w[0], w[1], w[2]
}

// rotMultiplyByNDot applies d/dt N along the current motion (w is this
// joint's current angular velocity in F).
func rotMultiplyByNDot(useEuler bool, q []float64, w spatial.Vec3, in, out []float64) {
	v := spatial.Vec3{in[0], in[1], in[2]}
	if useEuler {
		r := rotGetRotation(true, q)
		wm := r.InvApply(w)
		e := eulerOf(q)
		ed := spatial.EulerXYZN(e).MulVec(wm)
		vm := r.InvApply(v)
		// d(N R^T)/dt = NDot R^T - N [wm] R^T
		res := spatial.EulerXYZNDot(e, ed).MulVec(vm).
			Sub(spatial.EulerXYZN(e).MulVec(wm.Cross(vm)))
		out[0], out[1], out[2] = res[0], res[1], res[2]
		return
	}
	qd := spatial.QuaternionQDot(quatOf(q), w)
	nd := spatial.QuaternionNDotMul(qd, v)
	copy(out, nd[:])
}

// rotEnforceQuat rescales the leading quaternion block to unit norm
// and removes qErrEst's component along it. Reports whether a
// quaternion was in use.
func rotEnforceQuat(useEuler bool, q, qErrEst []float64) bool {
	if useEuler {
		return false
	}
	qu := quatOf(q).Normalized()
	copy(q[:4], qu[:])
	if qErrEst != nil {
		d := qu.Dot(spatial.Quaternion{qErrEst[0], qErrEst[1], qErrEst[2], qErrEst[3]})
		for i := 0; i < 4; i++ {
			qErrEst[i] -= d * qu[i]
		}
	}
	return true
}

func rotConvertToEuler(qIn, qOut []float64) {
	e := quatOf(qIn).Normalized().ToRotation().ToBodyXYZ()
	qOut[0], qOut[1], qOut[2] = e[0], e[1], e[2]
}

func rotConvertToQuaternion(qIn, qOut []float64) {
	qu := spatial.RotationFromBodyXYZ(eulerOf(qIn)).ToQuaternion()
	copy(qOut[:4], qu[:])
}
