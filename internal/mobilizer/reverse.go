package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// reverse adapts a joint whose natural definition runs child-to-parent
// so that callers see the ordinary parent-to-child contract. The
// coordinates and speeds are the underlying joint's own; only the
// spatial quantities are flipped:
//
//	X_FM = X_MF^-1
//	h    = -(R h~w, R h~v + (R h~w) x p)   per Jacobian column
//
// with R, p the (reversed) across-joint rotation and translation and
// h~ the underlying column.
type reverse struct {
	inner Mobilizer
}

// Reverse wraps m so its parent/child sense is inverted. Reversing a
// reversed joint unwraps it.
func Reverse(m Mobilizer) Mobilizer {
	if r, ok := m.(reverse); ok {
		return r.inner
	}
	return reverse{inner: m}
}

func (r reverse) Type() Type                        { return r.inner.Type() }
func (r reverse) NumU() int                         { return r.inner.NumU() }
func (r reverse) MaxNQ() int                        { return r.inner.MaxNQ() }
func (r reverse) NQ(useEuler bool) int              { return r.inner.NQ(useEuler) }
func (r reverse) UsesQuaternion(useEuler bool) bool { return r.inner.UsesQuaternion(useEuler) }
func (r reverse) DefaultQ(useEuler bool, q []float64) { r.inner.DefaultQ(useEuler, q) }

// innerK rebuilds the digest in the underlying joint's own sense.
// XFM and VFM are only meaningful when the caller's are realized.
func (r reverse) innerK(k *Kinematics) Kinematics {
	rot, p := k.XFM.R, k.XFM.P
	w, v := k.VFM.W, k.VFM.V
	return Kinematics{
		UseEuler: k.UseEuler,
		Q:        k.Q,
		U:        k.U,
		XFM:      k.XFM.Invert(),
		VFM: spatial.SpatialVec{
			W: rot.InvApply(w).Neg(),
			V: rot.InvApply(w.Cross(p).Sub(v)),
		},
	}
}

func (r reverse) Transform(k *Kinematics) spatial.Transform {
	ik := Kinematics{UseEuler: k.UseEuler, Q: k.Q, U: k.U}
	return r.inner.Transform(&ik).Invert()
}

func (r reverse) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	ik := r.innerK(k)
	r.inner.Jacobian(&ik, h)
	rot, p := k.XFM.R, k.XFM.P
	for i := range h {
		rw := rot.Apply(h[i].W)
		rv := rot.Apply(h[i].V)
		h[i] = spatial.SpatialVec{
			W: rw.Neg(),
			V: rv.Neg().Sub(rw.Cross(p)),
		}
	}
}

func (r reverse) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	ik := r.innerK(k)
	n := r.inner.NumU()
	var hbuf [6]spatial.SpatialVec
	hInner := hbuf[:n]
	r.inner.Jacobian(&ik, hInner)
	r.inner.JacobianDot(&ik, hdot)
	rot, p := k.XFM.R, k.XFM.P
	w, v := k.VFM.W, k.VFM.V
	for i := range hdot {
		rw := rot.Apply(hInner[i].W)
		rv := rot.Apply(hInner[i].V)
		rwd := w.Cross(rw).Add(rot.Apply(hdot[i].W))
		rvd := w.Cross(rv).Add(rot.Apply(hdot[i].V))
		hdot[i] = spatial.SpatialVec{
			W: rwd.Neg(),
			V: rvd.Neg().Sub(rwd.Cross(p)).Sub(rw.Cross(v)),
		}
	}
}

func (r reverse) SetQToFitRotation(k *Kinematics, rot spatial.Rotation) {
	ik := Kinematics{UseEuler: k.UseEuler, Q: k.Q, U: k.U}
	r.inner.SetQToFitRotation(&ik, rot.Inv())
}

func (r reverse) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	ik := Kinematics{UseEuler: k.UseEuler, Q: k.Q, U: k.U}
	cur := r.inner.Transform(&ik).Invert()
	r.inner.SetQToFitTranslation(&ik, cur.R.InvApply(p).Neg())
}

func (r reverse) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	ik := Kinematics{UseEuler: k.UseEuler, Q: k.Q, U: k.U}
	cur := r.inner.Transform(&ik).Invert()
	r.inner.SetUToFitAngularVelocity(&ik, cur.R.InvApply(w).Neg())
}

// SetUToFitLinearVelocity projects the linear request alone; the
// rotational coupling through the joint's own angular rate is dropped.
func (r reverse) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	ik := Kinematics{UseEuler: k.UseEuler, Q: k.Q, U: k.U}
	cur := r.inner.Transform(&ik).Invert()
	r.inner.SetUToFitLinearVelocity(&ik, cur.R.InvApply(v).Neg())
}

func (r reverse) QDot(k *Kinematics, qdot []float64) { r.inner.QDot(k, qdot) }

func (r reverse) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	r.inner.QDotDot(k, udot, qdotdot)
}

func (r reverse) MultiplyByN(k *Kinematics, in, out []float64)    { r.inner.MultiplyByN(k, in, out) }
func (r reverse) MultiplyByNInv(k *Kinematics, in, out []float64) { r.inner.MultiplyByNInv(k, in, out) }
func (r reverse) MultiplyByNDot(k *Kinematics, in, out []float64) { r.inner.MultiplyByNDot(k, in, out) }

func (r reverse) EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool {
	return r.inner.EnforceQuaternionConstraints(k, qErrEst)
}

func (r reverse) ConvertToEuler(qIn, qOut []float64)      { r.inner.ConvertToEuler(qIn, qOut) }
func (r reverse) ConvertToQuaternion(qIn, qOut []float64) { r.inner.ConvertToQuaternion(qIn, qOut) }
