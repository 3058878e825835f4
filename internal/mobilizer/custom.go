package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// Implementation is the user-supplied core of a Custom joint. The dof
// count is fixed per instance (1..6); NumAngles reports how many
// leading coordinates are angles, with the special value 4 meaning a
// quaternion block when the state is not using Euler angles.
//
// MultiplyByH and MultiplyByHDot apply the implementation's velocity
// map (and its time derivative) to a u-sized vector; the wrapper
// recovers individual Jacobian columns by feeding unit vectors
// through them.
type Implementation interface {
	NumU() int
	NumAngles() int
	Transform(useEuler bool, q []float64) spatial.Transform
	MultiplyByH(useEuler bool, q, u []float64) spatial.SpatialVec
	MultiplyByHDot(useEuler bool, q, qdot, u []float64) spatial.SpatialVec
	SetQToFitTransform(useEuler bool, x spatial.Transform, q []float64)
	SetUToFitVelocity(useEuler bool, q []float64, v spatial.SpatialVec, u []float64)
}

type custom struct {
	impl Implementation
}

// NewCustom wraps a user implementation in the standard joint
// contract, validating its declared dimensions.
func NewCustom(impl Implementation) (Mobilizer, error) {
	if nu := impl.NumU(); nu < 1 || nu > 6 {
		return nil, ErrBadDOF
	}
	if na := impl.NumAngles(); na < 0 || na > 4 {
		return nil, ErrBadAngleCount
	}
	return custom{impl: impl}, nil
}

func (custom) Type() Type { return Custom }

func (c custom) NumU() int { return c.impl.NumU() }

func (c custom) quaternionCapable() bool { return c.impl.NumAngles() == 4 }

func (c custom) MaxNQ() int {
	if c.quaternionCapable() {
		return c.impl.NumU() + 1
	}
	return c.impl.NumU()
}

func (c custom) NQ(useEuler bool) int {
	if c.UsesQuaternion(useEuler) {
		return c.impl.NumU() + 1
	}
	return c.impl.NumU()
}

func (c custom) UsesQuaternion(useEuler bool) bool {
	return c.quaternionCapable() && !useEuler
}

func (c custom) DefaultQ(useEuler bool, q []float64) {
	zero(q)
	if c.UsesQuaternion(useEuler) {
		q[0] = 1
	}
}

func (c custom) Transform(k *Kinematics) spatial.Transform {
	return c.impl.Transform(k.UseEuler, k.Q)
}

func (c custom) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	var ubuf [6]float64
	u := ubuf[:c.impl.NumU()]
	for i := range h {
		u[i] = 1
		h[i] = c.impl.MultiplyByH(k.UseEuler, k.Q, u)
		u[i] = 0
	}
}

func (c custom) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	var qbuf [7]float64
	qdot := qbuf[:c.NQ(k.UseEuler)]
	c.QDot(k, qdot)
	var ubuf [6]float64
	u := ubuf[:c.impl.NumU()]
	for i := range hdot {
		u[i] = 1
		hdot[i] = c.impl.MultiplyByHDot(k.UseEuler, k.Q, qdot, u)
		u[i] = 0
	}
}

func (c custom) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	c.impl.SetQToFitTransform(k.UseEuler, spatial.Transform{R: r}, k.Q)
}

func (c custom) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	c.impl.SetQToFitTransform(k.UseEuler,
		spatial.Transform{R: c.impl.Transform(k.UseEuler, k.Q).R, P: p}, k.Q)
}

func (c custom) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	c.impl.SetUToFitVelocity(k.UseEuler, k.Q, spatial.SpatialVec{W: w}, k.U)
}

func (c custom) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	c.impl.SetUToFitVelocity(k.UseEuler, k.Q, spatial.SpatialVec{V: v}, k.U)
}

// QDot assumes qdot == u except across a quaternion block, where the
// rate map is driven by the angular part of H*u.
func (c custom) QDot(k *Kinematics, qdot []float64) {
	if c.UsesQuaternion(k.UseEuler) {
		w := c.impl.MultiplyByH(k.UseEuler, k.Q, k.U).W
		qd := spatial.QuaternionQDot(quatOf(k.Q), w)
		copy(qdot[:4], qd[:])
		copy(qdot[4:], k.U[3:])
		return
	}
	copy(qdot, k.U)
}

func (c custom) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	if c.UsesQuaternion(k.UseEuler) {
		w := c.impl.MultiplyByH(k.UseEuler, k.Q, k.U).W
		wdot := c.impl.MultiplyByH(k.UseEuler, k.Q, udot).W
		qdd := spatial.QuaternionQDotDot(quatOf(k.Q), w, wdot)
		copy(qdotdot[:4], qdd[:])
		copy(qdotdot[4:], udot[3:])
		return
	}
	copy(qdotdot, udot)
}

func (c custom) MultiplyByN(k *Kinematics, in, out []float64) {
	if c.UsesQuaternion(k.UseEuler) {
		w := c.impl.MultiplyByH(k.UseEuler, k.Q, in).W
		qd := spatial.QuaternionQDot(quatOf(k.Q), w)
		copy(out[:4], qd[:])
		copy(out[4:], in[3:])
		return
	}
	copy(out, in)
}

func (c custom) MultiplyByNInv(k *Kinematics, in, out []float64) {
	if c.UsesQuaternion(k.UseEuler) {
		w := spatial.QuaternionAngVel(quatOf(k.Q),
			spatial.Quaternion{in[0], in[1], in[2], in[3]})
		out[0], out[1], out[2] = w[0], w[1], w[2]
		copy(out[3:], in[4:])
		return
	}
	copy(out, in)
}

func (c custom) MultiplyByNDot(k *Kinematics, in, out []float64) {
	if c.UsesQuaternion(k.UseEuler) {
		w := c.impl.MultiplyByH(k.UseEuler, k.Q, k.U).W
		qd := spatial.QuaternionQDot(quatOf(k.Q), w)
		win := c.impl.MultiplyByH(k.UseEuler, k.Q, in).W
		nd := spatial.QuaternionNDotMul(qd, win)
		copy(out[:4], nd[:])
		for i := 4; i < len(out); i++ {
			out[i] = 0
		}
		return
	}
	zero(out)
}

func (c custom) EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool {
	if !c.UsesQuaternion(k.UseEuler) {
		return false
	}
	return rotEnforceQuat(false, k.Q, qErrEst)
}

func (c custom) ConvertToEuler(qIn, qOut []float64) {
	if !c.quaternionCapable() {
		copy(qOut, qIn)
		return
	}
	rotConvertToEuler(qIn, qOut)
	copy(qOut[3:], qIn[4:])
}

func (c custom) ConvertToQuaternion(qIn, qOut []float64) {
	if !c.quaternionCapable() {
		copy(qOut, qIn)
		return
	}
	rotConvertToQuaternion(qIn, qOut)
	copy(qOut[4:], qIn[3:])
}
