package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// freeline is a free joint for a line body: line-orientation rotation
// (2 dof, speeds in M) plus unrestricted translation (3 dof, position
// and speeds in F).
type freeline struct {
	lineorientation
}

func NewFreeLine() Mobilizer { return freeline{} }

func (freeline) Type() Type { return FreeLine }
func (freeline) NumU() int  { return 5 }
func (freeline) MaxNQ() int { return 7 }

func (freeline) NQ(useEuler bool) int { return rotNQ(useEuler) + 3 }

func (freeline) DefaultQ(useEuler bool, q []float64) {
	zero(q)
	rotDefaultQ(useEuler, q)
}

func (f freeline) Transform(k *Kinematics) spatial.Transform {
	t := rotNQ(k.UseEuler)
	return spatial.Transform{
		R: rotGetRotation(k.UseEuler, k.Q),
		P: spatial.Vec3{k.Q[t], k.Q[t+1], k.Q[t+2]},
	}
}

func (f freeline) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	f.lineorientation.Jacobian(k, h[:2])
	h[2] = spatial.SpatialVec{V: spatial.UnitX}
	h[3] = spatial.SpatialVec{V: spatial.UnitY}
	h[4] = spatial.SpatialVec{V: spatial.UnitZ}
}

func (f freeline) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	f.lineorientation.JacobianDot(k, hdot[:2])
	hdot[2] = spatial.SpatialVec{}
	hdot[3] = spatial.SpatialVec{}
	hdot[4] = spatial.SpatialVec{}
}

func (f freeline) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	t := rotNQ(k.UseEuler)
	k.Q[t], k.Q[t+1], k.Q[t+2] = p[0], p[1], p[2]
}

func (f freeline) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[2], k.U[3], k.U[4] = v[0], v[1], v[2]
}

func (f freeline) QDot(k *Kinematics, qdot []float64) {
	rotQDotFromBodyW(k.UseEuler, k.Q, spatial.Vec3{k.U[0], k.U[1], 0}, qdot)
	t := rotNQ(k.UseEuler)
	qdot[t], qdot[t+1], qdot[t+2] = k.U[2], k.U[3], k.U[4]
}

func (f freeline) QDotDot(k *Kinematics, udot, qdotdot []float64) {
	rotQDotDotFromBodyW(k.UseEuler, k.Q,
		spatial.Vec3{k.U[0], k.U[1], 0},
		spatial.Vec3{udot[0], udot[1], 0}, qdotdot)
	t := rotNQ(k.UseEuler)
	qdotdot[t], qdotdot[t+1], qdotdot[t+2] = udot[2], udot[3], udot[4]
}

func (f freeline) MultiplyByN(k *Kinematics, in, out []float64) {
	rotQDotFromBodyW(k.UseEuler, k.Q, spatial.Vec3{in[0], in[1], 0}, out)
	t := rotNQ(k.UseEuler)
	out[t], out[t+1], out[t+2] = in[2], in[3], in[4]
}

func (f freeline) MultiplyByNInv(k *Kinematics, in, out []float64) {
	f.lineorientation.MultiplyByNInv(k, in, out[:2])
	t := rotNQ(k.UseEuler)
	out[2], out[3], out[4] = in[t], in[t+1], in[t+2]
}

func (f freeline) MultiplyByNDot(k *Kinematics, in, out []float64) {
	f.lineorientation.MultiplyByNDot(k, in, out)
	t := rotNQ(k.UseEuler)
	out[t], out[t+1], out[t+2] = 0, 0, 0
}

func (f freeline) ConvertToEuler(qIn, qOut []float64) {
	rotConvertToEuler(qIn, qOut)
	qOut[3], qOut[4], qOut[5] = qIn[4], qIn[5], qIn[6]
}

func (f freeline) ConvertToQuaternion(qIn, qOut []float64) {
	rotConvertToQuaternion(qIn, qOut)
	qOut[4], qOut[5], qOut[6] = qIn[3], qIn[4], qIn[5]
}
