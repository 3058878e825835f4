package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// planar permits rotation about F's z axis (q0) and translation in
// F's x-y plane (q1, q2).
type planar struct {
	identityQ
}

func NewPlanar() Mobilizer { return planar{identityQ{nu: 3}} }

func (planar) Type() Type { return Planar }

func (planar) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{
		R: spatial.RotationAboutZ(k.Q[0]),
		P: spatial.Vec3{k.Q[1], k.Q[2], 0},
	}
}

func (planar) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitZ}
	h[1] = spatial.SpatialVec{V: spatial.UnitX}
	h[2] = spatial.SpatialVec{V: spatial.UnitY}
}

func (planar) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0] = r.ZRotationAngle()
}

func (planar) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	k.Q[1], k.Q[2] = p[0], p[1]
}

func (planar) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0] = w[2]
}

func (planar) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[1], k.U[2] = v[0], v[1]
}
