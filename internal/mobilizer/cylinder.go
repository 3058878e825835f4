package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// cylinder permits independent rotation about and translation along
// F's z axis: q0 is the angle, q1 the displacement.
type cylinder struct {
	identityQ
}

func NewCylinder() Mobilizer { return cylinder{identityQ{nu: 2}} }

func (cylinder) Type() Type { return Cylinder }

func (cylinder) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{
		R: spatial.RotationAboutZ(k.Q[0]),
		P: spatial.Vec3{0, 0, k.Q[1]},
	}
}

func (cylinder) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitZ}
	h[1] = spatial.SpatialVec{V: spatial.UnitZ}
}

func (cylinder) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0] = r.ZRotationAngle()
}

func (cylinder) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	k.Q[1] = p[2]
}

func (cylinder) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0] = w[2]
}

func (cylinder) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[1] = v[2]
}
