package mobilizer

import (
	"math"

	"github.com/san-kum/multibody/internal/spatial"
)

// screw couples rotation about and translation along F's z axis
// through a fixed pitch (translation per radian).
type screw struct {
	identityQ
	pitch float64
}

func NewScrew(pitch float64) Mobilizer {
	return screw{identityQ{nu: 1}, pitch}
}

func (screw) Type() Type { return Screw }

func (s screw) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{
		R: spatial.RotationAboutZ(k.Q[0]),
		P: spatial.Vec3{0, 0, k.Q[0] * s.pitch},
	}
}

func (s screw) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitZ, V: spatial.Vec3{0, 0, s.pitch}}
}

func (s screw) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0] = r.ZRotationAngle()
}

func (s screw) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	if math.Abs(s.pitch) > 1e-300 {
		k.Q[0] = p[2] / s.pitch
	}
}

func (s screw) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0] = w[2]
}

func (s screw) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	if math.Abs(s.pitch) > 1e-300 {
		k.U[0] = v[2] / s.pitch
	}
}
