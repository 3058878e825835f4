package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// torsion (pin) permits rotation about F's z axis only.
type torsion struct {
	identityQ
}

func NewTorsion() Mobilizer { return torsion{identityQ{nu: 1}} }

func (torsion) Type() Type { return Torsion }

func (torsion) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{R: spatial.RotationAboutZ(k.Q[0])}
}

func (torsion) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitZ}
}

func (torsion) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0] = r.ZRotationAngle()
}

func (torsion) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0] = w[2]
}
