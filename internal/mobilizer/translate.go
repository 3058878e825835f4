package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// translate is the 3-dof Cartesian joint: q is the position of M's
// origin in F, orientation locked.
type translate struct {
	identityQ
}

func NewTranslate() Mobilizer { return translate{identityQ{nu: 3}} }

func (translate) Type() Type { return Translate }

func (translate) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{
		R: spatial.IdentityRotation(),
		P: spatial.Vec3{k.Q[0], k.Q[1], k.Q[2]},
	}
}

func (translate) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{V: spatial.UnitX}
	h[1] = spatial.SpatialVec{V: spatial.UnitY}
	h[2] = spatial.SpatialVec{V: spatial.UnitZ}
}

func (translate) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	k.Q[0], k.Q[1], k.Q[2] = p[0], p[1], p[2]
}

func (translate) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[0], k.U[1], k.U[2] = v[0], v[1], v[2]
}
