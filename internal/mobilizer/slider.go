package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// slider permits translation along F's x axis only.
type slider struct {
	identityQ
}

func NewSlider() Mobilizer { return slider{identityQ{nu: 1}} }

func (slider) Type() Type { return Slider }

func (slider) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{
		R: spatial.IdentityRotation(),
		P: spatial.Vec3{k.Q[0], 0, 0},
	}
}

func (slider) Jacobian(_ *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{V: spatial.UnitX}
}

func (slider) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	k.Q[0] = p[0]
}

func (slider) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[0] = v[0]
}
