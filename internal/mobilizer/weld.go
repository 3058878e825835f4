package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// weld permits no relative motion; X_FM is the identity forever.
type weld struct {
	identityQ
}

// NewWeld returns the zero-dof joint.
func NewWeld() Mobilizer { return weld{} }

func (weld) Type() Type { return Weld }

func (weld) Transform(*Kinematics) spatial.Transform {
	return spatial.IdentityTransform()
}

func (weld) Jacobian(*Kinematics, []spatial.SpatialVec) {}
