package mobilizer

import (
	"math"

	"github.com/san-kum/multibody/internal/spatial"
)

// universal is the body-fixed x-then-y rotation pair: the first axis
// is F's x, the second is M's (current) y, so the second column of H
// turns with q0.
type universal struct {
	identityQ
}

func NewUniversal() Mobilizer { return universal{identityQ{nu: 2}} }

func (universal) Type() Type { return Universal }

func (universal) Transform(k *Kinematics) spatial.Transform {
	return spatial.Transform{R: spatial.RotationFromBodyXY(k.Q[0], k.Q[1])}
}

func (universal) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	h[0] = spatial.SpatialVec{W: spatial.UnitX}
	h[1] = spatial.SpatialVec{W: k.XFM.R.AxisY()}
}

func (universal) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	hdot[0] = spatial.SpatialVec{}
	hdot[1] = spatial.SpatialVec{W: k.VFM.W.Cross(k.XFM.R.AxisY())}
}

func (universal) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0], k.Q[1] = r.ToBodyXY()
}

func (universal) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	s, c := math.Sincos(k.Q[0])
	k.U[0] = w[0]
	k.U[1] = c*w[1] + s*w[2]
}
