package mobilizer

import (
	"math"

	"github.com/san-kum/multibody/internal/spatial"
)

// bendstretch rotates about F's z axis (q0) then translates along M's
// x axis (q1), a polar-coordinate joint in the x-y plane. The second
// axis follows the first, so H is position dependent.
type bendstretch struct {
	identityQ
}

func NewBendStretch() Mobilizer { return bendstretch{identityQ{nu: 2}} }

func (bendstretch) Type() Type { return BendStretch }

func (bendstretch) Transform(k *Kinematics) spatial.Transform {
	r := spatial.RotationAboutZ(k.Q[0])
	return spatial.Transform{R: r, P: r.Apply(spatial.Vec3{k.Q[1], 0, 0})}
}

func (bendstretch) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	x := k.XFM
	h[0] = spatial.SpatialVec{W: spatial.UnitZ, V: spatial.UnitZ.Cross(x.P)}
	h[1] = spatial.SpatialVec{V: x.R.AxisX()}
}

func (bendstretch) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	hdot[0] = spatial.SpatialVec{V: spatial.UnitZ.Cross(k.VFM.V)}
	hdot[1] = spatial.SpatialVec{V: k.VFM.W.Cross(k.XFM.R.AxisX())}
}

func (bendstretch) SetQToFitRotation(k *Kinematics, r spatial.Rotation) {
	k.Q[0] = r.ZRotationAngle()
}

// SetQToFitTranslation aims the bend angle at p and stretches to reach
// it; a (near) zero p keeps the current angle.
func (bendstretch) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	n := math.Hypot(p[0], p[1])
	if n > 1e-12 {
		k.Q[0] = math.Atan2(p[1], p[0])
	}
	k.Q[1] = n
}

func (bendstretch) SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3) {
	k.U[0] = w[2]
}

// SetUToFitLinearVelocity splits v into the stretch rate along M's x
// and the bend rate; the bend component is unrepresentable at zero
// stretch and is dropped there.
func (bendstretch) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	s, c := math.Sincos(k.Q[0])
	k.U[1] = c*v[0] + s*v[1]
	if math.Abs(k.Q[1]) > 1e-12 {
		k.U[0] = (-s*v[0] + c*v[1]) / k.Q[1]
	}
}
