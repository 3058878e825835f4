package mobilizer

import (
	"math"

	"github.com/san-kum/multibody/internal/spatial"
)

// ellipsoid rolls M over the surface of an ellipsoid fixed in F: the
// orientation coordinates are ball-like, and M's origin is placed on
// the surface point whose outward normal is M's z axis. Semi-axes are
// fixed at construction.
type ellipsoid struct {
	ball
	semi spatial.Vec3
}

// NewEllipsoid returns the 3-dof surface joint with the given
// semi-axis lengths; non-positive axes are an error.
func NewEllipsoid(semiAxes spatial.Vec3) (Mobilizer, error) {
	for i, s := range semiAxes {
		if s <= 0 {
			return nil, errSemiAxis(i, s)
		}
	}
	return ellipsoid{semi: semiAxes}, nil
}

func (ellipsoid) Type() Type { return Ellipsoid }

func (e ellipsoid) Transform(k *Kinematics) spatial.Transform {
	r := rotGetRotation(k.UseEuler, k.Q)
	n := r.AxisZ()
	return spatial.Transform{
		R: r,
		P: spatial.Vec3{e.semi[0] * n[0], e.semi[1] * n[1], e.semi[2] * n[2]},
	}
}

func (e ellipsoid) Jacobian(k *Kinematics, h []spatial.SpatialVec) {
	n := k.XFM.R.AxisZ()
	for i, axis := range []spatial.Vec3{spatial.UnitX, spatial.UnitY, spatial.UnitZ} {
		nd := axis.Cross(n)
		h[i] = spatial.SpatialVec{
			W: axis,
			V: spatial.Vec3{e.semi[0] * nd[0], e.semi[1] * nd[1], e.semi[2] * nd[2]},
		}
	}
}

func (e ellipsoid) JacobianDot(k *Kinematics, hdot []spatial.SpatialVec) {
	ndot := k.VFM.W.Cross(k.XFM.R.AxisZ())
	for i, axis := range []spatial.Vec3{spatial.UnitX, spatial.UnitY, spatial.UnitZ} {
		nd := axis.Cross(ndot)
		hdot[i] = spatial.SpatialVec{
			V: spatial.Vec3{e.semi[0] * nd[0], e.semi[1] * nd[1], e.semi[2] * nd[2]},
		}
	}
}

// SetQToFitTranslation aims M's z axis at the surface point nearest
// the requested position (in the scaled sense), preserving the spin
// about that axis. A (near) zero request is unrepresentable and
// leaves q alone.
func (e ellipsoid) SetQToFitTranslation(k *Kinematics, p spatial.Vec3) {
	v := spatial.Vec3{p[0] / e.semi[0], p[1] / e.semi[1], p[2] / e.semi[2]}
	if v.Norm() < 1e-12 {
		return
	}
	v = v.Normalized()
	lat := math.Atan2(-v[1], v[2])
	lon := math.Atan2(v[0], v[2])
	spin := rotGetRotation(k.UseEuler, k.Q).ToBodyXYZ()[2]
	r := spatial.RotationAboutX(lat).
		Mul(spatial.RotationAboutY(lon)).
		Mul(spatial.RotationAboutZ(spin))
	rotSetRotation(k.UseEuler, k.Q, r)
}

// SetUToFitLinearVelocity treats the surface as a sphere of the
// matching semi-axis; only exact when the semi-axes are equal.
func (e ellipsoid) SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3) {
	k.U[0] = -v[1] / e.semi[1]
	k.U[1] = v[0] / e.semi[0]
}
