package spatial

import "math"

// Rotation is a proper orthogonal 3x3 matrix. R_AB maps vectors
// expressed in B to vectors expressed in A; columns are B's axes
// expressed in A.
type Rotation Mat33

func IdentityRotation() Rotation { return Rotation(Identity33()) }

func RotationAboutX(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func RotationAboutY(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func RotationAboutZ(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// RotationFromBodyXYZ builds the rotation from body-fixed successive
// rotations about x, y then z.
func RotationFromBodyXYZ(q Vec3) Rotation {
	return RotationAboutX(q[0]).Mul(RotationAboutY(q[1])).Mul(RotationAboutZ(q[2]))
}

// RotationFromBodyXY builds the rotation from body-fixed successive
// rotations about x then y.
func RotationFromBodyXY(a, b float64) Rotation {
	return RotationAboutX(a).Mul(RotationAboutY(b))
}

func (r Rotation) Mul(s Rotation) Rotation {
	return Rotation(Mat33(r).Mul(Mat33(s)))
}

// Apply maps a vector from the B frame into the A frame.
func (r Rotation) Apply(v Vec3) Vec3 { return Mat33(r).MulVec(v) }

// InvApply maps a vector from the A frame into the B frame (R^T v).
func (r Rotation) InvApply(v Vec3) Vec3 {
	return Vec3{
		r[0][0]*v[0] + r[1][0]*v[1] + r[2][0]*v[2],
		r[0][1]*v[0] + r[1][1]*v[1] + r[2][1]*v[2],
		r[0][2]*v[0] + r[1][2]*v[1] + r[2][2]*v[2],
	}
}

func (r Rotation) Inv() Rotation { return Rotation(Mat33(r).Transpose()) }

func (r Rotation) Mat() Mat33 { return Mat33(r) }

// AxisX returns B's x axis expressed in A (first column), and similarly
// for AxisY and AxisZ.
func (r Rotation) AxisX() Vec3 { return Vec3{r[0][0], r[1][0], r[2][0]} }
func (r Rotation) AxisY() Vec3 { return Vec3{r[0][1], r[1][1], r[2][1]} }
func (r Rotation) AxisZ() Vec3 { return Vec3{r[0][2], r[1][2], r[2][2]} }

// Reexpress returns R * m * R^T, re-expressing a symmetric tensor given
// in B into A.
func (r Rotation) Reexpress(m Mat33) Mat33 {
	return Mat33(r).Mul(m).Mul(Mat33(r).Transpose())
}

// ToBodyXYZ extracts body-fixed x-y-z angles reproducing r. Near the
// q1 = +-pi/2 singularity the split between q0 and q2 is arbitrary but
// the returned angles still reproduce r.
func (r Rotation) ToBodyXYZ() Vec3 {
	q0 := math.Atan2(-r[1][2], r[2][2])
	q1 := math.Atan2(r[0][2], math.Sqrt(r[0][0]*r[0][0]+r[0][1]*r[0][1]))
	q2 := math.Atan2(-r[0][1], r[0][0])
	return Vec3{q0, q1, q2}
}

// ToBodyXY extracts body-fixed x-y angles; only exact when r has no
// residual z rotation.
func (r Rotation) ToBodyXY() (float64, float64) {
	a := math.Atan2(-r[1][2], r[2][2])
	b := math.Atan2(r[0][2], r[0][0])
	return a, b
}

// ZRotationAngle projects r onto a pure rotation about z and returns
// the angle of that projection.
func (r Rotation) ZRotationAngle() float64 {
	return math.Atan2(r[1][0]-r[0][1], r[0][0]+r[1][1])
}

// Quaternion is scalar-first (w, x, y, z) and represents the same
// frame relationship as the Rotation it converts to.
type Quaternion [4]float64

func IdentityQuaternion() Quaternion { return Quaternion{1, 0, 0, 0} }

func (q Quaternion) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

func (q Quaternion) Scale(s float64) Quaternion {
	return Quaternion{s * q[0], s * q[1], s * q[2], s * q[3]}
}

// Normalized rescales q to unit norm; the identity is returned for a
// (near) zero input.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n < 1e-300 {
		return IdentityQuaternion()
	}
	return q.Scale(1 / n)
}

func (q Quaternion) Dot(p Quaternion) float64 {
	return q[0]*p[0] + q[1]*p[1] + q[2]*p[2] + q[3]*p[3]
}

func (q Quaternion) ToRotation() Rotation {
	w, x, y, z := q[0], q[1], q[2], q[3]
	return Rotation{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// ToQuaternion converts using Shepperd's method: pick the largest of
// the four candidate denominators so the division is well conditioned
// for every orientation. The scalar part is kept nonnegative.
func (r Rotation) ToQuaternion() Quaternion {
	tr := r[0][0] + r[1][1] + r[2][2]
	var q Quaternion
	switch {
	case tr >= r[0][0] && tr >= r[1][1] && tr >= r[2][2]:
		s := math.Sqrt(1+tr) * 2
		q = Quaternion{s / 4, (r[2][1] - r[1][2]) / s, (r[0][2] - r[2][0]) / s, (r[1][0] - r[0][1]) / s}
	case r[0][0] >= r[1][1] && r[0][0] >= r[2][2]:
		s := math.Sqrt(1+r[0][0]-r[1][1]-r[2][2]) * 2
		q = Quaternion{(r[2][1] - r[1][2]) / s, s / 4, (r[0][1] + r[1][0]) / s, (r[0][2] + r[2][0]) / s}
	case r[1][1] >= r[2][2]:
		s := math.Sqrt(1-r[0][0]+r[1][1]-r[2][2]) * 2
		q = Quaternion{(r[0][2] - r[2][0]) / s, (r[0][1] + r[1][0]) / s, s / 4, (r[1][2] + r[2][1]) / s}
	default:
		s := math.Sqrt(1-r[0][0]-r[1][1]+r[2][2]) * 2
		q = Quaternion{(r[1][0] - r[0][1]) / s, (r[0][2] + r[2][0]) / s, (r[1][2] + r[2][1]) / s, s / 4}
	}
	if q[0] < 0 {
		q = q.Scale(-1)
	}
	return q
}
