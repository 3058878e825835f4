package spatial

// Kinematic coupling maps qdot = N(q) u for the two rotational
// coordinate representations.
//
// For body-fixed XYZ Euler angles, u here is the angular velocity
// expressed in the rotated (body) frame. Callers whose generalized
// speeds live in the parent frame compose these with R^T first.
//
// For quaternions, u is the angular velocity expressed in the parent
// frame.

// EulerXYZN returns N(q) with qdot = N * w_body. Singular at
// cos(q1) == 0; the caller gets a large but finite answer near the
// singularity, not an error.
func EulerXYZN(q Vec3) Mat33 {
	s1, c1 := sincos(q[1])
	s2, c2 := sincos(q[2])
	oc1 := 1 / c1
	return Mat33{
		{c2 * oc1, -s2 * oc1, 0},
		{s2, c2, 0},
		{-s1 * c2 * oc1, s1 * s2 * oc1, 1},
	}
}

// EulerXYZNInv returns N(q)^-1 with w_body = NInv * qdot. Well defined
// for all q.
func EulerXYZNInv(q Vec3) Mat33 {
	s1, c1 := sincos(q[1])
	s2, c2 := sincos(q[2])
	return Mat33{
		{c1 * c2, s2, 0},
		{-c1 * s2, c2, 0},
		{s1, 0, 1},
	}
}

// EulerXYZNDot returns d/dt N(q) along qdot.
func EulerXYZNDot(q, qdot Vec3) Mat33 {
	s1, c1 := sincos(q[1])
	s2, c2 := sincos(q[2])
	oc1 := 1 / c1
	oc1sq := oc1 * oc1
	t1 := s1 * oc1
	q1d, q2d := qdot[1], qdot[2]
	return Mat33{
		{-s2*q2d*oc1 + c2*s1*q1d*oc1sq, -c2*q2d*oc1 - s2*s1*q1d*oc1sq, 0},
		{c2 * q2d, -s2 * q2d, 0},
		{-c2*q1d*oc1sq + t1*s2*q2d, s2*q1d*oc1sq + t1*c2*q2d, 0},
	}
}

// QuaternionQDot returns qdot = 0.5 * M(q) * w with w the angular
// velocity in the parent frame.
func QuaternionQDot(q Quaternion, w Vec3) Quaternion {
	return quatRateMap(q, w).Scale(0.5)
}

// QuaternionQDotDot returns the second derivative of q given the
// angular velocity and acceleration in the parent frame:
// qddot = 0.5*M(q)*wdot - 0.25*|w|^2*q.
func QuaternionQDotDot(q Quaternion, w, wdot Vec3) Quaternion {
	dd := quatRateMap(q, wdot).Scale(0.5)
	return Quaternion{
		dd[0] - 0.25*w.NormSq()*q[0],
		dd[1] - 0.25*w.NormSq()*q[1],
		dd[2] - 0.25*w.NormSq()*q[2],
		dd[3] - 0.25*w.NormSq()*q[3],
	}
}

// QuaternionAngVel inverts the rate map: w = 2 * M(q)^T * qdot.
func QuaternionAngVel(q, qdot Quaternion) Vec3 {
	return Vec3{
		2 * (-q[1]*qdot[0] + q[0]*qdot[1] - q[3]*qdot[2] + q[2]*qdot[3]),
		2 * (-q[2]*qdot[0] + q[3]*qdot[1] + q[0]*qdot[2] - q[1]*qdot[3]),
		2 * (-q[3]*qdot[0] - q[2]*qdot[1] + q[1]*qdot[2] + q[0]*qdot[3]),
	}
}

// QuaternionNDotMul applies d/dt N to a vector: since N is linear in
// q, NDot(q, qdot) * v = 0.5 * M(qdot) * v.
func QuaternionNDotMul(qdot Quaternion, v Vec3) Quaternion {
	return quatRateMap(qdot, v).Scale(0.5)
}

// quatRateMap computes M(q)*w for the 4x3 map
//
//	[ -q1 -q2 -q3 ]
//	[  q0  q3 -q2 ]
//	[ -q3  q0  q1 ]
//	[  q2 -q1  q0 ]
func quatRateMap(q Quaternion, w Vec3) Quaternion {
	return Quaternion{
		-q[1]*w[0] - q[2]*w[1] - q[3]*w[2],
		q[0]*w[0] + q[3]*w[1] - q[2]*w[2],
		-q[3]*w[0] + q[0]*w[1] + q[1]*w[2],
		q[2]*w[0] - q[1]*w[1] + q[0]*w[2],
	}
}
