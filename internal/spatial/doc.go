// Package spatial provides the rigid-body math layer for the multibody
// engine: 3-vectors and 3x3 matrices, rotations, homogeneous transforms,
// unit quaternions, and the 6-component spatial algebra (combined
// angular+linear vectors, 6x6 block operators, spatial inertia).
//
// Conventions:
//
//   - [Rotation] R_AB maps vectors expressed in frame B to frame A.
//   - [Transform] X_AB locates frame B in frame A (rotation plus the
//     position of B's origin measured from A's origin, expressed in A).
//   - [SpatialVec] packs the angular part first, linear part second.
//   - [Phi] is the rigid shift operator between two points of the same
//     body: Phi(p) shifts spatial forces inboard, its transpose shifts
//     spatial velocities and accelerations outboard.
//
// Quaternions are scalar-first and represent the same R_AB as the
// rotation they convert to. The kinematic maps (qdot = N(q) u) for
// body-fixed XYZ Euler angles and for quaternions live here as well so
// joint code can share one implementation.
//
// All types are small fixed-size values; nothing in this package
// allocates.
package spatial
