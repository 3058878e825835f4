// Package tree implements the articulated multibody dynamics kernel:
// a rooted tree of rigid bodies coupled by mobilizers, realized
// against per-state caches in fixed stage order, with O(n) recursive
// operators for forward dynamics, mass-matrix multiply and solve,
// and joint-space force mapping.
//
// # Topology
//
// Bodies live in a flat arena ordered so every body's index is
// strictly greater than its parent's; body 0 is Ground. Base-to-tip
// passes are a forward scan over the arena, tip-to-base passes a
// reverse scan. Topology is fixed once [Builder.Build] returns; a
// single [Tree] may be evaluated against any number of independent
// [State] instances concurrently.
//
// # Stages
//
// Each State owns one cache struct per realization stage (position,
// velocity, dynamics, acceleration) with a validity bit. Realizing a
// stage realizes its prerequisites first and is idempotent: a second
// call with unchanged q/u recomputes nothing. Writing q invalidates
// position and above; writing u invalidates velocity and above.
// Reading a cache-backed quantity before its stage is realized is a
// caller bug and panics.
//
// # Operators
//
// [State.CalcForwardDynamics] runs the articulated-body two-pass
// recursion producing udot and body accelerations from applied body
// and mobility forces. [State.CalcMInverseF] and [State.MultiplyByM]
// apply the inverse and forward mass matrix with the same two-pass
// shape. [State.CalcEquivalentJointForces] maps body spatial forces
// to generalized forces. [State.ProjectQuaternions] renormalizes
// quaternion coordinates and filters an error estimate.
package tree
