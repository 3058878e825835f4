package tree

import (
	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

// CalcForwardDynamics solves for the generalized accelerations given
// applied spatial forces per body (ground slot included) and applied
// generalized forces per mobility; either may be nil for zero. The
// articulated-body two-pass recursion fills the acceleration-stage
// cache: read results through UDot, QDotDot and BodyAcceleration.
func (s *State) CalcForwardDynamics(bodyForces []spatial.SpatialVec, mobilityForces []float64) {
	s.RealizeDynamics()
	t := s.tree
	n := len(t.nodes)

	bf := func(i int) spatial.SpatialVec {
		if bodyForces == nil {
			return spatial.SpatialVec{}
		}
		return bodyForces[i]
	}
	mf := func(i int) float64 {
		if mobilityForces == nil {
			return 0
		}
		return mobilityForces[i]
	}

	// pass 1, tip to base: accumulate bias forces and joint residuals
	for i := n - 1; i >= 1; i-- {
		nd := &t.nodes[i]
		z := s.dyn.centrifugal[i].Sub(bf(i))
		for _, c := range nd.children {
			z = z.Add(s.pos.phi[c].ShiftForce(s.scratchZ[c].Add(s.scratchGeps[c])))
		}
		s.scratchZ[i] = z

		var geps spatial.SpatialVec
		for j := 0; j < nd.nu; j++ {
			eps := mf(nd.uIdx+j) - s.pos.h[i][j].Dot(z)
			s.scratchEps[nd.uIdx+j] = eps
			geps = geps.Add(s.dyn.g[i][j].Scale(eps))
		}
		s.scratchGeps[i] = geps
	}
	// TODO sign is weird
	z := bf(0).Neg()
	for _, c := range t.nodes[0].children {
		z = z.Add(s.pos.phi[c].ShiftForce(s.scratchZ[c].Add(s.scratchGeps[c])))
	}
	s.scratchZ[0] = z

	// pass 2, base to tip: propagate accelerations and solve per node
	s.acc.aGB[0] = spatial.SpatialVec{}
	for i := 1; i < n; i++ {
		nd := &t.nodes[i]
		aGP := s.pos.phi[i].ShiftVelocity(s.acc.aGB[nd.parent])
		a := aGP.Add(s.dyn.coriolis[i])
		for j := 0; j < nd.nu; j++ {
			ud := -s.dyn.g[i][j].Dot(aGP)
			for l := 0; l < nd.nu; l++ {
				ud += s.dyn.di[i][j*nd.nu+l] * s.scratchEps[nd.uIdx+l]
			}
			s.acc.udot[nd.uIdx+j] = ud
			a = a.Add(s.pos.h[i][j].Scale(ud))
		}
		s.acc.aGB[i] = a
	}

	s.calcQDotDotFromUDot()
	s.acc.valid = true
}

func (s *State) calcQDotDotFromUDot() {
	t := s.tree
	for i := range s.acc.qdotdot {
		s.acc.qdotdot[i] = 0
	}
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		if nd.nu == 0 {
			continue
		}
		k := s.kin(i)
		nd.mob.QDotDot(&k,
			s.acc.udot[nd.uIdx:nd.uIdx+nd.nu],
			s.acc.qdotdot[nd.qIdx:nd.qIdx+nd.mob.NQ(s.useEuler)])
	}
}

// CalcMInverseF applies the inverse mass matrix to an arbitrary
// generalized force: udot = M^-1 f. Same two-pass shape as forward
// dynamics but with no applied body forces and no velocity-dependent
// terms, so the result is the instantaneous acceleration response to
// f alone. udot must have length NumU.
func (s *State) CalcMInverseF(f, udot []float64) {
	s.RealizeDynamics()
	t := s.tree
	n := len(t.nodes)

	for i := n - 1; i >= 1; i-- {
		nd := &t.nodes[i]
		var z spatial.SpatialVec
		for _, c := range nd.children {
			z = z.Add(s.pos.phi[c].ShiftForce(s.scratchZ[c].Add(s.scratchGeps[c])))
		}
		s.scratchZ[i] = z

		var geps spatial.SpatialVec
		for j := 0; j < nd.nu; j++ {
			eps := f[nd.uIdx+j] - s.pos.h[i][j].Dot(z)
			s.scratchEps[nd.uIdx+j] = eps
			geps = geps.Add(s.dyn.g[i][j].Scale(eps))
		}
		s.scratchGeps[i] = geps
	}

	s.scratchA[0] = spatial.SpatialVec{}
	for i := 1; i < n; i++ {
		nd := &t.nodes[i]
		aGP := s.pos.phi[i].ShiftVelocity(s.scratchA[nd.parent])
		a := aGP
		for j := 0; j < nd.nu; j++ {
			ud := -s.dyn.g[i][j].Dot(aGP)
			for l := 0; l < nd.nu; l++ {
				ud += s.dyn.di[i][j*nd.nu+l] * s.scratchEps[nd.uIdx+l]
			}
			udot[nd.uIdx+j] = ud
			a = a.Add(s.pos.h[i][j].Scale(ud))
		}
		s.scratchA[i] = a
	}
}

// MultiplyByM computes tau = M*a for an arbitrary acceleration-like
// vector a, with no velocity-dependent contributions: an outward
// acceleration pass followed by an inward force pass. Position stage
// suffices. tau must have length NumU.
func (s *State) MultiplyByM(a, tau []float64) {
	s.RealizePosition()
	t := s.tree
	n := len(t.nodes)

	s.scratchA[0] = spatial.SpatialVec{}
	for i := 1; i < n; i++ {
		nd := &t.nodes[i]
		acc := s.pos.phi[i].ShiftVelocity(s.scratchA[nd.parent])
		for j := 0; j < nd.nu; j++ {
			acc = acc.Add(s.pos.h[i][j].Scale(a[nd.uIdx+j]))
		}
		s.scratchA[i] = acc
	}

	for i := n - 1; i >= 1; i-- {
		nd := &t.nodes[i]
		f := s.pos.mk[i].MulVec(s.scratchA[i])
		for _, c := range nd.children {
			f = f.Add(s.pos.phi[c].ShiftForce(s.scratchF[c]))
		}
		s.scratchF[i] = f
		for j := 0; j < nd.nu; j++ {
			tau[nd.uIdx+j] = s.pos.h[i][j].Dot(f)
		}
	}
}

// CalcEquivalentJointForces maps applied body spatial forces to the
// generalized forces that would produce the same effect, tip to base.
// jointForces must have length NumU.
func (s *State) CalcEquivalentJointForces(bodyForces []spatial.SpatialVec, jointForces []float64) {
	s.RealizePosition()
	t := s.tree
	n := len(t.nodes)

	for i := n - 1; i >= 1; i-- {
		nd := &t.nodes[i]
		z := bodyForces[i]
		for _, c := range nd.children {
			z = z.Add(s.pos.phi[c].ShiftForce(s.scratchZ[c]))
		}
		s.scratchZ[i] = z
		for j := 0; j < nd.nu; j++ {
			jointForces[nd.uIdx+j] = s.pos.h[i][j].Dot(z)
		}
	}
	s.scratchZ[0] = bodyForces[0]
}

// CalcQDot converts the current generalized speeds to coordinate
// rates; qdot must have length NumQ. Unused trailing slots of
// wide joints are zeroed.
func (s *State) CalcQDot(qdot []float64) {
	for i := range qdot {
		qdot[i] = 0
	}
	t := s.tree
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		if nd.nu == 0 {
			continue
		}
		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
		}
		nd.mob.QDot(&k, qdot[nd.qIdx:nd.qIdx+nd.mob.NQ(s.useEuler)])
	}
}

// CalcQDotDot converts the given generalized accelerations to
// coordinate second derivatives at the current q and u; udot must
// have length NumU and qdotdot length NumQ.
func (s *State) CalcQDotDot(udot, qdotdot []float64) {
	for i := range qdotdot {
		qdotdot[i] = 0
	}
	t := s.tree
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		if nd.nu == 0 {
			continue
		}
		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
		}
		nd.mob.QDotDot(&k, udot[nd.uIdx:nd.uIdx+nd.nu],
			qdotdot[nd.qIdx:nd.qIdx+nd.mob.NQ(s.useEuler)])
	}
}

// MultiplyByN applies the block-diagonal coordinate map N (qdot = N u)
// to a u-sized vector; out must have length NumQ.
func (s *State) MultiplyByN(in, out []float64) {
	s.applyN(in, out, func(m mobilizer.Mobilizer, k *mobilizer.Kinematics, i, o []float64) {
		m.MultiplyByN(k, i, o)
	}, false)
}

// MultiplyByNInv applies N's left inverse (u = N⁺ qdot) to a q-sized
// vector; out must have length NumU.
func (s *State) MultiplyByNInv(in, out []float64) {
	s.applyN(in, out, func(m mobilizer.Mobilizer, k *mobilizer.Kinematics, i, o []float64) {
		m.MultiplyByNInv(k, i, o)
	}, true)
}

// MultiplyByNDot applies NDot at the current q and u to a u-sized
// vector; out must have length NumQ.
func (s *State) MultiplyByNDot(in, out []float64) {
	s.applyN(in, out, func(m mobilizer.Mobilizer, k *mobilizer.Kinematics, i, o []float64) {
		m.MultiplyByNDot(k, i, o)
	}, false)
}

// applyN runs one joint-block operator over the whole tree. inv picks
// which side is q-sized: N and NDot take u in and q out, NInv the
// reverse.
func (s *State) applyN(in, out []float64, op func(mobilizer.Mobilizer, *mobilizer.Kinematics, []float64, []float64), inv bool) {
	for i := range out {
		out[i] = 0
	}
	t := s.tree
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		if nd.nu == 0 {
			continue
		}
		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
		}
		qBlk := nd.qIdx + nd.mob.NQ(s.useEuler)
		uBlk := nd.uIdx + nd.nu
		if inv {
			op(nd.mob, &k, in[nd.qIdx:qBlk], out[nd.uIdx:uBlk])
		} else {
			op(nd.mob, &k, in[nd.uIdx:uBlk], out[nd.qIdx:qBlk])
		}
	}
}

// CalcKineticEnergy returns 1/2 sum V.M.V over the bodies; velocity
// stage realized on demand.
func (s *State) CalcKineticEnergy() float64 {
	s.RealizeVelocity()
	ke := 0.0
	for i := 1; i < len(s.tree.nodes); i++ {
		v := s.vel.vGB[i]
		ke += 0.5 * v.Dot(s.pos.mk[i].MulVec(v))
	}
	return ke
}

// ProjectQuaternions rescales every in-use quaternion block to unit
// norm and, when qErrEst (length NumQ, aligned with q) is non-nil,
// removes its component along each renormalized quaternion. Reports
// whether any quaternion coordinates were subject to adjustment;
// position and higher stages are invalidated when so.
func (s *State) ProjectQuaternions(qErrEst []float64) bool {
	t := s.tree
	changed := false
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
		}
		var est []float64
		if qErrEst != nil {
			est = qErrEst[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)]
		}
		if nd.mob.EnforceQuaternionConstraints(&k, est) {
			changed = true
		}
	}
	if changed {
		s.invalidatePosition()
	}
	return changed
}
