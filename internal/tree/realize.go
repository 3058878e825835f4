package tree

import (
	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

// RealizePosition computes, base to tip, every position-stage
// quantity: across-joint and body-to-ground transforms, the parent
// shift operator, ground-frame inertias and the ground-frame
// parent-to-child Jacobian. Idempotent.
func (s *State) RealizePosition() {
	if s.pos.valid {
		return
	}
	t := s.tree
	s.pos.xGB[0] = spatial.IdentityTransform()
	s.pos.xFM[0] = spatial.IdentityTransform()
	s.pos.xPB[0] = spatial.IdentityTransform()

	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
		}
		xFM := nd.mob.Transform(&k)
		k.XFM = xFM
		s.pos.xFM[i] = xFM

		xPB := nd.xPF.Compose(xFM).Compose(nd.xBM.Invert())
		s.pos.xPB[i] = xPB
		xGP := s.pos.xGB[nd.parent]
		xGB := xGP.Compose(xPB)
		s.pos.xGB[i] = xGB

		s.pos.phi[i] = spatial.Phi{P: xGP.R.Apply(xPB.P)}
		s.pos.inertiaG[i] = xGB.R.Reexpress(nd.inertia)
		s.pos.comG[i] = xGB.R.Apply(nd.com)
		s.pos.mk[i] = spatial.SpatialInertia(nd.mass, s.pos.comG[i], s.pos.inertiaG[i])

		hFM := s.pos.hFM[i]
		nd.mob.Jacobian(&k, hFM)
		rGF := xGP.R.Mul(nd.xPF.R)
		pMB := xGB.R.Apply(nd.xBM.P).Neg()
		for j := range hFM {
			hw := rGF.Apply(hFM[j].W)
			hv := rGF.Apply(hFM[j].V)
			s.pos.h[i][j] = spatial.SpatialVec{W: hw, V: hv.Add(hw.Cross(pMB))}
		}

		if nd.quatIdx >= 0 {
			if nd.mob.UsesQuaternion(s.useEuler) {
				qu := spatial.Quaternion{k.Q[0], k.Q[1], k.Q[2], k.Q[3]}
				s.pos.qerr[nd.quatIdx] = qu.Norm() - 1
			} else {
				s.pos.qerr[nd.quatIdx] = 0
			}
		}
	}
	s.pos.valid = true
}

// RealizeVelocity computes, base to tip, the across-joint and body
// spatial velocities and the Jacobian time derivative. Idempotent.
func (s *State) RealizeVelocity() {
	s.RealizePosition()
	if s.vel.valid {
		return
	}
	t := s.tree
	s.vel.vGB[0] = spatial.SpatialVec{}

	var hdBuf [6]spatial.SpatialVec
	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		u := s.u[nd.uIdx : nd.uIdx+nd.nu]

		var vFM, vPB spatial.SpatialVec
		for j := 0; j < nd.nu; j++ {
			vFM = vFM.Add(s.pos.hFM[i][j].Scale(u[j]))
			vPB = vPB.Add(s.pos.h[i][j].Scale(u[j]))
		}
		s.vel.vFM[i] = vFM
		s.vel.vPB[i] = vPB
		s.vel.vGB[i] = s.pos.phi[i].ShiftVelocity(s.vel.vGB[nd.parent]).Add(vPB)

		k := mobilizer.Kinematics{
			UseEuler: s.useEuler,
			Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
			U:        u,
			XFM:      s.pos.xFM[i],
			VFM:      vFM,
		}
		hdFM := hdBuf[:nd.nu]
		nd.mob.JacobianDot(&k, hdFM)

		xGP := s.pos.xGB[nd.parent]
		rGF := xGP.R.Mul(nd.xPF.R)
		pMB := s.pos.xGB[i].R.Apply(nd.xBM.P).Neg()
		pMBDot := vPB.W.Cross(pMB)
		// the parent's rotation carries the ground-frame columns along:
		// d/dt H_G picks up wGP x H on both halves (the wGP part of
		// pMBDot folds into wGP x h.V by the Jacobi identity)
		wGP := s.vel.vGB[nd.parent].W
		for j := 0; j < nd.nu; j++ {
			hdw := rGF.Apply(hdFM[j].W)
			hdv := rGF.Apply(hdFM[j].V)
			s.vel.hDot[i][j] = spatial.SpatialVec{
				W: hdw.Add(wGP.Cross(s.pos.h[i][j].W)),
				V: hdv.Add(hdw.Cross(pMB)).
					Add(s.pos.h[i][j].W.Cross(pMBDot)).
					Add(wGP.Cross(s.pos.h[i][j].V)),
			}
		}
	}
	s.vel.valid = true
}

// RealizeDynamics computes the velocity-dependent force terms
// (gyroscopic, Coriolis) base to tip, then assembles the
// articulated-body inertias tip to base. Idempotent.
func (s *State) RealizeDynamics() {
	s.RealizeVelocity()
	if s.dyn.valid {
		return
	}
	t := s.tree
	s.dyn.gyro[0] = spatial.SpatialVec{}
	s.dyn.coriolis[0] = spatial.SpatialVec{}
	s.dyn.totalCoriolis[0] = spatial.SpatialVec{}
	s.dyn.centrifugal[0] = spatial.SpatialVec{}

	for i := 1; i < len(t.nodes); i++ {
		nd := &t.nodes[i]
		w := s.vel.vGB[i].W
		s.dyn.gyro[i] = spatial.SpatialVec{
			W: w.Cross(s.pos.inertiaG[i].MulVec(w)),
			V: w.Cross(w.Cross(s.pos.comG[i])).Scale(nd.mass),
		}

		var vd spatial.SpatialVec
		for j := 0; j < nd.nu; j++ {
			vd = vd.Add(s.vel.hDot[i][j].Scale(s.u[nd.uIdx+j]))
		}
		wP := s.vel.vGB[nd.parent].W
		s.dyn.coriolis[i] = spatial.SpatialVec{
			V: wP.Cross(s.vel.vGB[i].V.Sub(s.vel.vGB[nd.parent].V)),
		}.Add(vd)
		s.dyn.totalCoriolis[i] = s.pos.phi[i].
			ShiftVelocity(s.dyn.totalCoriolis[nd.parent]).
			Add(s.dyn.coriolis[i])
	}

	// articulated inertia, tip to base
	for i := len(t.nodes) - 1; i >= 1; i-- {
		nd := &t.nodes[i]
		p := s.pos.mk[i]
		for _, c := range nd.children {
			p = p.Add(s.pos.phi[c].Conjugate(s.dyn.tauBar[c].Mul(s.dyn.p[c])))
		}
		s.dyn.p[i] = p

		if nd.nu == 0 {
			s.dyn.tauBar[i] = spatial.IdentitySpatialMat()
			s.dyn.psi[i] = s.pos.phi[i].Mat()
			continue
		}

		h := s.pos.h[i]
		g := s.dyn.g[i]
		// g temporarily holds P*h_j
		for j := 0; j < nd.nu; j++ {
			g[j] = p.MulVec(h[j])
		}
		d := s.dyn.d[i]
		for j := 0; j < nd.nu; j++ {
			for l := 0; l < nd.nu; l++ {
				d[j*nd.nu+l] = h[j].Dot(g[l])
			}
		}
		invertSymmetric(d, s.dyn.di[i], nd.nu)
		di := s.dyn.di[i]
		var ph [6]spatial.SpatialVec
		copy(ph[:], g)
		for j := 0; j < nd.nu; j++ {
			var col spatial.SpatialVec
			for l := 0; l < nd.nu; l++ {
				col = col.Add(ph[l].Scale(di[l*nd.nu+j]))
			}
			g[j] = col
		}

		tb := spatial.IdentitySpatialMat()
		for j := 0; j < nd.nu; j++ {
			tb = tb.Sub(spatial.SpatialOuter(g[j], h[j]))
		}
		s.dyn.tauBar[i] = tb
		s.dyn.psi[i] = s.pos.phi[i].Mat().Mul(tb)
	}

	for i := 1; i < len(t.nodes); i++ {
		s.dyn.centrifugal[i] = s.dyn.p[i].MulVec(s.dyn.coriolis[i]).Add(s.dyn.gyro[i])
	}
	s.dyn.valid = true
}
