package spatial

// SpatialVec is a 6-component quantity: angular part W first, linear
// part V second. The same layout serves velocities, accelerations and
// forces (torque in W, force in V).
type SpatialVec struct {
	W, V Vec3
}

func (s SpatialVec) Add(t SpatialVec) SpatialVec {
	return SpatialVec{s.W.Add(t.W), s.V.Add(t.V)}
}

func (s SpatialVec) Sub(t SpatialVec) SpatialVec {
	return SpatialVec{s.W.Sub(t.W), s.V.Sub(t.V)}
}

func (s SpatialVec) Neg() SpatialVec { return SpatialVec{s.W.Neg(), s.V.Neg()} }

func (s SpatialVec) Scale(f float64) SpatialVec {
	return SpatialVec{s.W.Scale(f), s.V.Scale(f)}
}

func (s SpatialVec) Dot(t SpatialVec) float64 {
	return s.W.Dot(t.W) + s.V.Dot(t.V)
}

func (s SpatialVec) IsFinite() bool { return s.W.IsFinite() && s.V.IsFinite() }

// SpatialMat is a 6x6 operator in 3x3 blocks:
//
//	[ AA  AB ]
//	[ BA  BB ]
type SpatialMat struct {
	AA, AB, BA, BB Mat33
}

func IdentitySpatialMat() SpatialMat {
	return SpatialMat{AA: Identity33(), BB: Identity33()}
}

func (m SpatialMat) Add(n SpatialMat) SpatialMat {
	return SpatialMat{m.AA.Add(n.AA), m.AB.Add(n.AB), m.BA.Add(n.BA), m.BB.Add(n.BB)}
}

func (m SpatialMat) Sub(n SpatialMat) SpatialMat {
	return SpatialMat{m.AA.Sub(n.AA), m.AB.Sub(n.AB), m.BA.Sub(n.BA), m.BB.Sub(n.BB)}
}

func (m SpatialMat) Mul(n SpatialMat) SpatialMat {
	return SpatialMat{
		AA: m.AA.Mul(n.AA).Add(m.AB.Mul(n.BA)),
		AB: m.AA.Mul(n.AB).Add(m.AB.Mul(n.BB)),
		BA: m.BA.Mul(n.AA).Add(m.BB.Mul(n.BA)),
		BB: m.BA.Mul(n.AB).Add(m.BB.Mul(n.BB)),
	}
}

func (m SpatialMat) MulVec(s SpatialVec) SpatialVec {
	return SpatialVec{
		W: m.AA.MulVec(s.W).Add(m.AB.MulVec(s.V)),
		V: m.BA.MulVec(s.W).Add(m.BB.MulVec(s.V)),
	}
}

// SpatialOuter returns a*b^T as a 6x6 operator.
func SpatialOuter(a, b SpatialVec) SpatialMat {
	return SpatialMat{
		AA: Outer(a.W, b.W), AB: Outer(a.W, b.V),
		BA: Outer(a.V, b.W), BB: Outer(a.V, b.V),
	}
}

// SpatialInertia builds the 6x6 spatial inertia of a body about its
// origin: mass m, center-of-mass offset c from the origin, and inertia
// tensor about the origin, all expressed in the same frame.
func SpatialInertia(m float64, c Vec3, inertia Mat33) SpatialMat {
	mcx := CrossMat(c).Scale(m)
	return SpatialMat{
		AA: inertia,
		AB: mcx,
		BA: mcx.Transpose(),
		BB: Identity33().Scale(m),
	}
}

// Phi is the rigid-body shift operator for an offset p between two
// points fixed on the same body (here: from a parent attachment point
// to the child body origin, expressed in ground).
//
// As a 6x6, Phi(p) = [[1, px],[0, 1]] with px the cross matrix of p.
type Phi struct {
	P Vec3
}

// ShiftForce applies Phi to a spatial force acting at the outboard
// point, producing the equivalent force at the inboard point.
func (phi Phi) ShiftForce(f SpatialVec) SpatialVec {
	return SpatialVec{W: f.W.Add(phi.P.Cross(f.V)), V: f.V}
}

// ShiftVelocity applies Phi^T to an inboard spatial velocity (or
// acceleration), producing the outboard-point value.
func (phi Phi) ShiftVelocity(v SpatialVec) SpatialVec {
	return SpatialVec{W: v.W, V: v.V.Add(v.W.Cross(phi.P))}
}

// Conjugate returns Phi * m * Phi^T, used to fold an outboard 6x6
// operator into its inboard point.
func (phi Phi) Conjugate(m SpatialMat) SpatialMat {
	px := CrossMat(phi.P)
	// top row of Phi*m
	taa := m.AA.Add(px.Mul(m.BA))
	tab := m.AB.Add(px.Mul(m.BB))
	return SpatialMat{
		AA: taa.Sub(tab.Mul(px)),
		AB: tab,
		BA: m.BA.Sub(m.BB.Mul(px)),
		BB: m.BB,
	}
}

// Mat returns Phi as an explicit 6x6.
func (phi Phi) Mat() SpatialMat {
	return SpatialMat{
		AA: Identity33(),
		AB: CrossMat(phi.P),
		BB: Identity33(),
	}
}
