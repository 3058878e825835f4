package tree

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

// pointMassPendulum is Ground--[pin z]--rod with a point mass at
// distance L along the rod's x axis.
func pointMassPendulum(t *testing.T, m, l float64) (*Tree, BodyID) {
	t.Helper()
	b := NewBuilder()
	id, err := b.AddBody(Body{
		Name:          "rod",
		Parent:        Ground,
		Mass:          m,
		COM:           spatial.Vec3{l, 0, 0},
		Inertia:       spatial.Diag33(spatial.Vec3{0, m * l * l, m * l * l}),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewTorsion(),
	})
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr, id
}

func gravityForcesY(tr *Tree, s *State, g float64) []spatial.SpatialVec {
	// uniform field along -y, applied at each body's mass center
	bf := make([]spatial.SpatialVec, tr.NumBodies())
	s.RealizePosition()
	for i := 1; i < tr.NumBodies(); i++ {
		b := BodyID(i)
		f := spatial.Vec3{0, -tr.Mass(b) * g, 0}
		r := s.BodyTransform(b).R.Apply(tr.COM(b))
		bf[i] = spatial.SpatialVec{W: r.Cross(f), V: f}
	}
	return bf
}

func TestPendulumMatchesAnalytic(t *testing.T) {
	g := NewWithT(t)
	const grav = 9.81
	tr, _ := pointMassPendulum(t, 1.3, 0.8)

	// thetadotdot = -(grav/L) cos(theta) for theta measured from the
	// horizontal +x axis with gravity along -y
	for _, theta := range []float64{0, 0.3, -1.1, math.Pi / 2} {
		s := tr.NewState(false)
		s.SetQAt(0, theta)
		bf := gravityForcesY(tr, s, grav)
		s.CalcForwardDynamics(bf, nil)
		want := -(grav / 0.8) * math.Cos(theta)
		g.Expect(s.UDot()[0]).To(BeNumerically("~", want, 1e-10),
			"theta=%g", theta)
	}
}

func TestPinThenSliderScenario(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	a, _ := b.AddBody(Body{
		Name: "a", Parent: Ground, Mass: 1,
		Inertia:       spatial.Diag33(spatial.Vec3{1, 1, 1}),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewTorsion(),
	})
	_, _ = b.AddBody(Body{
		Name: "b", Parent: a, Mass: 1,
		Inertia:       spatial.Diag33(spatial.Vec3{1, 1, 1}),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewSlider(),
	})
	tr, err := b.Build()
	g.Expect(err).NotTo(HaveOccurred())

	s := tr.NewState(false)
	mf := make([]float64, tr.NumU())
	mf[0] = 1 // unit torque about the pin axis
	s.CalcForwardDynamics(nil, mf)

	g.Expect(s.UDot()[0]).To(BeNumerically(">", 0))
	g.Expect(s.UDot()[0]).To(BeNumerically("~", 0.5, 1e-12))
	g.Expect(s.UDot()[1]).To(BeNumerically("~", 0, 1e-14),
		"torque about z must not couple into the slider dof")
}

func TestWeldOnlyTreeIsInert(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	p1, _ := b.AddBody(simpleBody("p1", Ground, mobilizer.NewWeld()))
	p2, _ := b.AddBody(simpleBody("p2", p1, mobilizer.NewWeld()))
	tr, err := b.Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tr.NumU()).To(Equal(0))

	s := tr.NewState(false)
	bf := make([]spatial.SpatialVec, tr.NumBodies())
	bf[p2] = spatial.SpatialVec{W: spatial.Vec3{1, 0, 0}, V: spatial.Vec3{0, 0, -9.81}}
	s.CalcForwardDynamics(bf, nil)

	g.Expect(s.UDot()).To(BeEmpty())
	g.Expect(s.BodyAcceleration(p1)).To(Equal(spatial.SpatialVec{}))
	g.Expect(s.BodyAcceleration(p2)).To(Equal(spatial.SpatialVec{}))
}

func TestFreeBodyGravityIndependentOfOrientation(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	id, _ := b.AddBody(Body{
		Name: "brick", Parent: Ground, Mass: 2,
		COM:           spatial.Vec3{0.2, 0, 0},
		Inertia:       spatial.Diag33(spatial.Vec3{1, 1.08, 1.08}), // central diag(1,1,1) shifted
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewFree(),
	})
	tr, err := b.Build()
	g.Expect(err).NotTo(HaveOccurred())

	gvec := spatial.Vec3{0, 0, -9.81}
	for _, r := range []spatial.Rotation{
		spatial.IdentityRotation(),
		spatial.RotationAboutX(0.7),
		spatial.RotationAboutY(-1.2).Mul(spatial.RotationAboutZ(0.4)),
	} {
		s := tr.NewState(false)
		s.SetJointTransform(id, spatial.Transform{R: r})
		s.RealizePosition()

		bf := make([]spatial.SpatialVec, tr.NumBodies())
		f := gvec.Scale(tr.Mass(id))
		c := s.BodyTransform(id).R.Apply(tr.COM(id))
		bf[id] = spatial.SpatialVec{W: c.Cross(f), V: f}

		s.CalcForwardDynamics(bf, nil)
		a := s.BodyAcceleration(id)
		g.Expect(a.W.Norm()).To(BeNumerically("~", 0, 1e-10))
		g.Expect(a.V.Sub(gvec).Norm()).To(BeNumerically("~", 0, 1e-9))
	}
}

func TestTorqueFreeEulerEquations(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	id, _ := b.AddBody(Body{
		Name: "top", Parent: Ground, Mass: 1,
		Inertia:       spatial.Diag33(spatial.Vec3{1, 2, 3}),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewBall(),
	})
	tr, _ := b.Build()

	s := tr.NewState(false)
	s.SetUAt(tr.UIndex(id), 1)
	s.SetUAt(tr.UIndex(id)+1, 1)
	s.CalcForwardDynamics(nil, nil)

	// I wdot = -w x (I w); at identity orientation the body frame is
	// the ground frame, so udot is wdot directly
	w := spatial.Vec3{1, 1, 0}
	iw := spatial.Vec3{1, 2, 0}
	want := w.Cross(iw).Neg()
	want = spatial.Vec3{want[0] / 1, want[1] / 2, want[2] / 3}
	for j := 0; j < 3; j++ {
		g.Expect(s.UDot()[j]).To(BeNumerically("~", want[j], 1e-12))
	}
}

func mixedChain(t *testing.T) *Tree {
	t.Helper()
	b := NewBuilder()
	a, _ := b.AddBody(Body{
		Name: "a", Parent: Ground, Mass: 1.5,
		COM:           spatial.Vec3{0.1, 0, 0},
		Inertia:       spatial.Diag33(spatial.Vec3{2, 3, 4}),
		FrameInParent: spatial.Transform{R: spatial.RotationAboutX(0.2), P: spatial.Vec3{0, 0, 0.5}},
		FrameInBody:   spatial.Transform{R: spatial.IdentityRotation(), P: spatial.Vec3{0, -0.3, 0}},
		Joint:         mobilizer.NewBall(),
	})
	c, _ := b.AddBody(Body{
		Name: "c", Parent: a, Mass: 0.7,
		COM:           spatial.Vec3{0, 0.05, 0.1},
		Inertia:       spatial.Diag33(spatial.Vec3{1, 1.2, 0.9}),
		FrameInParent: spatial.Transform{R: spatial.RotationAboutZ(-0.4), P: spatial.Vec3{1, 0, 0}},
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewUniversal(),
	})
	d, _ := b.AddBody(simpleBody("d", c, mobilizer.NewScrew(0.3)))
	e, _ := b.AddBody(simpleBody("e", d, mobilizer.NewBendStretch()))
	_, _ = b.AddBody(simpleBody("f", e, mobilizer.NewTranslate()))
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr
}

func TestMassMatrixRoundTrip(t *testing.T) {
	g := NewWithT(t)
	tr := mixedChain(t)

	s := tr.NewState(true)
	q := s.Q()
	for i := range q {
		s.SetQAt(i, 0.1*float64(i+1)-0.35)
	}

	f := make([]float64, tr.NumU())
	for i := range f {
		f[i] = float64(i) - 3.5
	}
	udot := make([]float64, tr.NumU())
	s.CalcMInverseF(f, udot)

	back := make([]float64, tr.NumU())
	s.MultiplyByM(udot, back)
	for i := range f {
		g.Expect(back[i]).To(BeNumerically("~", f[i], 1e-9), "dof %d", i)
	}
}

func TestForwardDynamicsReducesToMInverseFAtRest(t *testing.T) {
	g := NewWithT(t)
	tr := mixedChain(t)

	s := tr.NewState(true)
	s.SetQAt(2, 0.6)
	s.SetQAt(5, -0.2)

	f := make([]float64, tr.NumU())
	for i := range f {
		f[i] = math.Sin(float64(i) + 1)
	}
	want := make([]float64, tr.NumU())
	s.CalcMInverseF(f, want)

	s.CalcForwardDynamics(nil, f)
	for i := range want {
		g.Expect(s.UDot()[i]).To(BeNumerically("~", want[i], 1e-10), "dof %d", i)
	}
}

func TestEquivalentJointForces(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	a, _ := b.AddBody(simpleBody("a", Ground, mobilizer.NewTorsion()))
	c, _ := b.AddBody(simpleBody("c", a, mobilizer.NewSlider()))
	tr, _ := b.Build()

	s := tr.NewState(false)
	s.SetQAt(tr.QIndex(c), 2) // slide c out to (2,0,0)

	bf := make([]spatial.SpatialVec, tr.NumBodies())
	bf[c] = spatial.SpatialVec{V: spatial.Vec3{0, 1, 0}} // unit y force at c's origin
	jf := make([]float64, tr.NumU())
	s.CalcEquivalentJointForces(bf, jf)

	// moment arm 2 about the pin, nothing along the slider axis
	g.Expect(jf[0]).To(BeNumerically("~", 2, 1e-12))
	g.Expect(jf[1]).To(BeNumerically("~", 0, 1e-14))
}

// The ground row of the first forward-dynamics force pass negates the
// applied ground force where every other row subtracts it from the
// bias. The convention is historical; this pins it.
func TestGroundForcePassSignConvention(t *testing.T) {
	g := NewWithT(t)
	b := NewBuilder()
	p, _ := b.AddBody(simpleBody("plate", Ground, mobilizer.NewWeld()))
	tr, _ := b.Build()

	s := tr.NewState(false)
	bf := make([]spatial.SpatialVec, tr.NumBodies())
	bf[Ground] = spatial.SpatialVec{W: spatial.Vec3{1, 2, 3}, V: spatial.Vec3{4, 5, 6}}
	bf[p] = spatial.SpatialVec{V: spatial.Vec3{0, 0, -7}}
	s.CalcForwardDynamics(bf, nil)

	want := bf[Ground].Neg().Add(bf[p].Neg())
	g.Expect(s.scratchZ[Ground]).To(Equal(want))
}

// skewedPinChain is two pin joints whose axes are deliberately not
// parallel, with frame offsets, so the second body's parent rotates.
func skewedPinChain(t *testing.T) (*Tree, BodyID, BodyID) {
	t.Helper()
	b := NewBuilder()
	a, err := b.AddBody(Body{
		Name: "a", Parent: Ground, Mass: 1.2,
		COM:           spatial.Vec3{0.3, 0.1, 0},
		Inertia:       spatial.Diag33(spatial.Vec3{0.5, 0.8, 0.9}),
		FrameInParent: spatial.Transform{R: spatial.RotationAboutX(0.3), P: spatial.Vec3{0, 0, 0.2}},
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewTorsion(),
	})
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	c, err := b.AddBody(Body{
		Name: "c", Parent: a, Mass: 0.9,
		COM:           spatial.Vec3{0.2, 0, 0.1},
		Inertia:       spatial.Diag33(spatial.Vec3{0.4, 0.6, 0.7}),
		FrameInParent: spatial.Transform{R: spatial.RotationAboutY(0.8), P: spatial.Vec3{0.7, 0, 0}},
		FrameInBody:   spatial.Transform{R: spatial.IdentityRotation(), P: spatial.Vec3{0, 0.1, 0}},
		Joint:         mobilizer.NewTorsion(),
	})
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr, a, c
}

func shifted(base, rate []float64, h float64) []float64 {
	out := make([]float64, len(base))
	for i := range base {
		out[i] = base[i] + h*rate[i]
	}
	return out
}

func chainVelocityAt(tr *Tree, b BodyID, q, u []float64) spatial.SpatialVec {
	s := tr.NewState(false)
	s.SetQ(q)
	s.SetU(u)
	s.RealizeVelocity()
	return s.BodyVelocity(b)
}

// With a rotating parent the Jacobian's ground-frame columns are
// themselves time varying; this checks A_GB against a central
// difference of V_GB along the engine's own (qdot, udot).
func TestAccelerationIsVelocityDerivative(t *testing.T) {
	g := NewWithT(t)
	tr, a, c := skewedPinChain(t)

	s := tr.NewState(false)
	s.SetUAt(0, 0.7)
	s.SetUAt(1, 1.1)
	s.CalcForwardDynamics(nil, nil)

	qdot := make([]float64, tr.NumQ())
	s.CalcQDot(qdot)
	udot := append([]float64(nil), s.UDot()...)

	const h = 1e-6
	for _, id := range []BodyID{a, c} {
		want := s.BodyAcceleration(id)
		vp := chainVelocityAt(tr, id, shifted(s.Q(), qdot, h/2), shifted(s.U(), udot, h/2))
		vm := chainVelocityAt(tr, id, shifted(s.Q(), qdot, -h/2), shifted(s.U(), udot, -h/2))
		fd := vp.Sub(vm).Scale(1 / h)
		g.Expect(fd.W.Sub(want.W).Norm()).To(BeNumerically("~", 0, 1e-6), "body %d angular", id)
		g.Expect(fd.V.Sub(want.V).Norm()).To(BeNumerically("~", 0, 1e-6), "body %d linear", id)
	}
}

// Freezing the speeds (udot == 0) leaves only the velocity-dependent
// remainder, which is what the accumulated total Coriolis term holds.
func TestTotalCoriolisIsFrozenSpeedAcceleration(t *testing.T) {
	g := NewWithT(t)
	tr, a, c := skewedPinChain(t)

	s := tr.NewState(false)
	s.SetUAt(0, 0.7)
	s.SetUAt(1, 1.1)
	s.RealizeDynamics()

	qdot := make([]float64, tr.NumQ())
	s.CalcQDot(qdot)

	const h = 1e-6
	for _, id := range []BodyID{a, c} {
		want := s.TotalCoriolis(id)
		vp := chainVelocityAt(tr, id, shifted(s.Q(), qdot, h/2), s.U())
		vm := chainVelocityAt(tr, id, shifted(s.Q(), qdot, -h/2), s.U())
		fd := vp.Sub(vm).Scale(1 / h)
		g.Expect(fd.W.Sub(want.W).Norm()).To(BeNumerically("~", 0, 1e-6), "body %d angular", id)
		g.Expect(fd.V.Sub(want.V).Norm()).To(BeNumerically("~", 0, 1e-6), "body %d linear", id)
	}
}

func TestKineticEnergyMatchesMassMatrix(t *testing.T) {
	g := NewWithT(t)
	tr := mixedChain(t)

	s := tr.NewState(true)
	s.SetQAt(1, 0.4)
	u := make([]float64, tr.NumU())
	for i := range u {
		u[i] = 0.2 * float64(i+1)
	}
	s.SetU(u)

	// 2*KE == u . M u
	mu := make([]float64, tr.NumU())
	s.MultiplyByM(u, mu)
	dot := 0.0
	for i := range u {
		dot += u[i] * mu[i]
	}
	g.Expect(2 * s.CalcKineticEnergy()).To(BeNumerically("~", dot, 1e-9))
}
