package tree

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

func mustAdd(t *testing.T, b *Builder, body Body) BodyID {
	t.Helper()
	id, err := b.AddBody(body)
	if err != nil {
		t.Fatalf("AddBody(%s): %v", body.Name, err)
	}
	return id
}

func simpleBody(name string, parent BodyID, m mobilizer.Mobilizer) Body {
	return Body{
		Name:          name,
		Parent:        parent,
		Mass:          1.0,
		Inertia:       spatial.Diag33(spatial.Vec3{1, 1, 1}),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         m,
	}
}

func TestBuilderRejectsBadBodies(t *testing.T) {
	b := NewBuilder()
	if _, err := b.AddBody(Body{Name: "nojoint", Parent: Ground}); !errors.Is(err, ErrNilJoint) {
		t.Errorf("nil joint: got %v", err)
	}
	// the first error sticks
	if _, err := b.Build(); !errors.Is(err, ErrNilJoint) {
		t.Errorf("Build after error: got %v", err)
	}

	b = NewBuilder()
	if _, err := b.AddBody(simpleBody("orphan", 7, mobilizer.NewTorsion())); !errors.Is(err, ErrBadParent) {
		t.Errorf("bad parent: got %v", err)
	}

	b = NewBuilder()
	bad := simpleBody("heavy", Ground, mobilizer.NewTorsion())
	bad.Mass = -1
	if _, err := b.AddBody(bad); err == nil {
		t.Error("negative mass accepted")
	}

	b = NewBuilder()
	bad = simpleBody("nan", Ground, mobilizer.NewTorsion())
	bad.Mass = math.NaN()
	if _, err := b.AddBody(bad); err == nil {
		t.Error("NaN mass accepted")
	}
}

func TestSlotAssignment(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("a", Ground, mobilizer.NewBall()))     // 4 q, 3 u
	c := mustAdd(t, b, simpleBody("c", a, mobilizer.NewUniversal()))    // 2 q, 2 u
	d := mustAdd(t, b, simpleBody("d", c, mobilizer.NewWeld()))         // 0, 0
	e := mustAdd(t, b, simpleBody("e", d, mobilizer.NewFree()))         // 7 q, 6 u
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if tr.NumQ() != 13 || tr.NumU() != 11 {
		t.Fatalf("NumQ=%d NumU=%d, want 13, 11", tr.NumQ(), tr.NumU())
	}
	if tr.NumQuaternions() != 2 {
		t.Errorf("NumQuaternions=%d, want 2 (ball, free)", tr.NumQuaternions())
	}
	if tr.QIndex(a) != 0 || tr.QIndex(c) != 4 || tr.QIndex(d) != 6 || tr.QIndex(e) != 6 {
		t.Errorf("q slots: %d %d %d %d", tr.QIndex(a), tr.QIndex(c), tr.QIndex(d), tr.QIndex(e))
	}
	if tr.UIndex(a) != 0 || tr.UIndex(c) != 3 || tr.UIndex(e) != 5 {
		t.Errorf("u slots: %d %d %d", tr.UIndex(a), tr.UIndex(c), tr.UIndex(e))
	}

	// arena order: every body's index exceeds its parent's
	for i := 1; i < tr.NumBodies(); i++ {
		if int(tr.Parent(BodyID(i))) >= i {
			t.Errorf("body %d has parent %d", i, tr.Parent(BodyID(i)))
		}
	}
}

func TestStageReadBeforeRealizePanics(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("a", Ground, mobilizer.NewTorsion()))
	tr, _ := b.Build()
	s := tr.NewState(false)

	mustPanic(t, "BodyTransform", func() { s.BodyTransform(a) })
	mustPanic(t, "BodyVelocity", func() { s.BodyVelocity(a) })
	mustPanic(t, "UDot", func() { _ = s.UDot() })

	s.RealizeVelocity()
	_ = s.BodyVelocity(a) // fine now

	s.SetUAt(0, 1) // knocks out velocity and above, not position
	_ = s.BodyTransform(a)
	mustPanic(t, "BodyVelocity after SetU", func() { s.BodyVelocity(a) })
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic before stage realized", name)
		}
	}()
	f()
}

func TestRealizeIdempotent(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("a", Ground, mobilizer.NewBall()))
	c := mustAdd(t, b, simpleBody("c", a, mobilizer.NewSlider()))
	tr, _ := b.Build()

	s := tr.NewState(false)
	s.SetQAt(tr.QIndex(a)+1, 0.3) // non-unit quaternion, exercises qerr too
	s.SetQAt(tr.QIndex(c), -0.2)
	s.SetUAt(0, 0.5)
	s.SetUAt(3, -1.1)

	s.RealizeDynamics()
	xGB := append([]spatial.Transform(nil), s.pos.xGB...)
	vGB := append([]spatial.SpatialVec(nil), s.vel.vGB...)
	p := append([]spatial.SpatialMat(nil), s.dyn.p...)
	qerr := append([]float64(nil), s.pos.qerr...)

	s.RealizeDynamics()
	for i := range xGB {
		if s.pos.xGB[i] != xGB[i] {
			t.Errorf("xGB[%d] changed on second realize", i)
		}
		if s.vel.vGB[i] != vGB[i] {
			t.Errorf("vGB[%d] changed on second realize", i)
		}
		if s.dyn.p[i] != p[i] {
			t.Errorf("p[%d] changed on second realize", i)
		}
	}
	for i := range qerr {
		if s.pos.qerr[i] != qerr[i] {
			t.Errorf("qerr[%d] changed on second realize", i)
		}
	}
}

func TestQuaternionErrorAndProjection(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("a", Ground, mobilizer.NewBall()))
	tr, _ := b.Build()

	s := tr.NewState(false)
	qi := tr.QIndex(a)
	s.SetQAt(qi, 2)
	s.SetQAt(qi+1, 2)
	s.RealizePosition()

	want := math.Sqrt(8) - 1
	if e := s.QErr()[0]; math.Abs(e-want) > 1e-12 {
		t.Errorf("qerr: got %g, want %g", e, want)
	}

	est := make([]float64, tr.NumQ())
	est[qi], est[qi+1], est[qi+2] = 0.1, 0.2, 0.3
	if !s.ProjectQuaternions(est) {
		t.Fatal("ProjectQuaternions reported no adjustment")
	}

	q := s.Q()[qi : qi+4]
	norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if math.Abs(norm-1) > 1e-12 {
		t.Errorf("quaternion not unit after projection: %g", norm)
	}
	// collinear with the input (2,2,0,0)
	if math.Abs(q[0]-q[1]) > 1e-12 || q[2] != 0 || q[3] != 0 {
		t.Errorf("projection changed direction: %v", q)
	}
	// error estimate orthogonal to the quaternion
	dot := 0.0
	for i := 0; i < 4; i++ {
		dot += est[qi+i] * q[i]
	}
	if math.Abs(dot) > 1e-12 {
		t.Errorf("error estimate not filtered: dot=%g", dot)
	}

	s.RealizePosition()
	if e := s.QErr()[0]; math.Abs(e) > 1e-12 {
		t.Errorf("qerr after projection: %g", e)
	}

	// Euler states have nothing to project
	se := tr.NewState(true)
	if se.ProjectQuaternions(nil) {
		t.Error("Euler state reported quaternion adjustment")
	}
}

func TestCalcQDotIdentityJoints(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("a", Ground, mobilizer.NewCylinder()))
	tr, _ := b.Build()

	s := tr.NewState(false)
	s.SetUAt(0, 1.5)
	s.SetUAt(1, -0.5)
	qdot := make([]float64, tr.NumQ())
	s.CalcQDot(qdot)
	if qdot[tr.QIndex(a)] != 1.5 || qdot[tr.QIndex(a)+1] != -0.5 {
		t.Errorf("cylinder qdot: %v", qdot)
	}
}

func TestCoordinateMapOperators(t *testing.T) {
	b := NewBuilder()
	a := mustAdd(t, b, simpleBody("spinner", Ground, mobilizer.NewBall()))
	c := mustAdd(t, b, simpleBody("rod", a, mobilizer.NewTorsion()))
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	s := tr.NewState(false)
	// unit quaternion off identity so N is nontrivial
	cs, sn := math.Cos(0.4), math.Sin(0.4)
	s.SetQAt(0, cs)
	s.SetQAt(1, sn/math.Sqrt2)
	s.SetQAt(2, sn/math.Sqrt2)
	for i, v := range []float64{0.3, -0.2, 0.5, 0.7} {
		s.SetUAt(i, v)
	}

	// N u == qdot
	qdot := make([]float64, tr.NumQ())
	nOut := make([]float64, tr.NumQ())
	s.CalcQDot(qdot)
	s.MultiplyByN(s.U(), nOut)
	for i := range qdot {
		if math.Abs(qdot[i]-nOut[i]) > 1e-12 {
			t.Fatalf("N u differs from qdot at %d: %g vs %g", i, nOut[i], qdot[i])
		}
	}

	// NInv (N u) recovers u on a unit quaternion
	back := make([]float64, tr.NumU())
	s.MultiplyByNInv(qdot, back)
	for i := range back {
		if math.Abs(back[i]-s.U()[i]) > 1e-12 {
			t.Errorf("NInv N u at %d: got %g, want %g", i, back[i], s.U()[i])
		}
	}

	// with udot = 0 the coordinate acceleration is NDot u
	qdd := make([]float64, tr.NumQ())
	nd := make([]float64, tr.NumQ())
	s.CalcQDotDot(make([]float64, tr.NumU()), qdd)
	s.MultiplyByNDot(s.U(), nd)
	for i := range qdd {
		if math.Abs(qdd[i]-nd[i]) > 1e-12 {
			t.Errorf("NDot u at %d: got %g, want %g", i, nd[i], qdd[i])
		}
	}
	if qdd[tr.QIndex(c)] != 0 {
		t.Errorf("pin qdotdot with zero udot: %g", qdd[tr.QIndex(c)])
	}
}

func TestKineticEnergyTranslating(t *testing.T) {
	b := NewBuilder()
	body := simpleBody("a", Ground, mobilizer.NewFree())
	body.Mass = 3
	a := mustAdd(t, b, body)
	tr, _ := b.Build()

	s := tr.NewState(false)
	s.SetUAt(tr.UIndex(a)+3, 2) // vx = 2, no rotation
	want := 0.5 * 3 * 4.0
	if ke := s.CalcKineticEnergy(); math.Abs(ke-want) > 1e-12 {
		t.Errorf("ke: got %g, want %g", ke, want)
	}
}
