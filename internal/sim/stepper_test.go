package sim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/multibody/internal/forces"
	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
	"github.com/san-kum/multibody/internal/tree"
)

func buildPendulum(t *testing.T) *tree.Tree {
	t.Helper()
	b := tree.NewBuilder()
	_, err := b.AddBody(tree.Body{
		Name: "rod", Parent: tree.Ground, Mass: 1,
		COM:           spatial.Vec3{1, 0, 0},
		Inertia:       spatial.Diag33(spatial.Vec3{0, 1, 1}),
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
	return tr
}

func buildFree(t *testing.T, inertia spatial.Vec3) *tree.Tree {
	t.Helper()
	b := tree.NewBuilder()
	_, err := b.AddBody(tree.Body{
		Name: "body", Parent: tree.Ground, Mass: 1,
		Inertia:       spatial.Diag33(inertia),
		FrameInParent: spatial.IdentityTransform(),
		FrameInBody:   spatial.IdentityTransform(),
		Joint:         mobilizer.NewFree(),
	})
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr
}

func TestValidateConfig(t *testing.T) {
	tr := buildPendulum(t)
	st := NewStepper(tr.NewState(false))
	ctx := context.Background()

	if _, err := st.Run(ctx, Config{Dt: 0, Duration: 1, Method: RK4}); err == nil {
		t.Error("zero dt accepted")
	}
	if _, err := st.Run(ctx, Config{Dt: 0.01, Duration: -1, Method: RK4}); err == nil {
		t.Error("negative duration accepted")
	}
	if _, err := st.Run(ctx, Config{Dt: 0.01, Duration: 1, Method: "leapfrog"}); err == nil {
		t.Error("unknown method accepted")
	}
}

func TestFreeFallMatchesClosedForm(t *testing.T) {
	tr := buildFree(t, spatial.Vec3{1, 1, 1})
	s := tr.NewState(false)
	st := NewStepper(s)
	g, err := forces.NewGravity(tr, spatial.Vec3{0, 0, -1}, 9.81)
	if err != nil {
		t.Fatalf("NewGravity: %v", err)
	}
	st.AddForceElement(g)

	res, err := st.Run(context.Background(), Config{Dt: 1e-3, Duration: 1, Method: RK4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.StepsTaken != 1000 {
		t.Fatalf("steps: %d", res.StepsTaken)
	}

	// z(t) = -g t^2 / 2; the trajectory is quadratic so RK4 is exact
	// up to roundoff
	z := s.Q()[6] // free joint: 4 quaternion slots then position
	if math.Abs(z-(-0.5*9.81)) > 1e-9 {
		t.Errorf("z(1) = %g, want %g", z, -0.5*9.81)
	}
	vz := s.U()[5]
	if math.Abs(vz-(-9.81)) > 1e-9 {
		t.Errorf("vz(1) = %g, want %g", vz, -9.81)
	}
}

func TestPendulumEnergyConservation(t *testing.T) {
	tr := buildPendulum(t)
	s := tr.NewState(false)
	s.SetQAt(0, 0.3)
	st := NewStepper(s)
	g, _ := forces.NewGravity(tr, spatial.Vec3{0, -1, 0}, 9.81)
	st.AddForceElement(g)

	res, err := st.Run(context.Background(), Config{Dt: 1e-3, Duration: 2, Method: RK4, RecordEvery: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.EnergyDrift > 1e-8 {
		t.Errorf("energy drift %g over 2s of rk4", res.EnergyDrift)
	}
}

func TestEulerDriftsMoreThanRK4(t *testing.T) {
	run := func(m Method) float64 {
		tr := buildPendulum(t)
		s := tr.NewState(false)
		s.SetQAt(0, 0.5)
		st := NewStepper(s)
		g, _ := forces.NewGravity(tr, spatial.Vec3{0, -1, 0}, 9.81)
		st.AddForceElement(g)
		res, err := st.Run(context.Background(), Config{Dt: 1e-3, Duration: 1, Method: m})
		if err != nil {
			t.Fatalf("Run(%s): %v", m, err)
		}
		return res.EnergyDrift
	}
	if e, r := run(Euler), run(RK4); e <= r {
		t.Errorf("euler drift %g not worse than rk4 drift %g", e, r)
	}
}

func TestTumblingQuaternionStaysUnit(t *testing.T) {
	tr := buildFree(t, spatial.Vec3{1, 2, 3})
	s := tr.NewState(false)
	s.SetUAt(0, 1)
	s.SetUAt(1, 1)
	st := NewStepper(s)

	res, err := st.Run(context.Background(), Config{Dt: 1e-3, Duration: 0.5, Method: RK4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	q := s.Q()[:4]
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if math.Abs(n-1) > 1e-12 {
		t.Errorf("quaternion norm %g after tumbling", n)
	}
	// torque free: kinetic energy is conserved
	if res.EnergyDrift > 1e-8 {
		t.Errorf("energy drift %g for torque-free tumble", res.EnergyDrift)
	}
}

type countObserver struct{ n int }

func (c *countObserver) OnStep(*tree.State, float64) { c.n++ }

func TestObserversAndCancellation(t *testing.T) {
	tr := buildPendulum(t)
	st := NewStepper(tr.NewState(false))
	obs := &countObserver{}
	st.AddObserver(obs)

	res, err := st.Run(context.Background(), Config{Dt: 0.01, Duration: 0.5, Method: Euler})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if obs.n != res.StepsTaken || obs.n != 50 {
		t.Errorf("observer calls %d, steps %d", obs.n, res.StepsTaken)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := st.Run(ctx, Config{Dt: 0.01, Duration: 1, Method: Euler}); err != context.Canceled {
		t.Errorf("cancelled run: got %v", err)
	}
}
