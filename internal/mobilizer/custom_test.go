package mobilizer

import (
	"testing"

	"github.com/san-kum/multibody/internal/spatial"
)

// pinX is a minimal custom implementation: one rotational dof about
// F's x axis.
type pinX struct{}

func (pinX) NumU() int      { return 1 }
func (pinX) NumAngles() int { return 1 }

func (pinX) Transform(_ bool, q []float64) spatial.Transform {
	return spatial.Transform{R: spatial.RotationAboutX(q[0])}
}

func (pinX) MultiplyByH(_ bool, _ []float64, u []float64) spatial.SpatialVec {
	return spatial.SpatialVec{W: spatial.Vec3{u[0], 0, 0}}
}

func (pinX) MultiplyByHDot(_ bool, _, _ []float64, _ []float64) spatial.SpatialVec {
	return spatial.SpatialVec{}
}

func (pinX) SetQToFitTransform(_ bool, x spatial.Transform, q []float64) {
	e := x.R.ToBodyXYZ()
	q[0] = e[0]
}

func (pinX) SetUToFitVelocity(_ bool, _ []float64, v spatial.SpatialVec, u []float64) {
	u[0] = v.W[0]
}

type badDOF struct{ pinX }

func (badDOF) NumU() int { return 7 }

func TestCustomValidatesDimensions(t *testing.T) {
	if _, err := NewCustom(badDOF{}); err != ErrBadDOF {
		t.Errorf("NewCustom(badDOF) err = %v, want ErrBadDOF", err)
	}
	if _, err := NewCustom(pinX{}); err != nil {
		t.Fatalf("NewCustom(pinX): %v", err)
	}
}

func TestCustomDelegates(t *testing.T) {
	m, err := NewCustom(pinX{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != Custom || m.NumU() != 1 || m.MaxNQ() != 1 {
		t.Fatalf("unexpected dimensions: nu=%d nq=%d", m.NumU(), m.MaxNQ())
	}
	q, u := []float64{0.6}, []float64{1.5}
	k := newK(m, true, q, u)

	want := spatial.RotationAboutX(0.6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			approx(t, k.XFM.R[i][j], want[i][j], 1e-15, "custom transform")
		}
	}

	h := make([]spatial.SpatialVec, 1)
	m.Jacobian(k, h)
	vecApprox(t, h[0].W, spatial.UnitX, 1e-15, "custom H column")

	qdot := make([]float64, 1)
	m.QDot(k, qdot)
	approx(t, qdot[0], 1.5, 1e-15, "custom qdot")

	q2 := []float64{0}
	k2 := &Kinematics{UseEuler: true, Q: q2, U: []float64{0}}
	SetQToFitTransform(m, k2, spatial.Transform{R: spatial.RotationAboutX(-0.9)})
	approx(t, q2[0], -0.9, 1e-12, "custom transform fit")
}
