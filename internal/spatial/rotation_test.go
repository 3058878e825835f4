package spatial

import (
	"math"
	"testing"
)

const tol = 1e-12

func matClose(t *testing.T, got, want Mat33, tol float64, name string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got[i][j]-want[i][j]) > tol {
				t.Errorf("%s[%d][%d] = %v, want %v", name, i, j, got[i][j], want[i][j])
			}
		}
	}
}

func vecClose(t *testing.T, got, want Vec3, tol float64, name string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestRotationAboutAxes(t *testing.T) {
	r := RotationAboutZ(math.Pi / 2)
	vecClose(t, r.Apply(UnitX), UnitY, tol, "Rz(90)*x")
	r = RotationAboutX(math.Pi / 2)
	vecClose(t, r.Apply(UnitY), UnitZ, tol, "Rx(90)*y")
	r = RotationAboutY(math.Pi / 2)
	vecClose(t, r.Apply(UnitZ), UnitX, tol, "Ry(90)*z")
}

func TestRotationInverse(t *testing.T) {
	r := RotationFromBodyXYZ(Vec3{0.3, -1.1, 2.2})
	matClose(t, Mat33(r.Mul(r.Inv())), Identity33(), tol, "R*R^-1")
}

func TestBodyXYZRoundTrip(t *testing.T) {
	cases := []Vec3{
		{0, 0, 0},
		{0.1, 0.2, 0.3},
		{-1.2, 0.7, 2.9},
		{3.0, -1.4, -0.2},
	}
	for _, q := range cases {
		r := RotationFromBodyXYZ(q)
		back := RotationFromBodyXYZ(r.ToBodyXYZ())
		matClose(t, Mat33(back), Mat33(r), 1e-10, "bodyXYZ round trip")
	}
}

func TestBodyXYRoundTrip(t *testing.T) {
	r := RotationFromBodyXY(0.4, -0.9)
	a, b := r.ToBodyXY()
	if math.Abs(a-0.4) > 1e-12 || math.Abs(b+0.9) > 1e-12 {
		t.Errorf("ToBodyXY = (%v, %v), want (0.4, -0.9)", a, b)
	}
}

func TestZRotationAngle(t *testing.T) {
	for _, a := range []float64{-2.5, -0.3, 0, 0.7, 3.0} {
		got := RotationAboutZ(a).ZRotationAngle()
		if math.Abs(got-a) > tol {
			t.Errorf("ZRotationAngle(Rz(%v)) = %v", a, got)
		}
	}
}

func TestQuaternionRoundTrip(t *testing.T) {
	cases := []Vec3{
		{0, 0, 0},
		{0.1, 0.2, 0.3},
		{3.1, -0.2, 0.1},  // near-pi rotation exercises the non-trace branches
		{-1.5, 1.5, -1.5},
	}
	for _, e := range cases {
		r := RotationFromBodyXYZ(e)
		q := r.ToQuaternion()
		if math.Abs(q.Norm()-1) > 1e-12 {
			t.Fatalf("|q| = %v, want 1", q.Norm())
		}
		matClose(t, Mat33(q.ToRotation()), Mat33(r), 1e-10, "quat round trip")
	}
}

func TestQuaternionNormalized(t *testing.T) {
	q := Quaternion{2, 0, 0, 0}.Normalized()
	if q != IdentityQuaternion() {
		t.Errorf("Normalized(2,0,0,0) = %v", q)
	}
	if got := (Quaternion{}).Normalized(); got != IdentityQuaternion() {
		t.Errorf("Normalized(0) = %v, want identity", got)
	}
}

func TestTransformComposeInvert(t *testing.T) {
	x := Transform{R: RotationFromBodyXYZ(Vec3{0.2, 0.4, -0.6}), P: Vec3{1, -2, 3}}
	id := x.Compose(x.Invert())
	matClose(t, Mat33(id.R), Identity33(), tol, "X*X^-1 rotation")
	vecClose(t, id.P, Vec3{}, tol, "X*X^-1 translation")

	p := Vec3{0.5, 0.5, -1}
	vecClose(t, x.Invert().Apply(x.Apply(p)), p, tol, "inverse maps point back")
}
