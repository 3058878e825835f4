package spatial

// Transform X_AB locates frame B in frame A: R is R_AB and P is the
// position of B's origin measured from A's origin, expressed in A.
type Transform struct {
	R Rotation
	P Vec3
}

func IdentityTransform() Transform {
	return Transform{R: IdentityRotation()}
}

// Compose returns X_AC = X_AB * X_BC.
func (x Transform) Compose(y Transform) Transform {
	return Transform{
		R: x.R.Mul(y.R),
		P: x.P.Add(x.R.Apply(y.P)),
	}
}

// Invert returns X_BA.
func (x Transform) Invert() Transform {
	ri := x.R.Inv()
	return Transform{R: ri, P: ri.Apply(x.P).Neg()}
}

// Apply maps a point expressed in B to A.
func (x Transform) Apply(p Vec3) Vec3 {
	return x.P.Add(x.R.Apply(p))
}
