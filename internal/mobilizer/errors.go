package mobilizer

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDOF is returned when a custom implementation reports a
	// degree-of-freedom count outside 1..6.
	ErrBadDOF = errors.New("mobilizer: custom joint dof must be in 1..6")

	// ErrBadAngleCount is returned when a custom implementation
	// reports an angle-slot count other than 0..3 or 4 (quaternion).
	ErrBadAngleCount = errors.New("mobilizer: custom joint angle count must be 0..3, or 4 for quaternion")

	// ErrTorqueDecomposition is returned by JointTorqueDecomposition;
	// splitting a cross-joint torque into per-axis contributions is
	// not implemented for any 3-dof rotational joint.
	ErrTorqueDecomposition = errors.New("mobilizer: per-axis torque decomposition is not implemented")
)

func errSemiAxis(i int, v float64) error {
	return fmt.Errorf("mobilizer: ellipsoid semi-axis %d must be positive, got %g", i, v)
}

// JointTorqueDecomposition would split a cross-joint torque into
// per-axis generalized contributions for 3-dof rotational joints.
// Nothing in the engine calls it; callers that need it must not until
// it exists.
func JointTorqueDecomposition(Mobilizer, *Kinematics, [3]float64) ([]float64, error) {
	return nil, ErrTorqueDecomposition
}
