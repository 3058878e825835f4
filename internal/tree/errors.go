package tree

import (
	"errors"
	"fmt"
)

var (
	ErrNilJoint    = errors.New("tree: body needs a joint")
	ErrBadParent   = errors.New("tree: parent must be an already-added body")
	ErrGroundFixed = errors.New("tree: ground cannot be re-added or given mass")
)

func errBadMass(name string, m float64) error {
	return fmt.Errorf("tree: body %q mass must be finite and nonnegative, got %g", name, m)
}
