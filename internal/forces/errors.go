package forces

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroDirection is returned when a gravity direction is zero
	// or non-finite; a usable "down" cannot be extracted from it.
	ErrZeroDirection = errors.New("forces: gravity direction must be a finite nonzero vector")

	// ErrZeroGravityVector is returned by NewGravityVector given a
	// zero vector; use NewGravity to start with zero magnitude.
	ErrZeroGravityVector = errors.New("forces: gravity vector must be nonzero to determine the down direction; use NewGravity for a zero-strength field")

	// ErrGroundImmunity is returned on an attempt to make Ground
	// susceptible to gravity.
	ErrGroundImmunity = errors.New("forces: ground is always immune to gravity")
)

func errBadMagnitude(g float64) error {
	return fmt.Errorf("forces: gravity magnitude must be nonnegative, got %g", g)
}

func errBadBody(b, n int) error {
	return fmt.Errorf("forces: body index %d out of range, tree has %d bodies", b, n)
}

func errBadMobility(k, nu int) error {
	return fmt.Errorf("forces: mobility index %d out of range, joint has %d dofs", k, nu)
}
