package sim

import "github.com/san-kum/multibody/internal/tree"

type Method string

const (
	Euler Method = "euler"
	RK4   Method = "rk4"
)

// Observer is called after every completed step with the stepper's
// state, which must be treated as read-only for the duration of the
// call.
type Observer interface {
	OnStep(s *tree.State, t float64)
}

// PotentialEnergyer is implemented by force elements that contribute
// to the total energy report (e.g. gravity).
type PotentialEnergyer interface {
	PotentialEnergy(s *tree.State) float64
}

type Config struct {
	Dt       float64
	Duration float64
	Method   Method

	// RecordEvery samples every nth step into the Result arrays;
	// zero or one records every step.
	RecordEvery int
}

type Result struct {
	Times  []float64
	Q      [][]float64
	U      [][]float64
	Energy []float64

	EnergyDrift float64 // |E_final - E_initial| / |E_initial|
	StepsTaken  int
}
