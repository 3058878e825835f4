package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/multibody/internal/forces"
	"github.com/san-kum/multibody/internal/spatial"
	"github.com/san-kum/multibody/internal/tree"
)

// Stepper advances one State of one Tree through time: coordinate
// rates from CalcQDot, accelerations from the articulated-body
// forward dynamics, quaternion renormalization after every full step.
type Stepper struct {
	state     *tree.State
	elements  []forces.Element
	observers []Observer

	bodyForces []spatial.SpatialVec
	mobForces  []float64

	// RK stage scratch, sized once
	q0, u0, qs, us     []float64
	kq1, kq2, kq3, kq4 []float64
	ku1, ku2, ku3, ku4 []float64
}

func NewStepper(s *tree.State) *Stepper {
	t := s.Tree()
	st := &Stepper{
		state:      s,
		bodyForces: make([]spatial.SpatialVec, t.NumBodies()),
		mobForces:  make([]float64, t.NumU()),
		q0:         make([]float64, t.NumQ()),
		u0:         make([]float64, t.NumU()),
		qs:         make([]float64, t.NumQ()),
		us:         make([]float64, t.NumU()),
	}
	for _, k := range []*[]float64{&st.kq1, &st.kq2, &st.kq3, &st.kq4} {
		*k = make([]float64, t.NumQ())
	}
	for _, k := range []*[]float64{&st.ku1, &st.ku2, &st.ku3, &st.ku4} {
		*k = make([]float64, t.NumU())
	}
	return st
}

func (st *Stepper) State() *tree.State { return st.state }

func (st *Stepper) AddForceElement(e forces.Element) { st.elements = append(st.elements, e) }
func (st *Stepper) AddObserver(o Observer)           { st.observers = append(st.observers, o) }

// derivs evaluates (qdot, udot) at the state's current (q, u).
func (st *Stepper) derivs(qdot, udot []float64) {
	s := st.state
	s.RealizeVelocity()

	for i := range st.bodyForces {
		st.bodyForces[i] = spatial.SpatialVec{}
	}
	for i := range st.mobForces {
		st.mobForces[i] = 0
	}
	for _, e := range st.elements {
		e.AddForces(s, st.bodyForces, st.mobForces)
	}

	s.CalcQDot(qdot)
	s.CalcForwardDynamics(st.bodyForces, st.mobForces)
	copy(udot, s.UDot())
}

// Step advances the state by one dt with the given method and
// projects quaternion coordinates back to unit norm.
func (st *Stepper) Step(dt float64, method Method) error {
	switch method {
	case Euler:
		st.stepEuler(dt)
	case RK4:
		st.stepRK4(dt)
	default:
		return fmt.Errorf("sim: unknown method %q", method)
	}
	st.state.ProjectQuaternions(nil)
	return nil
}

func (st *Stepper) stepEuler(dt float64) {
	s := st.state
	copy(st.q0, s.Q())
	copy(st.u0, s.U())
	st.derivs(st.kq1, st.ku1)
	axpy(st.q0, dt, st.kq1)
	axpy(st.u0, dt, st.ku1)
	s.SetQ(st.q0)
	s.SetU(st.u0)
}

func (st *Stepper) stepRK4(dt float64) {
	s := st.state
	copy(st.q0, s.Q())
	copy(st.u0, s.U())

	st.derivs(st.kq1, st.ku1)
	st.setStage(dt/2, st.kq1, st.ku1)
	st.derivs(st.kq2, st.ku2)
	st.setStage(dt/2, st.kq2, st.ku2)
	st.derivs(st.kq3, st.ku3)
	st.setStage(dt, st.kq3, st.ku3)
	st.derivs(st.kq4, st.ku4)

	d6 := dt / 6
	for i := range st.q0 {
		st.q0[i] += d6 * (st.kq1[i] + 2*st.kq2[i] + 2*st.kq3[i] + st.kq4[i])
	}
	for i := range st.u0 {
		st.u0[i] += d6 * (st.ku1[i] + 2*st.ku2[i] + 2*st.ku3[i] + st.ku4[i])
	}
	s.SetQ(st.q0)
	s.SetU(st.u0)
}

// setStage moves the state to (q0 + h*kq, u0 + h*ku) for the next
// stage derivative evaluation.
func (st *Stepper) setStage(h float64, kq, ku []float64) {
	copy(st.qs, st.q0)
	copy(st.us, st.u0)
	axpy(st.qs, h, kq)
	axpy(st.us, h, ku)
	st.state.SetQ(st.qs)
	st.state.SetU(st.us)
}

func axpy(y []float64, a float64, x []float64) {
	for i := range y {
		y[i] += a * x[i]
	}
}

// Energy reports kinetic plus the potential energy of every element
// that accounts for one.
func (st *Stepper) Energy() float64 {
	e := st.state.CalcKineticEnergy()
	for _, el := range st.elements {
		if pe, ok := el.(PotentialEnergyer); ok {
			e += pe.PotentialEnergy(st.state)
		}
	}
	return e
}

// Run steps from t=0 to cfg.Duration, recording sampled trajectories
// and the relative energy drift. The context is checked every step;
// cancellation returns the partial result alongside ctx.Err().
func (st *Stepper) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}
	steps := int(math.Round(cfg.Duration / cfg.Dt))

	res := &Result{
		Times:  make([]float64, 0, steps/every+2),
		Q:      make([][]float64, 0, steps/every+2),
		U:      make([][]float64, 0, steps/every+2),
		Energy: make([]float64, 0, steps/every+2),
	}
	record := func(t float64) {
		res.Times = append(res.Times, t)
		res.Q = append(res.Q, append([]float64(nil), st.state.Q()...))
		res.U = append(res.U, append([]float64(nil), st.state.U()...))
		res.Energy = append(res.Energy, st.Energy())
	}

	record(0)
	e0 := res.Energy[0]

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if err := st.Step(cfg.Dt, cfg.Method); err != nil {
			return res, err
		}
		t += cfg.Dt
		res.StepsTaken++

		for _, o := range st.observers {
			o.OnStep(st.state, t)
		}
		if (i+1)%every == 0 || i == steps-1 {
			record(t)
		}
	}

	ef := res.Energy[len(res.Energy)-1]
	if e0 != 0 {
		res.EnergyDrift = math.Abs(ef-e0) / math.Abs(e0)
	}
	return res, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", cfg.Duration)
	}
	if cfg.Method != Euler && cfg.Method != RK4 {
		return fmt.Errorf("sim: unknown method %q", cfg.Method)
	}
	return nil
}
