package forces

import (
	"math"

	"github.com/san-kum/multibody/internal/spatial"
	"github.com/san-kum/multibody/internal/tree"
)

// Element is the add-in contract every force element implements.
// AddForces accumulates into the caller's arrays; bodyForces has one
// slot per body (Ground included), mobilityForces one per generalized
// speed, and either may be nil when the element does not touch it.
// Position stage (and velocity, for velocity-dependent elements) must
// be realized by the caller.
type Element interface {
	AddForces(s *tree.State, bodyForces []spatial.SpatialVec, mobilityForces []float64)
}

// Gravity is a uniform gravitational field applied to every
// non-immune body of a tree. Ground is always immune. Parameters are
// validated eagerly by the constructors and setters; evaluation never
// fails.
type Gravity struct {
	tree       *tree.Tree
	down       spatial.Vec3 // unit
	magnitude  float64
	zeroHeight float64
	immune     []bool
}

// NewGravity builds a gravity element with the given down direction
// (any nonzero length, normalized here) and nonnegative magnitude.
// Magnitude zero is a valid no-op field.
func NewGravity(t *tree.Tree, down spatial.Vec3, magnitude float64) (*Gravity, error) {
	g := &Gravity{tree: t, immune: make([]bool, t.NumBodies())}
	g.immune[tree.Ground] = true
	if err := g.SetDirection(down); err != nil {
		return nil, err
	}
	if err := g.SetMagnitude(magnitude); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGravityVector builds a gravity element from a single vector,
// splitting it into direction and magnitude. The vector must be
// nonzero; a zero-strength field has no direction to extract, so use
// NewGravity for that.
func NewGravityVector(t *tree.Tree, gvec spatial.Vec3) (*Gravity, error) {
	n := gvec.Norm()
	if n == 0 || !gvec.IsFinite() {
		return nil, ErrZeroGravityVector
	}
	return NewGravity(t, gvec.Scale(1/n), n)
}

// SetDirection replaces the down direction; the input must be finite
// and nonzero and is normalized here.
func (g *Gravity) SetDirection(down spatial.Vec3) error {
	if !down.IsFinite() || down.Norm() == 0 {
		return ErrZeroDirection
	}
	g.down = down.Normalized()
	return nil
}

// SetMagnitude replaces the field strength; must be nonnegative.
func (g *Gravity) SetMagnitude(m float64) error {
	if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return errBadMagnitude(m)
	}
	g.magnitude = m
	return nil
}

// SetZeroHeight moves the potential-energy reference height, measured
// along the up direction.
func (g *Gravity) SetZeroHeight(h float64) { g.zeroHeight = h }

// SetBodyIsImmune marks a body as unaffected by this field. Ground
// cannot be made susceptible.
func (g *Gravity) SetBodyIsImmune(b tree.BodyID, immune bool) error {
	if int(b) < 0 || int(b) >= len(g.immune) {
		return errBadBody(int(b), len(g.immune))
	}
	if b == tree.Ground && !immune {
		return ErrGroundImmunity
	}
	g.immune[b] = immune
	return nil
}

func (g *Gravity) BodyIsImmune(b tree.BodyID) bool { return g.immune[b] }

func (g *Gravity) Direction() spatial.Vec3 { return g.down }
func (g *Gravity) Magnitude() float64      { return g.magnitude }
func (g *Gravity) ZeroHeight() float64     { return g.zeroHeight }

// AddForces accumulates m*g at each non-immune body's mass center,
// shifted to the body origin as a spatial force. Position stage
// required. mobilityForces is untouched.
func (g *Gravity) AddForces(s *tree.State, bodyForces []spatial.SpatialVec, _ []float64) {
	if g.magnitude == 0 || bodyForces == nil {
		return
	}
	gvec := g.down.Scale(g.magnitude)
	for b := 1; b < g.tree.NumBodies(); b++ {
		if g.immune[b] {
			continue
		}
		m := g.tree.Mass(tree.BodyID(b))
		xGB := s.BodyTransform(tree.BodyID(b))
		pCBG := xGB.R.Apply(g.tree.COM(tree.BodyID(b))) // mass center from body origin, in ground
		f := gvec.Scale(m)
		bodyForces[b] = bodyForces[b].Add(spatial.SpatialVec{W: pCBG.Cross(f), V: f})
	}
}

// PotentialEnergy returns -sum m*(g . p_G_CB + g*h0) over the
// non-immune bodies; the sign is odd because height runs against the
// field direction. Position stage required.
func (g *Gravity) PotentialEnergy(s *tree.State) float64 {
	if g.magnitude == 0 {
		return 0
	}
	gvec := g.down.Scale(g.magnitude)
	offset := g.magnitude * g.zeroHeight
	pe := 0.0
	for b := 1; b < g.tree.NumBodies(); b++ {
		if g.immune[b] {
			continue
		}
		m := g.tree.Mass(tree.BodyID(b))
		xGB := s.BodyTransform(tree.BodyID(b))
		pGCB := xGB.Apply(g.tree.COM(tree.BodyID(b))) // mass center in ground
		pe -= m * (gvec.Dot(pGCB) + offset)
	}
	return pe
}
