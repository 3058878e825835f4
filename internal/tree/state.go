package tree

import (
	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

type posCache struct {
	valid    bool
	xFM      []spatial.Transform
	xPB      []spatial.Transform
	xGB      []spatial.Transform
	phi      []spatial.Phi
	inertiaG []spatial.Mat33
	comG     []spatial.Vec3
	mk       []spatial.SpatialMat
	hFM      [][]spatial.SpatialVec // across-joint Jacobian, F frame
	h        [][]spatial.SpatialVec // parent-to-child Jacobian, ground
	qerr     []float64              // one norm error per quaternion joint
}

type velCache struct {
	valid bool
	vFM   []spatial.SpatialVec
	vPB   []spatial.SpatialVec // H*u, ground frame
	vGB   []spatial.SpatialVec
	hDot  [][]spatial.SpatialVec
}

type dynCache struct {
	valid         bool
	p             []spatial.SpatialMat   // articulated-body inertia
	d             [][]float64            // hinge matrix H^T P H, row major
	di            [][]float64            // its inverse
	g             [][]spatial.SpatialVec // P H D^-1, one column per dof
	tauBar        []spatial.SpatialMat
	psi           []spatial.SpatialMat
	gyro          []spatial.SpatialVec
	coriolis      []spatial.SpatialVec
	totalCoriolis []spatial.SpatialVec
	centrifugal   []spatial.SpatialVec
}

type accCache struct {
	valid   bool
	aGB     []spatial.SpatialVec
	udot    []float64
	qdotdot []float64
}

// State is one independent evaluation context for a Tree: the
// generalized coordinates and speeds plus every per-stage cache. A
// State must not be shared across goroutines; distinct States over
// the same Tree need no coordination.
type State struct {
	tree     *Tree
	useEuler bool
	q, u     []float64

	pos posCache
	vel velCache
	dyn dynCache
	acc accCache

	// recursion scratch, sized once
	scratchZ    []spatial.SpatialVec
	scratchGeps []spatial.SpatialVec
	scratchEps  []float64
	scratchA    []spatial.SpatialVec
	scratchF    []spatial.SpatialVec
}

// NewState allocates a state with every joint at its identity
// configuration and zero speeds. useEuler selects Euler angles over
// quaternions for the rotational coordinates of 3-dof joints.
func (t *Tree) NewState(useEuler bool) *State {
	n := len(t.nodes)
	s := &State{
		tree:     t,
		useEuler: useEuler,
		q:        make([]float64, t.nq),
		u:        make([]float64, t.nu),

		scratchZ:    make([]spatial.SpatialVec, n),
		scratchGeps: make([]spatial.SpatialVec, n),
		scratchEps:  make([]float64, t.nu),
		scratchA:    make([]spatial.SpatialVec, n),
		scratchF:    make([]spatial.SpatialVec, n),
	}
	s.pos = posCache{
		xFM:      make([]spatial.Transform, n),
		xPB:      make([]spatial.Transform, n),
		xGB:      make([]spatial.Transform, n),
		phi:      make([]spatial.Phi, n),
		inertiaG: make([]spatial.Mat33, n),
		comG:     make([]spatial.Vec3, n),
		mk:       make([]spatial.SpatialMat, n),
		hFM:      perNodeCols(t),
		h:        perNodeCols(t),
		qerr:     make([]float64, t.nquat),
	}
	s.vel = velCache{
		vFM:  make([]spatial.SpatialVec, n),
		vPB:  make([]spatial.SpatialVec, n),
		vGB:  make([]spatial.SpatialVec, n),
		hDot: perNodeCols(t),
	}
	s.dyn = dynCache{
		p:             make([]spatial.SpatialMat, n),
		d:             perNodeSquare(t),
		di:            perNodeSquare(t),
		g:             perNodeCols(t),
		tauBar:        make([]spatial.SpatialMat, n),
		psi:           make([]spatial.SpatialMat, n),
		gyro:          make([]spatial.SpatialVec, n),
		coriolis:      make([]spatial.SpatialVec, n),
		totalCoriolis: make([]spatial.SpatialVec, n),
		centrifugal:   make([]spatial.SpatialVec, n),
	}
	s.acc = accCache{
		aGB:     make([]spatial.SpatialVec, n),
		udot:    make([]float64, t.nu),
		qdotdot: make([]float64, t.nq),
	}
	for i := range t.nodes {
		nd := &t.nodes[i]
		nd.mob.DefaultQ(useEuler, s.q[nd.qIdx:nd.qIdx+nd.mob.NQ(useEuler)])
	}
	return s
}

func perNodeCols(t *Tree) [][]spatial.SpatialVec {
	out := make([][]spatial.SpatialVec, len(t.nodes))
	for i := range t.nodes {
		out[i] = make([]spatial.SpatialVec, t.nodes[i].mob.NumU())
	}
	return out
}

func perNodeSquare(t *Tree) [][]float64 {
	out := make([][]float64, len(t.nodes))
	for i := range t.nodes {
		nu := t.nodes[i].mob.NumU()
		out[i] = make([]float64, nu*nu)
	}
	return out
}

func (s *State) Tree() *Tree     { return s.tree }
func (s *State) UseEuler() bool  { return s.useEuler }

// Q and U expose the coordinate and speed arrays as read-only views;
// mutate through the setters so cache invalidation happens.
func (s *State) Q() []float64 { return s.q }
func (s *State) U() []float64 { return s.u }

func (s *State) SetQ(q []float64) {
	copy(s.q, q)
	s.invalidatePosition()
}

func (s *State) SetU(u []float64) {
	copy(s.u, u)
	s.invalidateVelocity()
}

func (s *State) SetQAt(i int, v float64) {
	s.q[i] = v
	s.invalidatePosition()
}

func (s *State) SetUAt(i int, v float64) {
	s.u[i] = v
	s.invalidateVelocity()
}

func (s *State) invalidatePosition() {
	s.pos.valid = false
	s.invalidateVelocity()
}

func (s *State) invalidateVelocity() {
	s.vel.valid = false
	s.dyn.valid = false
	s.acc.valid = false
}

// kin assembles the joint-level digest for node i. The caller is
// responsible for having realized the stages the target operation
// reads.
func (s *State) kin(i int) mobilizer.Kinematics {
	nd := &s.tree.nodes[i]
	k := mobilizer.Kinematics{
		UseEuler: s.useEuler,
		Q:        s.q[nd.qIdx : nd.qIdx+nd.mob.NQ(s.useEuler)],
		U:        s.u[nd.uIdx : nd.uIdx+nd.nu],
	}
	if s.pos.valid {
		k.XFM = s.pos.xFM[i]
	}
	if s.vel.valid {
		k.VFM = s.vel.vFM[i]
	}
	return k
}

// SetJointTransform fits body b's joint coordinates to the requested
// across-joint transform, best effort.
func (s *State) SetJointTransform(b BodyID, x spatial.Transform) {
	nd := &s.tree.nodes[b]
	k := s.kin(int(b))
	mobilizer.SetQToFitTransform(nd.mob, &k, x)
	s.invalidatePosition()
}

// SetJointVelocity fits body b's generalized speeds to the requested
// across-joint spatial velocity, best effort.
func (s *State) SetJointVelocity(b BodyID, v spatial.SpatialVec) {
	nd := &s.tree.nodes[b]
	k := s.kin(int(b))
	k.XFM = nd.mob.Transform(&k)
	mobilizer.SetUToFitVelocity(nd.mob, &k, v)
	s.invalidateVelocity()
}

// BodyTransform returns X_GB; position stage required.
func (s *State) BodyTransform(b BodyID) spatial.Transform {
	s.requirePosition()
	return s.pos.xGB[b]
}

// BodyVelocity returns V_GB; velocity stage required.
func (s *State) BodyVelocity(b BodyID) spatial.SpatialVec {
	s.requireVelocity()
	return s.vel.vGB[b]
}

// TotalCoriolis returns body b's velocity-only acceleration remainder:
// the spatial acceleration the body would have if every generalized
// acceleration were zero. Dynamics stage required.
func (s *State) TotalCoriolis(b BodyID) spatial.SpatialVec {
	s.requireDynamics()
	return s.dyn.totalCoriolis[b]
}

// BodyAcceleration returns A_GB from the last forward-dynamics
// evaluation.
func (s *State) BodyAcceleration(b BodyID) spatial.SpatialVec {
	s.requireAcceleration()
	return s.acc.aGB[b]
}

// UDot and QDotDot return the results of the last forward-dynamics
// evaluation as read-only views.
func (s *State) UDot() []float64 {
	s.requireAcceleration()
	return s.acc.udot
}

func (s *State) QDotDot() []float64 {
	s.requireAcceleration()
	return s.acc.qdotdot
}

// QErr returns the per-quaternion unit-norm constraint errors;
// position stage required. Empty when the tree has no quaternion
// joints; all zero when Euler angles are in use.
func (s *State) QErr() []float64 {
	s.requirePosition()
	return s.pos.qerr
}

func (s *State) requirePosition() {
	if !s.pos.valid {
		panic("tree: position stage not realized")
	}
}

func (s *State) requireVelocity() {
	if !s.vel.valid {
		panic("tree: velocity stage not realized")
	}
}

func (s *State) requireDynamics() {
	if !s.dyn.valid {
		panic("tree: dynamics stage not realized")
	}
}

func (s *State) requireAcceleration() {
	if !s.acc.valid {
		panic("tree: acceleration stage not realized")
	}
}
