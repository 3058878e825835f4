package tree

import (
	"math"

	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
)

// BodyID indexes a body in the arena; Ground is always 0.
type BodyID int

const Ground BodyID = 0

// Body describes one body to add to a Builder.
type Body struct {
	Name   string
	Parent BodyID

	Mass    float64
	COM     spatial.Vec3  // mass center, in the body frame
	Inertia spatial.Mat33 // about the body origin, in the body frame

	FrameInParent spatial.Transform // F frame placed in the parent (X_PF)
	FrameInBody   spatial.Transform // M frame placed in this body (X_BM)

	Joint    mobilizer.Mobilizer
	Reversed bool
}

type node struct {
	name     string
	parent   int
	children []int

	mass    float64
	com     spatial.Vec3
	inertia spatial.Mat33

	xPF, xBM spatial.Transform
	mob      mobilizer.Mobilizer

	nu, maxNQ  int
	qIdx, uIdx int
	quatIdx    int // slot in the qerr array; -1 if never quaternion
}

// Builder accumulates bodies and validates them; topology errors are
// construction errors, never runtime ones.
type Builder struct {
	nodes []node
	err   error
}

func NewBuilder() *Builder {
	return &Builder{nodes: []node{{
		name:    "ground",
		parent:  -1,
		xPF:     spatial.IdentityTransform(),
		xBM:     spatial.IdentityTransform(),
		mob:     mobilizer.NewWeld(),
		quatIdx: -1,
	}}}
}

// AddBody appends a body; the returned id is its permanent arena
// index. The first error sticks and is re-reported by Build.
func (b *Builder) AddBody(body Body) (BodyID, error) {
	if b.err != nil {
		return -1, b.err
	}
	if body.Joint == nil {
		b.err = ErrNilJoint
		return -1, b.err
	}
	if int(body.Parent) < 0 || int(body.Parent) >= len(b.nodes) {
		b.err = ErrBadParent
		return -1, b.err
	}
	if body.Mass < 0 || math.IsNaN(body.Mass) || math.IsInf(body.Mass, 0) {
		b.err = errBadMass(body.Name, body.Mass)
		return -1, b.err
	}
	mob := body.Joint
	if body.Reversed {
		mob = mobilizer.Reverse(mob)
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, node{
		name:    body.Name,
		parent:  int(body.Parent),
		mass:    body.Mass,
		com:     body.COM,
		inertia: body.Inertia,
		xPF:     body.FrameInParent,
		xBM:     body.FrameInBody,
		mob:     mob,
		quatIdx: -1,
	})
	b.nodes[body.Parent].children = append(b.nodes[body.Parent].children, id)
	return BodyID(id), nil
}

// Build freezes the topology, assigning contiguous q/u slot ranges in
// arena order.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := &Tree{nodes: make([]node, len(b.nodes))}
	copy(t.nodes, b.nodes)
	nq, nu, nquat := 0, 0, 0
	for i := range t.nodes {
		nd := &t.nodes[i]
		nd.nu = nd.mob.NumU()
		nd.maxNQ = nd.mob.MaxNQ()
		nd.qIdx, nd.uIdx = nq, nu
		nq += nd.maxNQ
		nu += nd.nu
		if nd.mob.UsesQuaternion(false) {
			nd.quatIdx = nquat
			nquat++
		}
	}
	t.nq, t.nu, t.nquat = nq, nu, nquat
	return t, nil
}

// Tree is the immutable articulated topology. All mutable evaluation
// data lives in State instances.
type Tree struct {
	nodes []node
	nq    int // q slots at maximum (quaternion) width
	nu    int
	nquat int
}

func (t *Tree) NumBodies() int { return len(t.nodes) }

// NumQ is the global coordinate-slot count; every joint is allotted
// its maximum width so both representations fit the same layout.
func (t *Tree) NumQ() int { return t.nq }

// NumU is the total degree-of-freedom count.
func (t *Tree) NumU() int { return t.nu }

// NumQuaternions is the number of joints that carry a quaternion when
// the state is not using Euler angles; each contributes one
// position-level constraint.
func (t *Tree) NumQuaternions() int { return t.nquat }

func (t *Tree) Name(b BodyID) string    { return t.nodes[b].name }
func (t *Tree) Parent(b BodyID) BodyID  { return BodyID(t.nodes[b].parent) }
func (t *Tree) JointType(b BodyID) mobilizer.Type { return t.nodes[b].mob.Type() }

// Mass and COM return body b's build-time mass properties; COM is in
// the body frame. Force elements combine these with BodyTransform to
// locate the mass center in ground.
func (t *Tree) Mass(b BodyID) float64    { return t.nodes[b].mass }
func (t *Tree) COM(b BodyID) spatial.Vec3 { return t.nodes[b].com }

// QIndex and UIndex locate a body's coordinate and speed slots in the
// global arrays; QWidth/UWidth are the allotted widths.
func (t *Tree) QIndex(b BodyID) int { return t.nodes[b].qIdx }
func (t *Tree) UIndex(b BodyID) int { return t.nodes[b].uIdx }
func (t *Tree) QWidth(b BodyID) int { return t.nodes[b].maxNQ }
func (t *Tree) UWidth(b BodyID) int { return t.nodes[b].nu }
