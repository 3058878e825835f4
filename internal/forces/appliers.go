package forces

import (
	"github.com/san-kum/multibody/internal/spatial"
	"github.com/san-kum/multibody/internal/tree"
)

// PointForce applies a constant ground-frame force at a station fixed
// on one body. The station offset is given in the body frame and
// re-expressed each evaluation.
type PointForce struct {
	tree    *tree.Tree
	body    tree.BodyID
	station spatial.Vec3 // in B
	force   spatial.Vec3 // in G
}

func NewPointForce(t *tree.Tree, b tree.BodyID, station, force spatial.Vec3) (*PointForce, error) {
	if int(b) < 0 || int(b) >= t.NumBodies() {
		return nil, errBadBody(int(b), t.NumBodies())
	}
	return &PointForce{tree: t, body: b, station: station, force: force}, nil
}

func (p *PointForce) SetForce(f spatial.Vec3) { p.force = f }

// AddForces shifts the station force to the body origin. Position
// stage required.
func (p *PointForce) AddForces(s *tree.State, bodyForces []spatial.SpatialVec, _ []float64) {
	if bodyForces == nil {
		return
	}
	r := s.BodyTransform(p.body).R.Apply(p.station)
	bodyForces[p.body] = bodyForces[p.body].Add(spatial.SpatialVec{W: r.Cross(p.force), V: p.force})
}

// BodyTorque applies a constant ground-frame torque to one body.
type BodyTorque struct {
	body   tree.BodyID
	torque spatial.Vec3 // in G
}

func NewBodyTorque(t *tree.Tree, b tree.BodyID, torque spatial.Vec3) (*BodyTorque, error) {
	if int(b) < 0 || int(b) >= t.NumBodies() {
		return nil, errBadBody(int(b), t.NumBodies())
	}
	return &BodyTorque{body: b, torque: torque}, nil
}

func (bt *BodyTorque) SetTorque(tq spatial.Vec3) { bt.torque = tq }

func (bt *BodyTorque) AddForces(_ *tree.State, bodyForces []spatial.SpatialVec, _ []float64) {
	if bodyForces == nil {
		return
	}
	bodyForces[bt.body] = bodyForces[bt.body].Add(spatial.SpatialVec{W: bt.torque})
}

// MobilityForce applies a generalized force directly to one dof of
// one joint.
type MobilityForce struct {
	slot  int
	value float64
}

func NewMobilityForce(t *tree.Tree, b tree.BodyID, dof int, value float64) (*MobilityForce, error) {
	if int(b) < 0 || int(b) >= t.NumBodies() {
		return nil, errBadBody(int(b), t.NumBodies())
	}
	if dof < 0 || dof >= t.UWidth(b) {
		return nil, errBadMobility(dof, t.UWidth(b))
	}
	return &MobilityForce{slot: t.UIndex(b) + dof, value: value}, nil
}

func (m *MobilityForce) SetValue(v float64) { m.value = v }

func (m *MobilityForce) AddForces(_ *tree.State, _ []spatial.SpatialVec, mobilityForces []float64) {
	if mobilityForces == nil {
		return
	}
	mobilityForces[m.slot] += m.value
}
