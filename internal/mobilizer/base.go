package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

// identityQ is the embedded base for joints whose coordinates and
// speeds coincide one-to-one (qdot == u, N == identity) and whose
// Jacobian axes are fixed in F.
type identityQ struct {
	nu int
}

func (b identityQ) NumU() int                  { return b.nu }
func (b identityQ) MaxNQ() int                 { return b.nu }
func (b identityQ) NQ(bool) int                { return b.nu }
func (b identityQ) UsesQuaternion(bool) bool   { return false }
func (b identityQ) DefaultQ(_ bool, q []float64) { zero(q) }

func (b identityQ) JacobianDot(_ *Kinematics, hdot []spatial.SpatialVec) {
	for i := range hdot {
		hdot[i] = spatial.SpatialVec{}
	}
}

func (b identityQ) SetQToFitRotation(*Kinematics, spatial.Rotation)     {}
func (b identityQ) SetQToFitTranslation(*Kinematics, spatial.Vec3)      {}
func (b identityQ) SetUToFitAngularVelocity(*Kinematics, spatial.Vec3)  {}
func (b identityQ) SetUToFitLinearVelocity(*Kinematics, spatial.Vec3)   {}

func (b identityQ) QDot(k *Kinematics, qdot []float64)            { copy(qdot, k.U) }
func (b identityQ) QDotDot(_ *Kinematics, udot, qdotdot []float64) { copy(qdotdot, udot) }
func (b identityQ) MultiplyByN(_ *Kinematics, in, out []float64)   { copy(out, in) }
func (b identityQ) MultiplyByNInv(_ *Kinematics, in, out []float64) { copy(out, in) }
func (b identityQ) MultiplyByNDot(_ *Kinematics, _, out []float64)  { zero(out) }

func (b identityQ) EnforceQuaternionConstraints(*Kinematics, []float64) bool { return false }
func (b identityQ) ConvertToEuler(qIn, qOut []float64)                       { copy(qOut, qIn) }
func (b identityQ) ConvertToQuaternion(qIn, qOut []float64)                  { copy(qOut, qIn) }
