package mobilizer

import "github.com/san-kum/multibody/internal/spatial"

type Type int

const (
	Weld Type = iota
	Translate
	Slider
	Torsion
	Screw
	Cylinder
	BendStretch
	Universal
	Planar
	Gimbal
	Ball
	Ellipsoid
	Free
	LineOrientation
	FreeLine
	Custom
)

var typeNames = map[Type]string{
	Weld:            "weld",
	Translate:       "translate",
	Slider:          "slider",
	Torsion:         "torsion",
	Screw:           "screw",
	Cylinder:        "cylinder",
	BendStretch:     "bendstretch",
	Universal:       "universal",
	Planar:          "planar",
	Gimbal:          "gimbal",
	Ball:            "ball",
	Ellipsoid:       "ellipsoid",
	Free:            "free",
	LineOrientation: "lineorientation",
	FreeLine:        "freeline",
	Custom:          "custom",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Kinematics is the per-call digest of one joint's slice of the model
// state. Q and U alias the caller's global coordinate arrays, so fit
// operators write through. XFM must be the already-realized transform
// for velocity-level operations; VFM must be realized for JacobianDot
// and the u-fit operators of position-dependent joints.
type Kinematics struct {
	UseEuler bool
	Q        []float64
	U        []float64
	XFM      spatial.Transform
	VFM      spatial.SpatialVec
}

// Mobilizer is the capability interface every joint variant implements.
// Slices handed to the fill-style methods (Jacobian, QDot, ...) are
// caller-owned and sized by NumU/NQ; implementations write every slot.
type Mobilizer interface {
	Type() Type

	// NumU is the degree-of-freedom count; MaxNQ the coordinate slots
	// reserved in the global q regardless of representation; NQ the
	// slots in use for the given representation.
	NumU() int
	MaxNQ() int
	NQ(useEuler bool) int
	UsesQuaternion(useEuler bool) bool

	// Transform computes X_FM from k.Q alone.
	Transform(k *Kinematics) spatial.Transform

	// Jacobian fills the NumU columns of H, expressed in F, such that
	// V_FM = H*u. JacobianDot fills the time derivative of those
	// columns; identically zero for fixed-axis joints.
	Jacobian(k *Kinematics, h []spatial.SpatialVec)
	JacobianDot(k *Kinematics, hdot []spatial.SpatialVec)

	// Best-effort inverse mappings; unrepresentable motion is
	// silently projected onto the joint's subspace.
	SetQToFitRotation(k *Kinematics, r spatial.Rotation)
	SetQToFitTranslation(k *Kinematics, p spatial.Vec3)
	SetUToFitAngularVelocity(k *Kinematics, w spatial.Vec3)
	SetUToFitLinearVelocity(k *Kinematics, v spatial.Vec3)

	// Coordinate-rate coupling qdot = N(q)*u and its derivative.
	QDot(k *Kinematics, qdot []float64)
	QDotDot(k *Kinematics, udot, qdotdot []float64)
	MultiplyByN(k *Kinematics, in, out []float64)
	MultiplyByNInv(k *Kinematics, in, out []float64)
	MultiplyByNDot(k *Kinematics, in, out []float64)

	// EnforceQuaternionConstraints rescales a quaternion block to
	// unit norm and, when qErrEst is non-nil (length NQ), removes its
	// component along the quaternion. Reports whether q was eligible
	// for adjustment (i.e. a quaternion is in use).
	EnforceQuaternionConstraints(k *Kinematics, qErrEst []float64) bool

	// Representation conversions between the two q layouts. Inputs
	// and outputs are full NQ-sized slices for the respective
	// representation; no-ops (copies) for joints without a choice.
	ConvertToEuler(qIn, qOut []float64)
	ConvertToQuaternion(qIn, qOut []float64)

	// DefaultQ writes the identity configuration.
	DefaultQ(useEuler bool, q []float64)
}

// SetQToFitTransform applies the rotation fit then the translation fit.
func SetQToFitTransform(m Mobilizer, k *Kinematics, x spatial.Transform) {
	m.SetQToFitRotation(k, x.R)
	m.SetQToFitTranslation(k, x.P)
}

// SetUToFitVelocity applies the angular fit then the linear fit.
func SetUToFitVelocity(m Mobilizer, k *Kinematics, v spatial.SpatialVec) {
	m.SetUToFitAngularVelocity(k, v.W)
	m.SetUToFitLinearVelocity(k, v.V)
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
