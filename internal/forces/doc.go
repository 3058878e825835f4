// Package forces provides the force-element collaborators of the
// multibody engine. Every element follows one add-in contract: given a
// realized state, it accumulates its contribution into caller-supplied
// body-force and mobility-force arrays, never assuming exclusive
// ownership, so any number of elements may compose within a single
// evaluation.
//
// [Gravity] is the canonical element: a uniform field with per-body
// immunity, potential-energy accounting with a configurable zero
// height, and eager parameter validation. [PointForce], [BodyTorque]
// and [MobilityForce] are the primitive appliers.
package forces
