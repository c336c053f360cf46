package core

// Numeric tolerances shared by intersection, shading and validation code.
const (
	// SelfIntersectionEpsilon is the smallest ray parameter accepted as a hit.
	// It is above float32 machine epsilon so that secondary rays leaving a
	// surface do not re-hit the surface they start on.
	SelfIntersectionEpsilon = 1e-6

	// UnitLengthTolerance is how far a direction's length may drift from 1
	// and still be treated as normalized.
	UnitLengthTolerance = 1e-3

	// NormalizeEpsilon is the length below which Normalize returns the zero vector.
	NormalizeEpsilon = 1e-12

	// DenominatorEpsilon guards divisions in shading code (BRDF terms, light falloff).
	DenominatorEpsilon = 1e-12
)
