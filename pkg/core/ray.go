package core

import "math"

// Ray represents a ray with an origin, a unit direction and a valid parameter range
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64 // Smallest parameter considered a hit
	TMax      float64 // Largest parameter considered a hit
}

// NewRay creates a ray with a normalized direction and the default range
// [SelfIntersectionEpsilon, +Inf).
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		TMin:      SelfIntersectionEpsilon,
		TMax:      math.Inf(1),
	}
}

// NewRayBounded creates a ray with a normalized direction limited to [tMin, tMax]
func NewRayBounded(origin, direction Vec3, tMin, tMax float64) Ray {
	r := NewRay(origin, direction)
	r.TMin = max(tMin, SelfIntersectionEpsilon)
	r.TMax = tMax
	return r
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IsValid reports whether the ray has a finite origin and a unit direction
func (r Ray) IsValid() bool {
	return r.Origin.IsFinite() && r.Direction.IsUnit()
}
