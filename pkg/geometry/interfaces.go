package geometry

import (
	"errors"

	"github.com/df07/go-raytracer-core/pkg/core"
)

var (
	// ErrInvalidRadius is returned for zero, negative or non-finite radii
	ErrInvalidRadius = errors.New("radius must be finite and positive")
	// ErrNonFiniteCenter is returned when a shape's position has NaN or Inf components
	ErrNonFiniteCenter = errors.New("center must be finite")
	// ErrDegenerateNormal is returned when a plane normal cannot be normalized
	ErrDegenerateNormal = errors.New("normal must be non-zero and finite")
	// ErrInvalidCamera is returned for camera configurations that cannot form a view basis
	ErrInvalidCamera = errors.New("invalid camera configuration")
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with parameter in (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
	// MaterialIndex returns the index of this shape's material in the owning scene
	MaterialIndex() int
	// Validate reports whether the shape is fit to be traversed
	Validate() error
	// Clone returns an independent copy that later changes to the receiver cannot reach
	Clone() Shape
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Outward surface normal at intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray arrived from outside the surface
}

// SetFaceNormal stores the outward normal and records which side the ray came from
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.Normal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
}
