package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal; the side it points to is the front face
	Material int       // Index into the owning scene's material list
}

// NewPlane creates a new plane, normalizing its normal
func NewPlane(point, normal core.Vec3, materialIndex int) (*Plane, error) {
	p := &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: materialIndex,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the point is finite and the normal has unit length
func (p Plane) Validate() error {
	if !p.Point.IsFinite() {
		return fmt.Errorf("plane point %v: %w", p.Point, ErrNonFiniteCenter)
	}
	if !p.Normal.IsUnit() {
		return fmt.Errorf("plane normal %v: %w", p.Normal, ErrDegenerateNormal)
	}
	return nil
}

// Clone returns the plane by value
func (p Plane) Clone() Shape {
	return p
}

// MaterialIndex returns the scene material index of this plane
func (p Plane) MaterialIndex() int {
	return p.Material
}

// Hit tests if a ray intersects with the plane
func (p Plane) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never intersect
	if math.Abs(denominator) < core.DenominatorEpsilon {
		return HitRecord{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator

	if t <= max(tMin, core.SelfIntersectionEpsilon) || t >= tMax {
		return HitRecord{}, false
	}

	hit := HitRecord{
		T:     t,
		Point: ray.At(t),
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}
