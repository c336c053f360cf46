package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material int // Index into the owning scene's material list
}

// NewSphere creates a new sphere, rejecting degenerate geometry
func NewSphere(center core.Vec3, radius float64, materialIndex int) (*Sphere, error) {
	s := &Sphere{
		Center:   center,
		Radius:   radius,
		Material: materialIndex,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the center is finite and the radius is finite and positive
func (s Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return fmt.Errorf("sphere center %v: %w", s.Center, ErrNonFiniteCenter)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere radius %g: %w", s.Radius, ErrInvalidRadius)
	}
	return nil
}

// Clone returns the sphere by value
func (s Sphere) Clone() Shape {
	return s
}

// MaterialIndex returns the scene material index of this sphere
func (s Sphere) MaterialIndex() int {
	return s.Material
}

// Hit tests if a ray intersects with the sphere.
// Roots at or below core.SelfIntersectionEpsilon are never accepted, whatever tMin is.
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	if a < core.DenominatorEpsilon {
		return HitRecord{}, false
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	t1, t2, ok := solveQuadratic(a, b, c, discriminant)
	if !ok {
		return HitRecord{}, false
	}

	lower := max(tMin, core.SelfIntersectionEpsilon)

	// Try the closer root first, then the farther one (ray origin inside the sphere)
	root := t1
	if root <= lower || root >= tMax {
		root = t2
		if root <= lower || root >= tMax {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:     root,
		Point: ray.At(root),
	}
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.Center).Normalize())

	return hit, true
}

// solveQuadratic returns the ordered real roots of at² + bt + c = 0 for a
// non-negative discriminant. It avoids the cancellation in (-b + √Δ) when
// |b| ≫ √Δ, which is what keeps a ray leaving the surface from reporting a
// tiny spurious root.
func solveQuadratic(a, b, c, discriminant float64) (float64, float64, bool) {
	sqrtD := math.Sqrt(discriminant)
	q := -0.5 * (b + math.Copysign(sqrtD, b))
	if q == 0 {
		// b == 0 and Δ == 0: the only root is t = 0
		return 0, 0, true
	}

	t1 := q / a
	t2 := c / q
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if math.IsNaN(t1) || math.IsNaN(t2) {
		return 0, 0, false
	}
	return t1, t2, true
}
