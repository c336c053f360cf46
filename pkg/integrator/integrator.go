package integrator

import (
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray and returns the
	// primary intersection alongside it for diagnostics
	RayColor(ray core.Ray, scene *scene.Scene) (core.Vec3, scene.Intersection)
}
