package integrator

import (
	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/scene"
)

// Options configures direct lighting
type Options struct {
	Shadows    bool      // Trace a shadow ray toward each light
	Background core.Vec3 // Radiance returned for rays that escape the scene
	Debug      core.DebugOptions
}

// DefaultOptions returns unshadowed shading against a black background
func DefaultOptions() Options {
	return Options{}
}

// DirectLightingIntegrator shades the closest hit against every scene light.
// There is no recursion: reflected light from other surfaces is ignored.
type DirectLightingIntegrator struct {
	options Options
}

// NewDirectLightingIntegrator creates a direct lighting integrator
func NewDirectLightingIntegrator(options Options) *DirectLightingIntegrator {
	return &DirectLightingIntegrator{options: options}
}

// Options returns the integrator configuration
func (dl *DirectLightingIntegrator) Options() Options {
	return dl.options
}

// RayColor implements the Integrator interface
func (dl *DirectLightingIntegrator) RayColor(ray core.Ray, s *scene.Scene) (core.Vec3, scene.Intersection) {
	hit := s.Hit(ray)
	if !hit.Hit {
		return dl.options.Background, hit
	}

	mat := s.Material(hit.Material)
	if mat == nil {
		// Unreachable for scenes built through AddShape
		dl.options.Debug.Logf("primitive %d references missing material %d\n", hit.Primitive, hit.Material)
		return core.Vec3{}, hit
	}

	viewDir := ray.Direction.Negate()
	radiance := core.Vec3{}

	for i := 0; i < s.NumLights(); i++ {
		sample := s.Light(i).Sample(hit.Point)
		if sample.IsZero() {
			continue
		}
		if dl.options.Shadows && s.Occluded(hit.Point, sample.Direction, sample.Distance) {
			continue
		}
		radiance = radiance.Add(mat.ScatterLight(sample.Direction, viewDir, hit.Normal, sample.Irradiance))
	}

	return radiance, hit
}
