package material

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance, each channel in [0,1]
}

// NewLambertian creates a new lambertian material; albedo channels are clamped to [0,1]
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: Params{BaseColor: albedo}.Clamped().BaseColor}
}

// Kind implements the Material interface
func (l Lambertian) Kind() Kind {
	return KindLambert
}

// EvaluateBRDF returns albedo / π for every pair of directions.
// The π divisor makes the cosine-weighted hemisphere integral equal the albedo.
func (l Lambertian) EvaluateBRDF(wi, wo, normal core.Vec3) core.Vec3 {
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// ScatterLight implements the Material interface
func (l Lambertian) ScatterLight(lightDir, viewDir, normal, incident core.Vec3) core.Vec3 {
	return scatterLight(l, lightDir, viewDir, normal, incident)
}

// Clone returns the material by value
func (l Lambertian) Clone() Material {
	return l
}

// Validate checks the albedo range
func (l Lambertian) Validate() error {
	if !l.Albedo.InRange(0, 1) {
		return fmt.Errorf("lambertian: %w: got %v", ErrBaseColorRange, l.Albedo)
	}
	return nil
}
