package material

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// Kind identifies a reflectance model
type Kind int

const (
	KindLambert Kind = iota
	KindCookTorrance
)

func (k Kind) String() string {
	switch k {
	case KindLambert:
		return "lambert"
	case KindCookTorrance:
		return "cook-torrance"
	default:
		return "unknown"
	}
}

// Material interface for reflectance models.
//
// All directions point away from the surface and are expected to be normalized.
// Implementations never return errors from evaluation: degenerate geometry
// (grazing angles, directions below the surface) yields zero radiance.
type Material interface {
	// Kind reports which reflectance model this is
	Kind() Kind

	// EvaluateBRDF evaluates the BRDF for an incident direction wi and outgoing direction wo
	EvaluateBRDF(wi, wo, normal core.Vec3) core.Vec3

	// ScatterLight returns the radiance reflected toward viewDir from light arriving
	// along lightDir with the given incident radiance: f_r · L_i · max(0, n·l)
	ScatterLight(lightDir, viewDir, normal, incident core.Vec3) core.Vec3

	// Validate reports whether the material parameters are inside their physical ranges
	Validate() error

	// Clone returns an independent copy that later changes to the receiver cannot reach
	Clone() Material
}

// scatterLight applies the rendering-equation cosine term per color channel
func scatterLight(m Material, lightDir, viewDir, normal, incident core.Vec3) core.Vec3 {
	cosTheta := normal.Dot(lightDir)
	if cosTheta <= 0 || incident.IsZero() {
		return core.Vec3{}
	}
	brdf := m.EvaluateBRDF(lightDir, viewDir, normal)
	return brdf.MultiplyVec(incident).Multiply(cosTheta)
}
