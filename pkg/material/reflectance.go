package material

import (
	"github.com/df07/go-raytracer-core/pkg/core"
)

// EstimateReflectance estimates the directional reflectance
//
//	ρ(wo) = ∫ f_r(wi, wo) · max(0, n·wi) dwi
//
// over the hemisphere around normal with uniformly distributed samples.
// For an energy-conserving material every channel is at most 1; for a
// Lambertian surface it equals the albedo.
func EstimateReflectance(m Material, wo, normal core.Vec3, samples int, sampler core.Sampler) core.Vec3 {
	if samples <= 0 {
		return core.Vec3{}
	}

	sum := core.Vec3{}
	for i := 0; i < samples; i++ {
		wi := core.SampleUniformHemisphere(normal, sampler.Get2D())
		cosTheta := normal.Dot(wi)
		if cosTheta <= 0 {
			continue
		}
		f := m.EvaluateBRDF(wi, wo, normal)
		sum = sum.Add(f.Multiply(cosTheta / core.UniformHemispherePDF))
	}

	return sum.Multiply(1.0 / float64(samples))
}
