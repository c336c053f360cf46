package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis builds two tangents that, together with the unit normal,
// form a right-handed orthonormal frame.
func OrthonormalBasis(normal Vec3) (tangent, bitangent Vec3) {
	// Find a vector not parallel to the normal
	var helper Vec3
	if math.Abs(normal.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	tangent = helper.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// SampleUniformHemisphere maps a 2D sample to a direction uniformly distributed
// over the hemisphere around normal. The matching PDF is UniformHemispherePDF.
func SampleUniformHemisphere(normal Vec3, sample Vec2) Vec3 {
	cosTheta := sample.X
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	tangent, bitangent := OrthonormalBasis(normal)
	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Add(normal.Multiply(cosTheta))
}

// UniformHemispherePDF is the solid-angle density of SampleUniformHemisphere
const UniformHemispherePDF = 1.0 / (2.0 * math.Pi)
