package material

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// CookTorrance is a microfacet specular reflectance model:
//
//	f_r = D·G·F / (4·(n·l)·(n·v))
//
// with the GGX (Trowbridge-Reitz) distribution D, the separable Smith GGX
// masking-shadowing term G and Schlick's Fresnel approximation F.
//
// Roughness convention: the GGX parameter is alpha = roughness², applied to
// both D and G. Roughness itself is the perceptual, user-facing value.
type CookTorrance struct {
	Params Params
}

// NewCookTorrance creates a Cook-Torrance material; parameters are clamped into range
func NewCookTorrance(params Params) *CookTorrance {
	return &CookTorrance{Params: params.Clamped()}
}

// NewMetal creates a fully metallic Cook-Torrance material
func NewMetal(baseColor core.Vec3, roughness float64) *CookTorrance {
	return NewCookTorrance(Params{
		BaseColor: baseColor,
		Roughness: roughness,
		Metallic:  1.0,
		Specular:  DefaultSpecular,
	})
}

// NewPlastic creates a dielectric Cook-Torrance material with the default F0
func NewPlastic(baseColor core.Vec3, roughness float64) *CookTorrance {
	return NewCookTorrance(Params{
		BaseColor: baseColor,
		Roughness: roughness,
		Metallic:  0.0,
		Specular:  DefaultSpecular,
	})
}

// Kind implements the Material interface
func (ct CookTorrance) Kind() Kind {
	return KindCookTorrance
}

// Alpha returns the GGX parameter for this material's roughness
func (ct CookTorrance) Alpha() float64 {
	return RoughnessToAlpha(ct.Params.Roughness)
}

// F0 returns the per-channel reflectance at normal incidence: the dielectric
// Specular value blended toward BaseColor by Metallic.
func (ct CookTorrance) F0() core.Vec3 {
	return core.Splat(ct.Params.Specular).Lerp(ct.Params.BaseColor, ct.Params.Metallic)
}

// EvaluateBRDF evaluates the specular microfacet BRDF.
// Returns zero when either direction is at or below the surface.
func (ct CookTorrance) EvaluateBRDF(wi, wo, normal core.Vec3) core.Vec3 {
	nDotL := normal.Dot(wi)
	nDotV := normal.Dot(wo)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}

	denominator := 4.0 * nDotL * nDotV
	if denominator < core.DenominatorEpsilon {
		return core.Vec3{}
	}

	h := wi.Add(wo).Normalize()
	if h.IsZero() {
		return core.Vec3{}
	}
	nDotH := max(0, normal.Dot(h))
	vDotH := max(0, wo.Dot(h))

	alpha := ct.Alpha()
	d := DistributionGGX(nDotH, alpha)
	g := SmithG(nDotL, nDotV, alpha)
	f := FresnelSchlick(vDotH, ct.F0())

	return f.Multiply(d * g / denominator)
}

// ScatterLight implements the Material interface
func (ct CookTorrance) ScatterLight(lightDir, viewDir, normal, incident core.Vec3) core.Vec3 {
	return scatterLight(ct, lightDir, viewDir, normal, incident)
}

// Clone returns the material by value
func (ct CookTorrance) Clone() Material {
	return ct
}

// Validate checks every parameter range
func (ct CookTorrance) Validate() error {
	if err := ct.Params.Validate(); err != nil {
		return fmt.Errorf("cook-torrance: %w", err)
	}
	return nil
}

// RoughnessToAlpha converts perceptual roughness to the GGX parameter (alpha = roughness²).
// Roughness is clamped to [MinRoughness, MaxRoughness] first.
func RoughnessToAlpha(roughness float64) float64 {
	r := clamp(roughness, MinRoughness, MaxRoughness)
	return r * r
}

// DistributionGGX evaluates the GGX / Trowbridge-Reitz normal distribution
//
//	D = α² / (π·((n·h)²·(α²−1)+1)²)
//
// It is maximal at n·h = 1, where it equals 1/(π·α²).
func DistributionGGX(nDotH, alpha float64) float64 {
	nDotH = clamp(nDotH, 0, 1)
	a2 := alpha * alpha
	// (n·h)²(α²−1)+1 rearranged to avoid cancellation near n·h = 1
	t := (1-nDotH)*(1+nDotH) + nDotH*nDotH*a2
	denominator := math.Pi * t * t
	// t >= α², so this only triggers for the α = 0 delta distribution
	if denominator <= 0 {
		return 0
	}
	return a2 / denominator
}

// SmithG1 is the Smith GGX masking term for one direction
//
//	G1 = 2(n·x) / ((n·x) + √(α² + (1−α²)(n·x)²))
//
// It is 1 at normal incidence and falls to 0 at grazing angles.
func SmithG1(nDotX, alpha float64) float64 {
	if nDotX <= 0 {
		return 0
	}
	nDotX = min(nDotX, 1)
	a2 := alpha * alpha
	denominator := nDotX + math.Sqrt(a2+(1-a2)*nDotX*nDotX)
	if denominator < core.DenominatorEpsilon {
		return 0
	}
	return 2 * nDotX / denominator
}

// SmithG is the separable Smith masking-shadowing term G1(n·l)·G1(n·v)
func SmithG(nDotL, nDotV, alpha float64) float64 {
	return SmithG1(nDotL, alpha) * SmithG1(nDotV, alpha)
}

// FresnelSchlick evaluates Schlick's approximation F0 + (1−F0)(1−v·h)⁵ per channel
func FresnelSchlick(vDotH float64, f0 core.Vec3) core.Vec3 {
	w := schlickWeight(vDotH)
	return core.Vec3{
		X: f0.X + (1-f0.X)*w,
		Y: f0.Y + (1-f0.Y)*w,
		Z: f0.Z + (1-f0.Z)*w,
	}
}

// schlickWeight returns (1−cosθ)⁵ for cosθ clamped to [0,1]
func schlickWeight(cosTheta float64) float64 {
	m := 1 - clamp(cosTheta, 0, 1)
	m2 := m * m
	return m2 * m2 * m
}
