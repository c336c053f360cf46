package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Parameter limits
const (
	// MinRoughness keeps the GGX distribution away from the singular mirror case
	MinRoughness = 0.01
	MaxRoughness = 1.0

	// DefaultSpecular is the normal-incidence reflectance of a typical dielectric
	DefaultSpecular = 0.04
)

var (
	// ErrBaseColorRange is returned when a base color channel is outside [0, 1]
	ErrBaseColorRange = errors.New("base color channels must be in [0, 1]")
	// ErrRoughnessRange is returned when roughness is outside [MinRoughness, MaxRoughness]
	ErrRoughnessRange = errors.New("roughness must be in [0.01, 1]")
	// ErrMetallicRange is returned when metallic is outside [0, 1]
	ErrMetallicRange = errors.New("metallic must be in [0, 1]")
	// ErrSpecularRange is returned when specular is outside [0, 1]
	ErrSpecularRange = errors.New("specular must be in [0, 1]")
)

// Params holds the user-facing surface parameters shared by the reflectance models.
// Lambertian only uses BaseColor.
type Params struct {
	BaseColor core.Vec3 // Albedo (dielectric) or reflectance tint (metal), each channel in [0,1]
	Roughness float64   // Perceptual roughness in [0.01, 1]; GGX alpha = Roughness²
	Metallic  float64   // 0 = dielectric, 1 = metal
	Specular  float64   // Dielectric reflectance at normal incidence (F0), in [0,1]
}

// DefaultParams returns a mid-grey, moderately rough dielectric
func DefaultParams() Params {
	return Params{
		BaseColor: core.NewVec3(0.8, 0.8, 0.8),
		Roughness: 0.5,
		Metallic:  0.0,
		Specular:  DefaultSpecular,
	}
}

// Clamped returns a copy with every parameter forced into its valid range.
// NaN values are replaced by the lower bound.
func (p Params) Clamped() Params {
	return Params{
		BaseColor: core.NewVec3(clamp(p.BaseColor.X, 0, 1), clamp(p.BaseColor.Y, 0, 1), clamp(p.BaseColor.Z, 0, 1)),
		Roughness: clamp(p.Roughness, MinRoughness, MaxRoughness),
		Metallic:  clamp(p.Metallic, 0, 1),
		Specular:  clamp(p.Specular, 0, 1),
	}
}

// Validate reports the first parameter that is out of range, without modifying anything
func (p Params) Validate() error {
	if !p.BaseColor.InRange(0, 1) {
		return fmt.Errorf("%w: got %v", ErrBaseColorRange, p.BaseColor)
	}
	if !inRange(p.Roughness, MinRoughness, MaxRoughness) {
		return fmt.Errorf("%w: got %g", ErrRoughnessRange, p.Roughness)
	}
	if !inRange(p.Metallic, 0, 1) {
		return fmt.Errorf("%w: got %g", ErrMetallicRange, p.Metallic)
	}
	if !inRange(p.Specular, 0, 1) {
		return fmt.Errorf("%w: got %g", ErrSpecularRange, p.Specular)
	}
	return nil
}

// InRange reports whether Validate would succeed
func (p Params) InRange() bool {
	return p.Validate() == nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return max(lo, min(hi, v))
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
