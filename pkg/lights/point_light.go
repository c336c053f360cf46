package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// MinLightDistance is the distance below which a point light contributes nothing
const MinLightDistance = 1e-6

// PointLight is an isotropic emitter at a single position
type PointLight struct {
	Position  core.Vec3 // Light position in world space
	Color     core.Vec3 // Non-negative RGB color
	Intensity float64   // Radiant intensity scale, >= 0
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// Type implements the Light interface
func (pl PointLight) Type() LightType {
	return LightTypePoint
}

// Clone returns the light by value
func (pl PointLight) Clone() Light {
	return pl
}

// Validate checks that position is finite and color and intensity are non-negative
func (pl PointLight) Validate() error {
	if !pl.Position.IsFinite() {
		return fmt.Errorf("point light at %v: %w", pl.Position, ErrNonFinitePosition)
	}
	if !pl.Color.IsNonNegative() || !pl.Color.IsFinite() {
		return fmt.Errorf("point light color %v: %w", pl.Color, ErrNegativeColor)
	}
	if !(pl.Intensity >= 0) || math.IsInf(pl.Intensity, 0) {
		return fmt.Errorf("point light intensity %g: %w", pl.Intensity, ErrNegativeIntensity)
	}
	return nil
}

// Direction returns the unit vector from point toward the light (zero when coincident)
func (pl PointLight) Direction(point core.Vec3) core.Vec3 {
	return pl.Position.Subtract(point).Normalize()
}

// Irradiance returns intensity·color / (4π·d²) at point.
// Points closer than MinLightDistance receive zero irradiance.
func (pl PointLight) Irradiance(point core.Vec3) core.Vec3 {
	distance := pl.Position.Subtract(point).Length()
	return pl.irradianceAt(distance)
}

func (pl PointLight) irradianceAt(distance float64) core.Vec3 {
	if !(distance >= MinLightDistance) {
		return core.Vec3{}
	}
	falloff := pl.Intensity / (4.0 * math.Pi * distance * distance)
	return pl.Color.Multiply(falloff)
}

// Sample implements the Light interface
func (pl PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()

	if !(distance >= MinLightDistance) {
		// Shading point coincides with the light
		return LightSample{Point: pl.Position}
	}

	return LightSample{
		Point:      pl.Position,
		Direction:  toLight.Multiply(1.0 / distance),
		Distance:   distance,
		Irradiance: pl.irradianceAt(distance),
	}
}
