package lights

import (
	"errors"

	"github.com/df07/go-raytracer-core/pkg/core"
)

type LightType string

const (
	LightTypePoint LightType = "point"
)

var (
	// ErrNegativeColor is returned when a light color has a negative component
	ErrNegativeColor = errors.New("light color must be non-negative")
	// ErrNegativeIntensity is returned for negative or NaN intensity
	ErrNegativeIntensity = errors.New("light intensity must be non-negative")
	// ErrNonFinitePosition is returned when a light position has NaN or Inf components
	ErrNonFinitePosition = errors.New("light position must be finite")
)

// Light interface for emitters that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample returns the direction, distance and irradiance arriving at point.
	// Degenerate configurations yield a sample with zero irradiance.
	Sample(point core.Vec3) LightSample

	// Validate reports whether the light is physically meaningful
	Validate() error

	// Clone returns an independent copy that later changes to the receiver cannot reach
	Clone() Light
}

// LightSample contains the light arriving at a shading point from one light
type LightSample struct {
	Point      core.Vec3 // Position of the emitter
	Direction  core.Vec3 // Unit direction from shading point to light
	Distance   float64   // Distance to light
	Irradiance core.Vec3 // Incident irradiance per color channel
}

// IsZero reports whether the sample carries no light
func (s LightSample) IsZero() bool {
	return s.Irradiance.IsZero()
}
