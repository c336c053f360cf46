package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Field of view limits in degrees; values outside are clamped
const (
	MinVFov = 1.0
	MaxVFov = 179.0
)

// DefaultAspectRatio is used when neither an aspect ratio nor a resolution is configured
const DefaultAspectRatio = 16.0 / 9.0

// sine of the smallest angle between forward and the up hint that still yields a stable basis
const parallelUpTolerance = 1e-6

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position (eye)
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction hint
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width/height; when zero it is derived from Width and Height
	Width       int       // Target image width in pixels (optional)
	Height      int       // Target image height in pixels (optional)
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: DefaultAspectRatio,
	}
}

// MergeCameraConfig applies the non-zero fields of override on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Width != 0 || override.Height != 0 {
		result.Width = override.Width
		result.Height = override.Height
		// A new resolution implies its own aspect ratio unless one is given
		result.AspectRatio = 0
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}

	return result
}

// ResolvedAspectRatio returns the configured aspect ratio, derives it from the
// resolution when unset, and falls back to DefaultAspectRatio otherwise.
func (c CameraConfig) ResolvedAspectRatio() float64 {
	if c.AspectRatio > 0 && !math.IsInf(c.AspectRatio, 0) {
		return c.AspectRatio
	}
	if c.Width > 0 && c.Height > 0 {
		return float64(c.Width) / float64(c.Height)
	}
	return DefaultAspectRatio
}

// Validate rejects configurations that cannot produce a view basis
func (c CameraConfig) Validate() error {
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: non-finite position or direction", ErrInvalidCamera)
	}
	if c.LookAt.Subtract(c.Center).Length() <= core.NormalizeEpsilon {
		return fmt.Errorf("%w: eye and look-at target coincide", ErrInvalidCamera)
	}
	if !core.IsFinite(c.VFov) {
		return fmt.Errorf("%w: field of view %g", ErrInvalidCamera, c.VFov)
	}
	if c.AspectRatio < 0 || math.IsNaN(c.AspectRatio) {
		return fmt.Errorf("%w: aspect ratio %g", ErrInvalidCamera, c.AspectRatio)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidCamera, c.Width, c.Height)
	}
	return nil
}

// ClampVFov limits a vertical field of view to [MinVFov, MaxVFov] degrees
func ClampVFov(vfov float64) float64 {
	if math.IsNaN(vfov) {
		return MinVFov
	}
	return max(MinVFov, min(MaxVFov, vfov))
}

// Camera generates primary rays from an orthonormal view basis
type Camera struct {
	config CameraConfig

	origin  core.Vec3
	forward core.Vec3 // Unit view direction
	right   core.Vec3 // Unit, forward × up
	up      core.Vec3 // Unit, right × forward

	vfov           float64 // Clamped vertical field of view, degrees
	aspectRatio    float64
	tanHalfVFov    float64
	usedFallbackUp bool
}

// NewCamera builds the camera basis.
//
// forward = normalize(LookAt - Center), right = normalize(forward × Up),
// up = right × forward. When the up hint is zero or parallel to forward the
// cross product vanishes; the world axis least aligned with forward is used
// as the hint instead and UsedFallbackUp reports it. A zero forward (eye on
// the target) falls back to -Z; CameraConfig.Validate rejects that case.
func NewCamera(config CameraConfig) *Camera {
	forward := config.LookAt.Subtract(config.Center).Normalize()
	if forward.IsZero() {
		forward = core.NewVec3(0, 0, -1)
	}

	usedFallback := false
	cross := forward.Cross(config.Up.Normalize())
	if cross.Length() < parallelUpTolerance {
		cross = forward.Cross(fallbackUp(forward))
		usedFallback = true
	}
	right := cross.Normalize()
	up := right.Cross(forward)

	vfov := ClampVFov(config.VFov)
	aspect := config.ResolvedAspectRatio()

	return &Camera{
		config:         config,
		origin:         config.Center,
		forward:        forward,
		right:          right,
		up:             up,
		vfov:           vfov,
		aspectRatio:    aspect,
		tanHalfVFov:    math.Tan(vfov * math.Pi / 360.0),
		usedFallbackUp: usedFallback,
	}
}

// fallbackUp picks the world axis least aligned with forward
func fallbackUp(forward core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(forward.X), math.Abs(forward.Y), math.Abs(forward.Z)
	switch {
	case ay <= ax && ay <= az:
		return core.NewVec3(0, 1, 0)
	case az <= ax:
		return core.NewVec3(0, 0, 1)
	default:
		return core.NewVec3(1, 0, 0)
	}
}

// GetRay returns the ray through the centre of pixel (px, py) of a width×height image.
// Pixel rows are counted from the top of the image.
func (c *Camera) GetRay(px, py, width, height int) core.Ray {
	return c.GetRayOffset(px, py, width, height, core.NewVec2(0.5, 0.5))
}

// GetRayOffset returns the ray through pixel (px, py) at a sub-pixel offset in [0,1)²
func (c *Camera) GetRayOffset(px, py, width, height int, offset core.Vec2) core.Ray {
	if width <= 0 || height <= 0 {
		return core.NewRay(c.origin, c.forward)
	}
	ndcX := 2.0*(float64(px)+offset.X)/float64(width) - 1.0
	ndcY := 1.0 - 2.0*(float64(py)+offset.Y)/float64(height)
	return c.GetRayNDC(ndcX, ndcY)
}

// GetRayNDC returns the ray for normalized device coordinates in [-1, 1]²,
// x to the right and y up. (±1, 0) lies on the horizontal field-of-view edge.
func (c *Camera) GetRayNDC(ndcX, ndcY float64) core.Ray {
	horizontal := c.right.Multiply(ndcX * c.tanHalfVFov * c.aspectRatio)
	vertical := c.up.Multiply(ndcY * c.tanHalfVFov)
	direction := c.forward.Add(horizontal).Add(vertical)
	return core.NewRay(c.origin, direction)
}

// HorizontalFOV returns the horizontal field of view in degrees implied by
// the vertical field of view and aspect ratio
func (c *Camera) HorizontalFOV() float64 {
	return 2.0 * math.Atan(c.tanHalfVFov*c.aspectRatio) * 180.0 / math.Pi
}

// VerticalFOV returns the clamped vertical field of view in degrees
func (c *Camera) VerticalFOV() float64 {
	return c.vfov
}

// AspectRatio returns the width/height ratio used for ray generation
func (c *Camera) AspectRatio() float64 {
	return c.aspectRatio
}

// Basis returns the camera's forward, right and up unit vectors
func (c *Camera) Basis() (forward, right, up core.Vec3) {
	return c.forward, c.right, c.up
}

// GetCameraForward returns the camera's forward direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// UsedFallbackUp reports whether the up hint was degenerate and replaced
func (c *Camera) UsedFallbackUp() bool {
	return c.usedFallbackUp
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
