package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/lights"
	"github.com/df07/go-raytracer-core/pkg/material"
)

// NoIndex marks a missing material or primitive reference
const NoIndex = -1

var (
	// ErrInvalidMaterialIndex is returned when a primitive references a material that does not exist
	ErrInvalidMaterialIndex = errors.New("material index out of range")
	// ErrNilMaterial is returned when adding a nil material
	ErrNilMaterial = errors.New("material is nil")
	// ErrNilShape is returned when adding a nil shape
	ErrNilShape = errors.New("shape is nil")
	// ErrNilLight is returned when adding a nil light
	ErrNilLight = errors.New("light is nil")
)

// Scene contains all the elements needed for rendering.
//
// A scene is built once through the Add/Set methods and then only read, so a
// built scene may be shared by any number of goroutines. Materials, shapes and
// lights are stored as private copies, and every primitive's material index is
// checked when the primitive is added; traversal never revalidates it.
type Scene struct {
	camera    *geometry.Camera
	materials []material.Material
	shapes    []geometry.Shape
	lights    []lights.Light
}

// NewScene creates an empty scene with the default camera
func NewScene() *Scene {
	return &Scene{
		camera: geometry.NewCamera(geometry.DefaultCameraConfig()),
	}
}

// AddMaterial validates and appends a copy of a material, returning its stable index.
// On failure the index is NoIndex and the scene is unchanged.
func (s *Scene) AddMaterial(m material.Material) (int, error) {
	if m == nil {
		return NoIndex, ErrNilMaterial
	}
	m = m.Clone()
	if err := m.Validate(); err != nil {
		return NoIndex, fmt.Errorf("add material: %w", err)
	}
	s.materials = append(s.materials, m)
	return len(s.materials) - 1, nil
}

// AddSphere creates a sphere referencing an existing material and adds it to the scene.
// Degenerate geometry or an unknown material index returns NoIndex and an error.
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialIndex int) (int, error) {
	sphere, err := geometry.NewSphere(center, radius, materialIndex)
	if err != nil {
		return NoIndex, fmt.Errorf("add sphere: %w", err)
	}
	return s.AddShape(sphere)
}

// AddPlane creates an infinite plane referencing an existing material and adds it to the scene
func (s *Scene) AddPlane(point, normal core.Vec3, materialIndex int) (int, error) {
	plane, err := geometry.NewPlane(point, normal, materialIndex)
	if err != nil {
		return NoIndex, fmt.Errorf("add plane: %w", err)
	}
	return s.AddShape(plane)
}

// AddShape adds a copy of a validated shape whose material index resolves in
// this scene. Later changes to the caller's value do not reach the scene.
func (s *Scene) AddShape(shape geometry.Shape) (int, error) {
	if shape == nil {
		return NoIndex, ErrNilShape
	}
	shape = shape.Clone()
	if err := shape.Validate(); err != nil {
		return NoIndex, fmt.Errorf("add shape: %w", err)
	}
	if idx := shape.MaterialIndex(); idx < 0 || idx >= len(s.materials) {
		return NoIndex, fmt.Errorf("add shape: material %d of %d: %w", idx, len(s.materials), ErrInvalidMaterialIndex)
	}
	s.shapes = append(s.shapes, shape)
	return len(s.shapes) - 1, nil
}

// AddLight validates and appends a copy of a light. Lights are shaded in insertion order.
func (s *Scene) AddLight(light lights.Light) (int, error) {
	if light == nil {
		return NoIndex, ErrNilLight
	}
	light = light.Clone()
	if err := light.Validate(); err != nil {
		return NoIndex, fmt.Errorf("add light: %w", err)
	}
	s.lights = append(s.lights, light)
	return len(s.lights) - 1, nil
}

// AddPointLight is a convenience wrapper around AddLight
func (s *Scene) AddPointLight(position, color core.Vec3, intensity float64) (int, error) {
	return s.AddLight(lights.NewPointLight(position, color, intensity))
}

// SetCamera validates the configuration and replaces the scene camera
func (s *Scene) SetCamera(config geometry.CameraConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("set camera: %w", err)
	}
	s.camera = geometry.NewCamera(config)
	return nil
}

// Camera returns the scene camera
func (s *Scene) Camera() *geometry.Camera {
	return s.camera
}

// Material returns the material at index, or nil when the index is out of range
func (s *Scene) Material(index int) material.Material {
	if index < 0 || index >= len(s.materials) {
		return nil
	}
	return s.materials[index]
}

// Materials returns a copy of the material list
func (s *Scene) Materials() []material.Material {
	return slices.Clone(s.materials)
}

// Shapes returns a copy of the primitive list
func (s *Scene) Shapes() []geometry.Shape {
	return slices.Clone(s.shapes)
}

// NumLights returns the number of lights
func (s *Scene) NumLights() int {
	return len(s.lights)
}

// Light returns the light at index in shading order, or nil when the index is out of range
func (s *Scene) Light(index int) lights.Light {
	if index < 0 || index >= len(s.lights) {
		return nil
	}
	return s.lights[index]
}

// Lights returns a copy of the light list in shading order
func (s *Scene) Lights() []lights.Light {
	return slices.Clone(s.lights)
}

// Intersection is the result of a closest-hit query
type Intersection struct {
	Hit       bool
	T         float64
	Point     core.Vec3
	Normal    core.Vec3 // Outward surface normal
	FrontFace bool
	Material  int // Index into the scene's materials, NoIndex on a miss
	Primitive int // Index into the scene's shapes, NoIndex on a miss
}

// Miss returns the intersection reported when nothing is hit
func Miss() Intersection {
	return Intersection{
		T:         math.Inf(1),
		Material:  NoIndex,
		Primitive: NoIndex,
	}
}

// Hit finds the closest intersection of ray with any primitive in (ray.TMin, ray.TMax).
// Every primitive is tested; cost is linear in the primitive count.
func (s *Scene) Hit(ray core.Ray) Intersection {
	result := Miss()
	closestSoFar := ray.TMax

	for i, shape := range s.shapes {
		hit, isHit := shape.Hit(ray, ray.TMin, closestSoFar)
		if !isHit {
			continue
		}
		closestSoFar = hit.T
		result = Intersection{
			Hit:       true,
			T:         hit.T,
			Point:     hit.Point,
			Normal:    hit.Normal,
			FrontFace: hit.FrontFace,
			Material:  shape.MaterialIndex(),
			Primitive: i,
		}
	}

	return result
}

// Occluded reports whether anything lies between origin and origin + direction·maxDistance
func (s *Scene) Occluded(origin, direction core.Vec3, maxDistance float64) bool {
	ray := core.NewRayBounded(origin, direction, core.SelfIntersectionEpsilon, maxDistance)
	for _, shape := range s.shapes {
		if _, isHit := shape.Hit(ray, ray.TMin, ray.TMax); isHit {
			return true
		}
	}
	return false
}
