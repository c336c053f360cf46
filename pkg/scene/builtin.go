package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/material"
)

// Builder constructs a built-in scene, optionally overriding its camera
type Builder func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

var builtins = map[string]Builder{
	"default":    NewDefaultScene,
	"spheregrid": NewSphereGridScene,
}

// Builtin returns the built-in scene registered under name
func Builtin(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}
	return build(cameraOverrides...)
}

// BuiltinNames lists the registered scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyCamera merges overrides into the scene's default camera
func (s *Scene) applyCamera(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) error {
	config := defaults
	if len(overrides) > 0 {
		config = geometry.MergeCameraConfig(defaults, overrides[0])
	}
	return s.SetCamera(config)
}

// builder collects the first error so scene construction reads linearly
type builder struct {
	scene *Scene
	err   error
}

func (b *builder) material(m material.Material) int {
	if b.err != nil {
		return NoIndex
	}
	idx, err := b.scene.AddMaterial(m)
	b.err = err
	return idx
}

func (b *builder) sphere(center core.Vec3, radius float64, materialIndex int) {
	if b.err != nil {
		return
	}
	_, b.err = b.scene.AddSphere(center, radius, materialIndex)
}

func (b *builder) pointLight(position, color core.Vec3, intensity float64) {
	if b.err != nil {
		return
	}
	_, b.err = b.scene.AddPointLight(position, color, intensity)
}

// NewDefaultScene creates three spheres (diffuse, plastic, metal) on a large ground sphere, lit by two point lights
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	s := NewScene()
	err := s.applyCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt: core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:     core.NewVec3(0, 1, 0),    // Standard up direction
		VFov:   40.0,
		Width:  400,
		Height: 225,
	}, cameraOverrides)
	if err != nil {
		return nil, err
	}

	b := &builder{scene: s}

	ground := b.material(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	red := b.material(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	bluePlastic := b.material(material.NewPlastic(core.NewVec3(0.1, 0.2, 0.5), 0.3))
	gold := b.material(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.35))

	// Ground is a very large sphere
	b.sphere(core.NewVec3(0, -1000, -1), 1000, ground)
	b.sphere(core.NewVec3(0, 0.5, -1), 0.5, red)
	b.sphere(core.NewVec3(-1, 0.5, -1), 0.5, bluePlastic)
	b.sphere(core.NewVec3(1, 0.5, -1), 0.5, gold)

	// Key light and a dimmer fill light
	b.pointLight(core.NewVec3(3, 5, 2), core.NewVec3(1.0, 0.95, 0.9), 600)
	b.pointLight(core.NewVec3(-4, 3, 1), core.NewVec3(0.6, 0.7, 1.0), 200)

	if b.err != nil {
		return nil, fmt.Errorf("default scene: %w", b.err)
	}
	return s, nil
}

// NewSphereGridScene creates a grid of Cook-Torrance spheres, roughness varying
// along X and metallic along Z
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	s := NewScene()
	err := s.applyCamera(geometry.CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt: core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
		Width:  800,
		Height: 450,
	}, cameraOverrides)
	if err != nil {
		return nil, err
	}

	b := &builder{scene: s}

	ground := b.material(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	b.sphere(core.NewVec3(4.5, -1000, 4.5), 1000, ground)

	gridSize := 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			color := hueToRGB(hue)

			params := material.Params{
				BaseColor: color,
				Roughness: material.MinRoughness + (material.MaxRoughness-material.MinRoughness)*float64(i)/float64(gridSize-1),
				Metallic:  float64(j) / float64(gridSize-1),
				Specular:  material.DefaultSpecular,
			}
			idx := b.material(material.NewCookTorrance(params))
			b.sphere(core.NewVec3(x, sphereRadius, z), sphereRadius, idx)
		}
	}

	b.pointLight(core.NewVec3(20, 25, 20), core.NewVec3(1.0, 0.96, 0.9), 40000)
	b.pointLight(core.NewVec3(-10, 12, 25), core.NewVec3(0.8, 0.85, 1.0), 8000)

	if b.err != nil {
		return nil, fmt.Errorf("spheregrid scene: %w", b.err)
	}
	return s, nil
}

// hueToRGB converts a hue in degrees to a moderately saturated RGB color
func hueToRGB(hue float64) core.Vec3 {
	h := math.Mod(hue, 360) / 60
	x := 1 - math.Abs(math.Mod(h, 2)-1)

	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = 1, x, 0
	case h < 2:
		r, g, b = x, 1, 0
	case h < 3:
		r, g, b = 0, 1, x
	case h < 4:
		r, g, b = 0, x, 1
	case h < 5:
		r, g, b = x, 0, 1
	default:
		r, g, b = 1, 0, x
	}

	// Blend toward white so metals stay bright
	return core.NewVec3(r, g, b).Multiply(0.6).Add(core.NewVec3(0.3, 0.3, 0.3))
}
