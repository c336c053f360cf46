package scene

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/lights"
	"github.com/df07/go-raytracer-core/pkg/material"
)

func newTestScene(t *testing.T) (*Scene, int) {
	t.Helper()
	s := NewScene()
	idx, err := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	return s, idx
}

func TestScene_AddMaterial(t *testing.T) {
	s := NewScene()

	first, err := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil || first != 0 {
		t.Fatalf("Expected index 0, got %d (%v)", first, err)
	}
	second, err := s.AddMaterial(material.NewPlastic(core.NewVec3(0.2, 0.3, 0.4), 0.5))
	if err != nil || second != 1 {
		t.Fatalf("Expected index 1, got %d (%v)", second, err)
	}

	// Out-of-range parameters are rejected without consuming an index
	bad := &material.CookTorrance{Params: material.Params{BaseColor: core.NewVec3(2, 0, 0), Roughness: 0.5}}
	idx, err := s.AddMaterial(bad)
	if idx != NoIndex || !errors.Is(err, material.ErrBaseColorRange) {
		t.Errorf("Expected NoIndex and ErrBaseColorRange, got %d (%v)", idx, err)
	}
	if idx, err := s.AddMaterial(nil); idx != NoIndex || !errors.Is(err, ErrNilMaterial) {
		t.Errorf("Expected NoIndex and ErrNilMaterial, got %d (%v)", idx, err)
	}
	if len(s.Materials()) != 2 {
		t.Errorf("Expected 2 materials, got %d", len(s.Materials()))
	}
	if s.Material(1).Kind() != material.KindCookTorrance {
		t.Errorf("Expected material 1 to be Cook-Torrance")
	}
	if s.Material(5) != nil || s.Material(-1) != nil {
		t.Error("Expected nil for out-of-range material lookups")
	}
}

func TestScene_AddSphere_RejectsInvalid(t *testing.T) {
	s, mat := newTestScene(t)

	tests := []struct {
		name          string
		center        core.Vec3
		radius        float64
		materialIndex int
		expectedErr   error
	}{
		{"unknown material", core.NewVec3(0, 0, -5), 1, 1, ErrInvalidMaterialIndex},
		{"negative material", core.NewVec3(0, 0, -5), 1, -1, ErrInvalidMaterialIndex},
		{"zero radius", core.NewVec3(0, 0, -5), 0, mat, geometry.ErrInvalidRadius},
		{"negative radius", core.NewVec3(0, 0, -5), -2, mat, geometry.ErrInvalidRadius},
		{"NaN center", core.NewVec3(math.NaN(), 0, -5), 1, mat, geometry.ErrNonFiniteCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := s.AddSphere(tt.center, tt.radius, tt.materialIndex)
			if idx != NoIndex {
				t.Errorf("Expected NoIndex (-1), got %d", idx)
			}
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("Expected %v, got %v", tt.expectedErr, err)
			}
		})
	}

	if len(s.Shapes()) != 0 {
		t.Errorf("Expected rejected spheres to stay out of the scene, got %d shapes", len(s.Shapes()))
	}

	idx, err := s.AddSphere(core.NewVec3(0, 0, -5), 1, mat)
	if err != nil || idx != 0 {
		t.Errorf("Expected valid sphere at index 0, got %d (%v)", idx, err)
	}
}

func TestScene_AddShape_RejectsInvalidStruct(t *testing.T) {
	s, mat := newTestScene(t)

	// Constructed directly, bypassing NewSphere
	if idx, err := s.AddShape(&geometry.Sphere{Center: core.NewVec3(0, 0, 0), Radius: -1, Material: mat}); idx != NoIndex || err == nil {
		t.Errorf("Expected invalid sphere to be rejected, got %d (%v)", idx, err)
	}
	if idx, err := s.AddShape(nil); idx != NoIndex || !errors.Is(err, ErrNilShape) {
		t.Errorf("Expected ErrNilShape, got %d (%v)", idx, err)
	}
}

func TestScene_AddPlane(t *testing.T) {
	s, mat := newTestScene(t)

	if idx, err := s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), mat); idx != NoIndex || !errors.Is(err, geometry.ErrDegenerateNormal) {
		t.Errorf("Expected degenerate normal to be rejected, got %d (%v)", idx, err)
	}
	if idx, err := s.AddPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), 7); idx != NoIndex || !errors.Is(err, ErrInvalidMaterialIndex) {
		t.Errorf("Expected unknown material to be rejected, got %d (%v)", idx, err)
	}

	floor, err := s.AddPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), mat)
	if err != nil {
		t.Fatalf("AddPlane: %v", err)
	}
	sphere, _ := s.AddSphere(core.NewVec3(0, 0, -5), 1, mat)

	// The sphere sits in front of the floor along this ray
	if hit := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); hit.Primitive != sphere {
		t.Errorf("Expected sphere %d to be closest, got %d", sphere, hit.Primitive)
	}
	if hit := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, -0.1))); hit.Primitive != floor || math.Abs(hit.T-math.Sqrt(1.01)) > 1e-9 {
		t.Errorf("Expected floor %d at t=%g, got %d at t=%g", floor, math.Sqrt(1.01), hit.Primitive, hit.T)
	}
}

func TestScene_ChangesAfterAddDoNotReachScene(t *testing.T) {
	s, mat := newTestScene(t)

	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mat)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	idx, err := s.AddShape(sphere)
	if err != nil {
		t.Fatalf("AddShape: %v", err)
	}

	// Break the caller's copy after the add-time checks
	sphere.Material = 7
	sphere.Radius = -1
	sphere.Center = core.NewVec3(100, 100, 100)

	hit := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !hit.Hit || hit.Primitive != idx || math.Abs(hit.T-4) > 1e-12 {
		t.Fatalf("Expected the stored sphere to be unchanged, got %+v", hit)
	}
	if hit.Material != mat || s.Material(hit.Material) == nil {
		t.Errorf("Expected material %d to resolve, got %d", mat, hit.Material)
	}

	// Returned slices are copies
	shapes := s.Shapes()
	shapes[0] = &geometry.Sphere{Center: core.NewVec3(0, 0, -2), Radius: 1, Material: 99}
	if again := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))); again.Material != mat || math.Abs(again.T-4) > 1e-12 {
		t.Errorf("Expected slice replacement not to reach the scene, got %+v", again)
	}
	materials := s.Materials()
	materials[0] = nil
	if s.Material(mat) == nil {
		t.Error("Expected material slice replacement not to reach the scene")
	}

	albedo := material.NewLambertian(core.NewVec3(0.2, 0.2, 0.2))
	albedoIdx, err := s.AddMaterial(albedo)
	if err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	albedo.Albedo = core.NewVec3(5, 5, 5)
	if err := s.Material(albedoIdx).Validate(); err != nil {
		t.Errorf("Expected the stored material to keep its validated albedo, got %v", err)
	}

	light := lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 10)
	lightIdx, err := s.AddLight(light)
	if err != nil {
		t.Fatalf("AddLight: %v", err)
	}
	light.Intensity = -100
	if err := s.Light(lightIdx).Validate(); err != nil {
		t.Errorf("Expected the stored light to keep its validated intensity, got %v", err)
	}
	if s.NumLights() != 1 || s.Light(1) != nil || s.Light(-1) != nil {
		t.Errorf("Unexpected light lookups: %d lights", s.NumLights())
	}
}

func TestScene_AddLight(t *testing.T) {
	s := NewScene()

	if idx, err := s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 10); err != nil || idx != 0 {
		t.Fatalf("Expected light at index 0, got %d (%v)", idx, err)
	}
	if idx, err := s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(-1, 1, 1), 10); idx != NoIndex || !errors.Is(err, lights.ErrNegativeColor) {
		t.Errorf("Expected negative color to be rejected, got %d (%v)", idx, err)
	}
	if idx, err := s.AddPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), -3); idx != NoIndex || !errors.Is(err, lights.ErrNegativeIntensity) {
		t.Errorf("Expected negative intensity to be rejected, got %d (%v)", idx, err)
	}
	if idx, err := s.AddLight(nil); idx != NoIndex || !errors.Is(err, ErrNilLight) {
		t.Errorf("Expected ErrNilLight, got %d (%v)", idx, err)
	}
	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}
}

func TestScene_SetCamera(t *testing.T) {
	s := NewScene()

	config := geometry.DefaultCameraConfig()
	config.LookAt = config.Center
	if err := s.SetCamera(config); !errors.Is(err, geometry.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}

	config = geometry.DefaultCameraConfig()
	config.VFov = 70
	if err := s.SetCamera(config); err != nil {
		t.Fatalf("Expected valid camera, got %v", err)
	}
	if s.Camera().VerticalFOV() != 70 {
		t.Errorf("Expected camera to be replaced, got vfov %g", s.Camera().VerticalFOV())
	}
}

func TestScene_Hit_Analytic(t *testing.T) {
	s, mat := newTestScene(t)
	near, _ := s.AddSphere(core.NewVec3(0, 0, -5), 1, mat)
	_, _ = s.AddSphere(core.NewVec3(0, 0, -10), 1, mat)

	hit := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !hit.Hit {
		t.Fatal("Expected hit")
	}
	if hit.Primitive != near || hit.Material != mat {
		t.Errorf("Expected primitive %d material %d, got %d %d", near, mat, hit.Primitive, hit.Material)
	}
	if math.Abs(hit.T-4) > 1e-12 {
		t.Errorf("Expected t=4, got %g", hit.T)
	}
	if !hit.Point.ApproxEqual(core.NewVec3(0, 0, -4), 1e-12) || !hit.Normal.ApproxEqual(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Unexpected point %v / normal %v", hit.Point, hit.Normal)
	}
}

func TestScene_Hit_Miss(t *testing.T) {
	s, mat := newTestScene(t)
	_, _ = s.AddSphere(core.NewVec3(0, 0, -5), 1, mat)

	miss := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	if miss.Hit {
		t.Fatal("Expected miss")
	}
	if miss.Material != NoIndex || miss.Primitive != NoIndex {
		t.Errorf("Expected null references on a miss, got material %d primitive %d", miss.Material, miss.Primitive)
	}

	empty := NewScene()
	if empty.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))).Hit {
		t.Error("Expected miss in an empty scene")
	}
}

// oracleClosest intersects every sphere with the textbook quadratic formula
func oracleClosest(spheres []*geometry.Sphere, ray core.Ray) (int, float64) {
	best := NoIndex
	bestT := math.Inf(1)
	for i, s := range spheres {
		oc := ray.Origin.Subtract(s.Center)
		a := ray.Direction.Dot(ray.Direction)
		b := 2 * oc.Dot(ray.Direction)
		c := oc.Dot(oc) - s.Radius*s.Radius
		disc := b*b - 4*a*c
		if disc < 0 {
			continue
		}
		for _, t := range []float64{(-b - math.Sqrt(disc)) / (2 * a), (-b + math.Sqrt(disc)) / (2 * a)} {
			if t > core.SelfIntersectionEpsilon && t < bestT {
				best, bestT = i, t
				break
			}
		}
	}
	return best, bestT
}

func TestScene_Hit_MatchesBruteForceOracle(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randomIn := func(lo, hi float64) float64 { return lo + random.Float64()*(hi-lo) }

	for config := 0; config < 1000; config++ {
		s, mat := newTestScene(t)

		var spheres []*geometry.Sphere
		count := 1 + random.Intn(30)
		for attempts := 0; len(spheres) < count && attempts < 500; attempts++ {
			center := core.NewVec3(randomIn(-10, 10), randomIn(-10, 10), randomIn(-10, 10))
			radius := randomIn(0.2, 2)

			overlaps := false
			for _, other := range spheres {
				if center.Subtract(other.Center).Length() < radius+other.Radius {
					overlaps = true
					break
				}
			}
			if overlaps {
				continue
			}

			sphere, err := geometry.NewSphere(center, radius, mat)
			if err != nil {
				t.Fatalf("NewSphere: %v", err)
			}
			if _, err := s.AddShape(sphere); err != nil {
				t.Fatalf("AddShape: %v", err)
			}
			spheres = append(spheres, sphere)
		}

		origin := core.NewVec3(randomIn(-15, 15), randomIn(-15, 15), randomIn(-15, 15))
		var direction core.Vec3
		if random.Intn(2) == 0 {
			// Aim at a random sphere so most rays hit something
			target := spheres[random.Intn(len(spheres))]
			direction = target.Center.Subtract(origin)
		} else {
			direction = core.NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64())
		}
		ray := core.NewRay(origin, direction)

		expected, expectedT := oracleClosest(spheres, ray)
		got := s.Hit(ray)

		if expected == NoIndex {
			if got.Hit {
				t.Fatalf("config %d: oracle reports miss, scene hit primitive %d at t=%g", config, got.Primitive, got.T)
			}
			continue
		}
		if !got.Hit || got.Primitive != expected {
			t.Fatalf("config %d: expected primitive %d at t=%g, got hit=%t primitive %d at t=%g",
				config, expected, expectedT, got.Hit, got.Primitive, got.T)
		}
		if math.Abs(got.T-expectedT) > 1e-7*(1+expectedT) {
			t.Fatalf("config %d: expected t=%g, got t=%g", config, expectedT, got.T)
		}
	}
}

func TestScene_SecondaryRayDoesNotSelfIntersect(t *testing.T) {
	s, mat := newTestScene(t)
	idx, _ := s.AddSphere(core.NewVec3(0, 0, -5), 1, mat)

	random := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, 0)
		primary := s.Hit(core.NewRay(origin, core.NewVec3(0, 0, -5).Subtract(origin)))
		if !primary.Hit {
			continue
		}

		secondary := s.Hit(core.NewRay(primary.Point, primary.Normal))
		if secondary.Hit && secondary.Primitive == idx {
			t.Fatalf("secondary ray re-hit its origin sphere at t=%g", secondary.T)
		}
	}
}

func TestScene_Occluded(t *testing.T) {
	s, mat := newTestScene(t)
	_, _ = s.AddSphere(core.NewVec3(0, 2, 0), 0.5, mat)

	origin := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	if !s.Occluded(origin, up, 10) {
		t.Error("Expected sphere to occlude a light above it")
	}
	if s.Occluded(origin, up, 1) {
		t.Error("Expected light in front of the sphere to be visible")
	}
	if s.Occluded(origin, core.NewVec3(1, 0, 0), 10) {
		t.Error("Expected sideways direction to be unoccluded")
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q): %v", name, err)
			}
			if len(s.Shapes()) == 0 || len(s.Materials()) == 0 || len(s.Lights()) == 0 {
				t.Errorf("Expected shapes, materials and lights, got %d/%d/%d",
					len(s.Shapes()), len(s.Materials()), len(s.Lights()))
			}
			for i, shape := range s.Shapes() {
				if s.Material(shape.MaterialIndex()) == nil {
					t.Errorf("shape %d references missing material %d", i, shape.MaterialIndex())
				}
			}

			// Centre ray of the camera should hit something
			camera := s.Camera()
			config := camera.Config()
			hit := s.Hit(camera.GetRay(config.Width/2, config.Height/2, config.Width, config.Height))
			if !hit.Hit {
				t.Error("Expected the centre pixel to hit geometry")
			}
		})
	}

	if _, err := Builtin("nonexistent"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestBuiltin_CameraOverride(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	if s.Camera().AspectRatio() != 1.0 {
		t.Errorf("Expected overridden aspect ratio 1, got %g", s.Camera().AspectRatio())
	}
}
