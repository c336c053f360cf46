package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/integrator"
	"github.com/df07/go-raytracer-core/pkg/scene"
)

// ErrInvalidConfig is returned for unusable render settings
var ErrInvalidConfig = errors.New("invalid render config")

// aspectRatioTolerance is the relative difference below which a camera aspect
// ratio is taken to match the render resolution
const aspectRatioTolerance = 1e-9

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	TileSize        int   // Edge length of a square render tile
	SamplesPerPixel int   // 1 traces the exact pixel centre; more jitter within the pixel
	Seed            int64 // Base seed for per-tile samplers
	Debug           core.DebugOptions
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		TileSize:        64,
		SamplesPerPixel: 1,
		Seed:            42,
	}
}

// MergeConfig overlays the non-zero fields of override onto base
func MergeConfig(base, override Config) Config {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.TileSize != 0 {
		result.TileSize = override.TileSize
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.Debug.Verbose || override.Debug.Logger != nil {
		result.Debug = override.Debug
	}
	return result
}

// Validate checks that the configuration can produce an image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	}
	return nil
}

// PixelResult holds the shaded value of one pixel and its primary-ray diagnostics
type PixelResult struct {
	Radiance core.Vec3 // Mean linear radiance over all samples
	Hit      bool      // Whether the pixel-centre ray hit geometry
	Distance float64   // Hit distance along the centre ray, +Inf on a miss
	Normal   core.Vec3 // Outward surface normal at the centre hit
}

// Raytracer drives an integrator over every pixel of the scene camera
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *geometry.Camera // Scene camera with its aspect ratio taken from the render resolution
	config     Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config Config) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}
	if integ == nil {
		return nil, fmt.Errorf("%w: nil integrator", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		scene:      s,
		integrator: integ,
		camera:     renderCamera(s.Camera(), config),
		config:     config,
	}, nil
}

// renderCamera rebuilds the scene camera for the render resolution so pixels
// stay square whatever aspect ratio the scene camera was built with
func renderCamera(camera *geometry.Camera, config Config) *geometry.Camera {
	resolution := float64(config.Width) / float64(config.Height)
	if math.Abs(camera.AspectRatio()-resolution) <= aspectRatioTolerance*resolution {
		return camera
	}

	config.Debug.Logf("Camera aspect ratio %.4f does not match %dx%d; using %.4f\n",
		camera.AspectRatio(), config.Width, config.Height, resolution)
	return geometry.NewCamera(geometry.MergeCameraConfig(camera.Config(), geometry.CameraConfig{
		Width:  config.Width,
		Height: config.Height,
	}))
}

// Camera returns the camera primary rays are generated from
func (rt *Raytracer) Camera() *geometry.Camera {
	return rt.camera
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RenderPixel shades pixel (px, py). Extra samples beyond the first are
// jittered within the pixel using sampler; diagnostics come from the centre ray.
func (rt *Raytracer) RenderPixel(px, py int, sampler core.Sampler) PixelResult {
	camera := rt.camera
	width, height := rt.config.Width, rt.config.Height

	colorAccum, hit := rt.integrator.RayColor(camera.GetRay(px, py, width, height), rt.scene)

	for sample := 1; sample < rt.config.SamplesPerPixel; sample++ {
		ray := camera.GetRayOffset(px, py, width, height, sampler.Get2D())
		color, _ := rt.integrator.RayColor(ray, rt.scene)
		colorAccum = colorAccum.Add(color)
	}

	return PixelResult{
		Radiance: colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel)),
		Hit:      hit.Hit,
		Distance: hit.T,
		Normal:   hit.Normal,
	}
}

// Render traces every tile in order and returns the finished frame.
// Cancellation is checked between tiles; a cancelled render returns the
// context error and the partially filled frame.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)
	tileRenderer := NewTileRenderer(rt)

	rt.config.Debug.Logf("Rendering %dx%d in %d tiles at %d samples per pixel...\n",
		rt.config.Width, rt.config.Height, len(tiles), rt.config.SamplesPerPixel)

	var stats RenderStats
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return frame, stats, err
		}

		tileStats := tileRenderer.RenderTile(tile, frame)
		stats.Add(tileStats)
		rt.config.Debug.Logf("Tile %d/%d %v: %d of %d pixels hit\n",
			tile.ID+1, len(tiles), tile.Bounds, tileStats.HitPixels, tileStats.TotalPixels)
	}

	stats.Elapsed = time.Since(start)
	rt.config.Debug.Logf("Render completed in %v\n", stats.Elapsed)
	return frame, stats, nil
}
