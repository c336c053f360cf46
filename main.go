package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
	"github.com/df07/go-raytracer-core/pkg/integrator"
	"github.com/df07/go-raytracer-core/pkg/renderer"
	"github.com/df07/go-raytracer-core/pkg/scene"
)

// Config holds command line options
type Config struct {
	SceneType       string
	Width           int
	Height          int
	SamplesPerPixel int
	TileSize        int
	Seed            int64
	Shadows         bool
	Verbose         bool
	OutputDir       string
	Help            bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	fmt.Println("Starting Raytracer...")

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene type: "+strings.Join(scene.BuiltinNames(), ", "))
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels, given with -height (0 uses the scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels, given with -width (0 uses the scene default)")
	flag.IntVar(&config.SamplesPerPixel, "spp", 1, "Samples per pixel (1 traces pixel centres only)")
	flag.IntVar(&config.TileSize, "tile", 64, "Tile size in pixels")
	flag.Int64Var(&config.Seed, "seed", 42, "Seed for sub-pixel jitter")
	flag.BoolVar(&config.Shadows, "shadows", true, "Trace shadow rays toward each light")
	flag.BoolVar(&config.Verbose, "verbose", false, "Log per-tile progress")
	flag.StringVar(&config.OutputDir, "out", "output", "Output root directory")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  default    - Diffuse, plastic and metal spheres on a ground sphere")
	fmt.Println("  spheregrid - 10x10 Cook-Torrance grid, roughness along X and metallic along Z")
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene_type>/render_<timestamp>.png")
}

// checkResolution accepts either both dimensions or neither (0 keeps the scene default)
func checkResolution(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("resolution %dx%d must not be negative", width, height)
	}
	if (width > 0) != (height > 0) {
		return fmt.Errorf("-width and -height must be given together, got %dx%d", width, height)
	}
	return nil
}

// createScene builds a built-in scene, overriding the camera resolution when given
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	if err := checkResolution(width, height); err != nil {
		return nil, err
	}
	if width > 0 && height > 0 {
		return scene.Builtin(sceneType, geometry.CameraConfig{Width: width, Height: height})
	}
	return scene.Builtin(sceneType)
}

// renderConfig resolves the image size from the flags, falling back to the scene
// camera when neither dimension is given
func renderConfig(config Config, s *scene.Scene, logger core.Logger) renderer.Config {
	width, height := config.Width, config.Height
	if width == 0 && height == 0 {
		cameraConfig := s.Camera().Config()
		width, height = cameraConfig.Width, cameraConfig.Height
	}

	return renderer.MergeConfig(renderer.DefaultConfig(), renderer.Config{
		Width:           width,
		Height:          height,
		TileSize:        config.TileSize,
		SamplesPerPixel: config.SamplesPerPixel,
		Seed:            config.Seed,
		Debug:           core.DebugOptions{Verbose: config.Verbose, Logger: logger},
	})
}

func run(config Config) error {
	fmt.Printf("Using %s scene...\n", config.SceneType)
	selectedScene, err := createScene(config.SceneType, config.Width, config.Height)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	debug := core.DebugOptions{Verbose: config.Verbose, Logger: logger}
	if selectedScene.Camera().UsedFallbackUp() {
		debug.Logf("Camera up vector is parallel to the view direction; using fallback basis\n")
	}

	integ := integrator.NewDirectLightingIntegrator(integrator.Options{
		Shadows: config.Shadows,
		Debug:   debug,
	})

	raytracer, err := renderer.NewRaytracer(selectedScene, integ, renderConfig(config, selectedScene, logger))
	if err != nil {
		return err
	}

	// Create output directory for this scene type
	outputDir := filepath.Join(config.OutputDir, config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render interrupted after %d tiles: %w", stats.Tiles, err)
	}

	fmt.Printf("Render completed in %v\n", stats.Elapsed)
	fmt.Printf("Pixels: %d (%.1f%% hit), samples per pixel: %.1f, tiles: %d\n",
		stats.TotalPixels, 100*stats.HitFraction(), stats.AverageSamples(), stats.Tiles)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, frame); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func savePNG(filename string, frame *renderer.Frame) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, frame.ToRGBA()); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}
