package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Frame holds per-pixel results in row-major order, y = 0 at the top
type Frame struct {
	Width  int
	Height int
	Pixels []PixelResult
}

// NewFrame creates a frame with every pixel set to a miss
func NewFrame(width, height int) *Frame {
	pixels := make([]PixelResult, width*height)
	for i := range pixels {
		pixels[i].Distance = math.Inf(1)
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the result for pixel (x, y)
func (f *Frame) At(x, y int) PixelResult {
	return f.Pixels[y*f.Width+x]
}

// Set stores the result for pixel (x, y)
func (f *Frame) Set(x, y int, result PixelResult) {
	f.Pixels[y*f.Width+x] = result
}

// ToRGBA converts linear radiance to 8-bit color with gamma 2 and clamping
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.At(x, y).Radiance))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// NaN survives Clamp and converts to an undefined byte; treat any
	// non-finite channel as black
	colorVec = core.NewVec3(finiteOrZero(colorVec.X), finiteOrZero(colorVec.Y), finiteOrZero(colorVec.Z))

	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

func finiteOrZero(v float64) float64 {
	if !core.IsFinite(v) {
		return 0
	}
	return v
}

// AverageLuminance returns the mean linear luminance of the frame
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range f.Pixels {
		total += p.Radiance.Luminance()
	}
	return total / float64(len(f.Pixels))
}
