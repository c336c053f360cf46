package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	HitPixels    int           // Pixels whose centre ray hit geometry
	TotalSamples int           // Total number of camera rays traced
	Tiles        int           // Tiles completed
	Elapsed      time.Duration // Wall-clock render time
}

// Add accumulates the counts of other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.TotalSamples += other.TotalSamples
	s.Tiles += other.Tiles
	s.Elapsed += other.Elapsed
}

// AverageSamples returns the mean samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// HitFraction returns the share of pixels that hit geometry
func (s RenderStats) HitFraction() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
