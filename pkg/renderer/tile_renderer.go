package renderer

import (
	"image"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Tile represents a rectangular region of the image
type Tile struct {
	ID      int             // Unique tile identifier, row-major
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Sampler core.Sampler    // Tile-specific sampler for deterministic jitter
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles into a shared frame
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{raytracer: raytracer}
}

// RenderTile renders pixels within the tile bounds into frame
func (tr *TileRenderer) RenderTile(tile *Tile, frame *Frame) RenderStats {
	bounds := tile.Bounds
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Tiles:       1,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			result := tr.raytracer.RenderPixel(i, j, tile.Sampler)
			frame.Set(i, j, result)

			stats.TotalSamples += tr.raytracer.config.SamplesPerPixel
			if result.Hit {
				stats.HitPixels++
			}
		}
	}

	return stats
}
