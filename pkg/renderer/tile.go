package renderer

import (
	"image"

	"github.com/iommu/raytracing/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int
	Bounds          image.Rectangle     // Pixel bounds of this tile
	PassesCompleted int                 // Number of passes rendered into this tile
	Sampler         *core.RandomSampler // Random stream owned by this tile
}

// NewTile creates a tile whose random stream is seeded from baseSeed and its ID,
// so a tile always draws the same sequence no matter which worker renders it
func NewTile(id int, bounds image.Rectangle, baseSeed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(baseSeed + int64(id)),
	}
}

// NewTileGrid splits the image into tiles of at most tileSize x tileSize pixels,
// numbered row-major from the top-left
func NewTileGrid(width, height, tileSize int, baseSeed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	id := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			bounds := image.Rect(
				tx*tileSize,
				ty*tileSize,
				min((tx+1)*tileSize, width),
				min((ty+1)*tileSize, height),
			)
			tiles = append(tiles, NewTile(id, bounds, baseSeed))
			id++
		}
	}

	return tiles
}
