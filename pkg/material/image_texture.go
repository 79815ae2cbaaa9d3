package material

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/loaders"
)

// missingTextureColor is returned by textures that have no image data
var missingTextureColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromData converts loaded RGB bytes into a texture
func NewImageTextureFromData(data *loaders.ImageData) *ImageTexture {
	const colorScale = 1.0 / 255.0
	pixels := make([]core.Vec3, data.Width*data.Height)
	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			r, g, b := data.PixelAt(x, y)
			pixels[y*data.Width+x] = core.NewVec3(float64(r), float64(g), float64(b)).Multiply(colorScale)
		}
	}
	return NewImageTexture(data.Width, data.Height, pixels)
}

// NewImageTextureFromFile looks name up with loaders.FindImage. A missing or
// undecodable image is logged and yields an empty texture that renders cyan.
func NewImageTextureFromFile(name string, logger core.Logger) *ImageTexture {
	data, err := loaders.FindImage(name)
	if err != nil {
		if logger != nil {
			logger.Printf("texture %s unavailable, using fallback color: %v\n", name, err)
		}
		return &ImageTexture{}
	}
	return NewImageTextureFromData(data)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Height <= 0 || t.Width <= 0 || len(t.Pixels) < t.Width*t.Height {
		return missingTextureColor
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - unit.Clamp(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
