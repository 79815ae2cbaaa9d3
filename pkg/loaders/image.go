package loaders

import (
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/xerrors"
)

// ImagesEnvVar names a directory FindImage searches before the default locations
const ImagesEnvVar = "RTW_IMAGES"

// maxParentLevels is how many ../images directories FindImage climbs through
const maxParentLevels = 6

// ErrImageNotFound is returned when no candidate location holds a loadable image
var ErrImageNotFound = xerrors.New("image not found")

// ImageData contains loaded image data as packed linear RGB bytes
type ImageData struct {
	Width  int
	Height int
	Pixels []byte // Row-major, 3 bytes per pixel
}

// BytesPerPixel is the number of bytes for each pixel in ImageData.Pixels
const BytesPerPixel = 3

// PixelAt returns the RGB bytes of the pixel at x,y with coordinates clamped to the image
func (d *ImageData) PixelAt(x, y int) (r, g, b byte) {
	x = max(0, min(x, d.Width-1))
	y = max(0, min(y, d.Height-1))
	offset := (y*d.Width + x) * BytesPerPixel
	return d.Pixels[offset], d.Pixels[offset+1], d.Pixels[offset+2]
}

// LoadImage decodes a PNG, JPEG, GIF or BMP image. Stored sRGB values are
// converted to linear intensity (gamma 2.2) before being packed into bytes.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, width*height*BytesPerPixel)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels = append(pixels, linearByte(r), linearByte(g), linearByte(b))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// FindImage searches the candidate locations for name in order and loads the first
// one that decodes. The RTW_IMAGES directory, when set, is tried first.
func FindImage(name string) (*ImageData, error) {
	for _, candidate := range CandidatePaths(name) {
		if data, err := LoadImage(candidate); err == nil {
			return data, nil
		}
	}
	return nil, xerrors.Errorf("couldn't find image %q: %w", name, ErrImageNotFound)
}

// CandidatePaths lists the locations FindImage tries, in order
func CandidatePaths(name string) []string {
	var candidates []string
	if dir := os.Getenv(ImagesEnvVar); dir != "" {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	candidates = append(candidates, name, filepath.Join("images", name))
	prefix := ""
	for i := 0; i < maxParentLevels; i++ {
		prefix = filepath.Join(prefix, "..")
		candidates = append(candidates, filepath.Join(prefix, "images", name))
	}
	return candidates
}

func linearByte(channel uint32) byte {
	value := math.Pow(float64(channel)/65535.0, 2.2)
	if value <= 0 {
		return 0
	}
	if value >= 1 {
		return 255
	}
	return byte(256 * value)
}
