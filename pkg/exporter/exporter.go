// Package exporter writes rendered images as PPM, BMP or PNG files.
package exporter

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// Encoder writes an image to w in a specific file format
type Encoder func(w io.Writer, img image.Image) error

// Supported output formats
const (
	FormatPPM = "ppm"
	FormatBMP = "bmp"
	FormatPNG = "png"
)

// Formats lists the supported output formats
var Formats = []string{FormatPNG, FormatPPM, FormatBMP}

// ForFormat returns the encoder for a format name (case-insensitive)
func ForFormat(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case FormatPPM:
		return EncodePPM, nil
	case FormatBMP:
		return EncodeBMP, nil
	case FormatPNG:
		return EncodePNG, nil
	default:
		return nil, xerrors.Errorf("unknown output format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteFile encodes img into path, creating parent directories as needed
func WriteFile(path, format string, img image.Image) error {
	encode, err := ForFormat(format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return xerrors.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("creating %s: %w", path, err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return xerrors.Errorf("encoding %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return xerrors.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes img as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodePPM writes img as an ASCII PPM (P3): a header followed by one "R G B" line
// per pixel in row-major order from the top
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}

	return bw.Flush()
}

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpPixelOffset    = bmpFileHeaderSize + bmpInfoHeaderSize
	bmpPixelsPerMeter = 2835 // 72 DPI
)

// bmpHeader is the BITMAPFILEHEADER followed by the BITMAPINFOHEADER, little endian
type bmpHeader struct {
	Signature       [2]byte
	FileSize        uint32
	Reserved        uint32
	PixelOffset     uint32
	InfoSize        uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// EncodeBMP writes img as an uncompressed 24-bit BMP. The height is stored negative
// so rows are written top-down; each row is BGR and padded to a multiple of 4 bytes.
func EncodeBMP(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rowSize := (3*width + 3) &^ 3
	imageSize := rowSize * height

	header := bmpHeader{
		Signature:    [2]byte{'B', 'M'},
		FileSize:     uint32(bmpPixelOffset + imageSize),
		PixelOffset:  bmpPixelOffset,
		InfoSize:     bmpInfoHeaderSize,
		Width:        int32(width),
		Height:       -int32(height),
		Planes:       1,
		BitsPerPixel: 24,
		ImageSize:    uint32(imageSize),
		XPixelsPerM:  bmpPixelsPerMeter,
		YPixelsPerM:  bmpPixelsPerMeter,
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return xerrors.Errorf("writing BMP header: %w", err)
	}

	row := make([]byte, rowSize)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			i := 3 * (x - bounds.Min.X)
			row[i], row[i+1], row[i+2] = c.B, c.G, c.R
		}
		if _, err := bw.Write(row); err != nil {
			return xerrors.Errorf("writing BMP row %d: %w", y-bounds.Min.Y, err)
		}
	}

	return bw.Flush()
}
