// Package compose stacks the map layers and produces the output image.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// DefaultWidth is the width of every output image.
const DefaultWidth = 700

var ErrUnsupportedFormat = errors.New("compose: only .png output is supported")

// Compose pastes mask, then grid when given, over a copy of the contour
// raster using each layer's own alpha, and resizes the result to width.
func Compose(contour, mask, grid image.Image, width int) *image.RGBA {
	b := contour.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), contour, b.Min, draw.Src)
	if mask != nil {
		draw.Draw(out, out.Bounds(), mask, mask.Bounds().Min, draw.Over)
	}
	if grid != nil {
		draw.Draw(out, out.Bounds(), grid, grid.Bounds().Min, draw.Over)
	}
	return Resize(out, width)
}

// Resize scales img to width, keeping the aspect ratio: the height is
// round(h * width / w).
func Resize(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 {
		width = DefaultWidth
	}
	h := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	dst := image.NewRGBA(image.Rect(0, 0, width, max(h, 1)))
	if dst.Bounds().Size() == b.Size() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save writes img as PNG.
func Save(path string, img image.Image) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
