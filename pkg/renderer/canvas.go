package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/jsheldon/rray/pkg/core"
)

// Canvas is the render target: a float-valued image. Colors stay unclamped
// until encoding.
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// WritePixel sets the color at (x, y)
func (c *Canvas) WritePixel(x, y int, color core.Color) {
	c.pixels[y*c.Width+x] = color
}

// PixelAt returns the color at (x, y)
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[y*c.Width+x]
}

// ToImage converts the canvas to an 8-bit RGBA image, clamping each channel
// to [0, 1] and scaling to 255
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			color := c.PixelAt(x, y).Clamp()
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(color.R*255 + 0.5)
			img.Pix[i+1] = uint8(color.G*255 + 0.5)
			img.Pix[i+2] = uint8(color.B*255 + 0.5)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// EncodePNG writes the canvas as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}

// EncodeWebP writes the canvas as lossless WebP
func (c *Canvas) EncodeWebP(w io.Writer) error {
	return nativewebp.Encode(w, c.ToImage(), nil)
}

// WriteFile encodes the canvas to the given path, choosing the format from
// the extension: .webp for WebP, anything else for PNG.
func (c *Canvas) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: create %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		err = c.EncodeWebP(file)
	default:
		err = c.EncodePNG(file)
	}
	if err != nil {
		return fmt.Errorf("canvas: encode %s: %w", path, err)
	}
	return nil
}

// Preview returns the canvas image downscaled so its longest side is at most
// target pixels, using CatmullRom resampling. The full-size image is
// returned unchanged when it already fits.
func (c *Canvas) Preview(target int) image.Image {
	img := c.ToImage()
	if c.Width <= target && c.Height <= target {
		return img
	}

	w, h := c.Width, c.Height
	if w >= h {
		h = h * target / w
		w = target
	} else {
		w = w * target / h
		h = target
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WritePreview encodes a downscaled copy of the canvas next to path, with a
// "_preview" suffix before the extension. Always PNG.
func (c *Canvas) WritePreview(path string, target int) (string, error) {
	ext := filepath.Ext(path)
	previewPath := strings.TrimSuffix(path, ext) + "_preview.png"

	file, err := os.Create(previewPath)
	if err != nil {
		return "", fmt.Errorf("canvas: create %s: %w", previewPath, err)
	}
	defer file.Close()

	if err := png.Encode(file, c.Preview(target)); err != nil {
		return "", fmt.Errorf("canvas: encode %s: %w", previewPath, err)
	}
	return previewPath, nil
}
