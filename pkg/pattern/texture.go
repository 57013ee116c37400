package pattern

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	_ "github.com/ftrvxmtrx/tga"    // TGA decoder
	_ "golang.org/x/image/bmp"      // BMP decoder
	_ "golang.org/x/image/tiff"     // TIFF decoder

	"github.com/jsheldon/rray/pkg/core"
)

// Projection selects how a pattern-space point maps to texture coordinates
type Projection int

const (
	// ProjectPlanar maps the xz plane onto the texture, tiling each unit square
	ProjectPlanar Projection = iota
	// ProjectSpherical maps latitude/longitude of the point onto the texture
	ProjectSpherical
)

// Texture holds decoded image data sampled by image patterns
type Texture struct {
	Width      int
	Height     int
	Projection Projection
	pixels     []core.Color
}

// LoadTexture reads and decodes an image file. The format is detected from
// the file header; PNG, JPEG, TGA, BMP and TIFF are supported.
func LoadTexture(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return NewTextureFromImage(img), nil
}

// NewTextureFromImage converts a decoded image into a sampleable texture
func NewTextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return &Texture{Width: width, Height: height, pixels: pixels}
}

// Project maps a pattern-space point to (u, v) texture coordinates in [0, 1]
func (t *Texture) Project(p core.Tuple) (float64, float64) {
	switch t.Projection {
	case ProjectSpherical:
		theta := math.Atan2(p.X, p.Z)
		radius := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
		if radius < core.Epsilon {
			return 0, 0
		}
		phi := math.Acos(p.Y / radius)
		u := 1 - (theta/(2*math.Pi) + 0.5)
		v := 1 - phi/math.Pi
		return u, v
	default:
		u := p.X - math.Floor(p.X)
		v := p.Z - math.Floor(p.Z)
		return u, v
	}
}

// Sample bilinearly interpolates the texture at (u, v). v=0 addresses the
// bottom row of the image.
func (t *Texture) Sample(u, v float64) core.Color {
	u = min(1, max(0, u))
	v = min(1, max(0, v))

	// v=0 is the bottom of the image, rows are stored top-down
	fx := u * float64(t.Width-1)
	fy := (1 - v) * float64(t.Height-1)

	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	top := t.at(x0, y0).Scale(1 - dx).Add(t.at(x1, y0).Scale(dx))
	bottom := t.at(x0, y1).Scale(1 - dx).Add(t.at(x1, y1).Scale(dx))
	return top.Scale(1 - dy).Add(bottom.Scale(dy))
}

func (t *Texture) at(x, y int) core.Color {
	return t.pixels[y*t.Width+x]
}
