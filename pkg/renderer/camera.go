package renderer

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
)

// Camera generates primary rays through a virtual canvas one unit in front
// of the eye, looking down -z before its transform is applied
type Camera struct {
	HSize      int
	VSize      int
	FOV        float64
	PixelSize  float64
	HalfWidth  float64
	HalfHeight float64

	transform core.Matrix
	inverse   core.Matrix
}

// NewCamera creates a camera for a canvas of hsize x vsize pixels with the
// given field of view in radians
func NewCamera(hsize, vsize int, fov float64) *Camera {
	halfView := math.Tan(fov / 2)
	aspect := float64(hsize) / float64(vsize)

	var halfWidth, halfHeight float64
	if aspect >= 1 {
		halfWidth = halfView
		halfHeight = halfView / aspect
	} else {
		halfWidth = halfView * aspect
		halfHeight = halfView
	}

	return &Camera{
		HSize:      hsize,
		VSize:      vsize,
		FOV:        fov,
		PixelSize:  halfWidth * 2 / float64(hsize),
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
		transform:  core.Identity(),
		inverse:    core.Identity(),
	}
}

// SetTransform sets the camera's view transform and caches its inverse
func (c *Camera) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// Transform returns the camera's view transform
func (c *Camera) Transform() core.Matrix {
	return c.transform
}

// RayForPixel returns the primary ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	return c.rayThrough(float64(px)+0.5, float64(py)+0.5)
}

// RayForSubpixel returns the primary ray through sub-cell (sx, sy) of an
// n x n supersampling grid over pixel (px, py)
func (c *Camera) RayForSubpixel(px, py, sx, sy, n int) core.Ray {
	fx := float64(px) + (float64(sx)+0.5)/float64(n)
	fy := float64(py) + (float64(sy)+0.5)/float64(n)
	return c.rayThrough(fx, fy)
}

// rayThrough maps fractional canvas coordinates to a world-space ray. The
// camera looks toward -z, so +x on the canvas is to the left.
func (c *Camera) rayThrough(fx, fy float64) core.Ray {
	worldX := c.HalfWidth - fx*c.PixelSize
	worldY := c.HalfHeight - fy*c.PixelSize

	pixel := c.inverse.MulTuple(core.NewPoint(worldX, worldY, -1))
	origin := c.inverse.MulTuple(core.NewPoint(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()
	return core.NewRay(origin, direction)
}
