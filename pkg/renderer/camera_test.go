package renderer

import (
	"math"
	"testing"

	"github.com/jsheldon/rray/pkg/core"
)

func TestCamera_PixelSize(t *testing.T) {
	c := NewCamera(200, 125, math.Pi/2)
	if !core.FloatEquals(c.PixelSize, 0.01) {
		t.Errorf("Expected pixel size 0.01 for a landscape canvas, got %v", c.PixelSize)
	}

	c = NewCamera(125, 200, math.Pi/2)
	if !core.FloatEquals(c.PixelSize, 0.01) {
		t.Errorf("Expected pixel size 0.01 for a portrait canvas, got %v", c.PixelSize)
	}
}

func TestCamera_RayThroughCenter(t *testing.T) {
	c := NewCamera(201, 101, math.Pi/2)
	r := c.RayForPixel(100, 50)
	if !r.Origin.Equals(core.NewPoint(0, 0, 0)) {
		t.Errorf("Expected origin (0,0,0), got %v", r.Origin)
	}
	if !r.Direction.Equals(core.NewVector(0, 0, -1)) {
		t.Errorf("Expected direction (0,0,-1), got %v", r.Direction)
	}
}

func TestCamera_RayThroughCorner(t *testing.T) {
	c := NewCamera(201, 101, math.Pi/2)
	r := c.RayForPixel(0, 0)
	if !r.Direction.Equals(core.NewVector(0.66519, 0.33259, -0.66851)) {
		t.Errorf("Expected (0.66519,0.33259,-0.66851), got %v", r.Direction)
	}
}

func TestCamera_RayWithTransformedCamera(t *testing.T) {
	c := NewCamera(201, 101, math.Pi/2)
	m := core.RotationY(math.Pi / 4).Mul(core.Translation(0, -2, 5))
	if err := c.SetTransform(m); err != nil {
		t.Fatal(err)
	}
	r := c.RayForPixel(100, 50)
	if !r.Origin.Equals(core.NewPoint(0, 2, -5)) {
		t.Errorf("Expected origin (0,2,-5), got %v", r.Origin)
	}
	if !r.Direction.Equals(core.NewVector(math.Sqrt2/2, 0, -math.Sqrt2/2)) {
		t.Errorf("Expected direction (sqrt2/2,0,-sqrt2/2), got %v", r.Direction)
	}
}

func TestCamera_SubpixelGrid(t *testing.T) {
	c := NewCamera(201, 101, math.Pi/2)

	// A 1x1 grid's only subpixel is the pixel center
	center := c.RayForPixel(100, 50)
	sub := c.RayForSubpixel(100, 50, 0, 0, 1)
	if !sub.Direction.Equals(center.Direction) {
		t.Errorf("1x1 subpixel must equal the center ray")
	}

	// Subpixels of a 2x2 grid straddle the center symmetrically
	a := c.RayForSubpixel(100, 50, 0, 0, 2)
	b := c.RayForSubpixel(100, 50, 1, 1, 2)
	mid := a.Direction.Add(b.Direction).Multiply(0.5).Normalize()
	if !mid.Equals(center.Direction) {
		t.Errorf("2x2 subpixels must straddle the center, mid %v", mid)
	}

	// Fixed offsets are deterministic
	if !a.Direction.Equals(c.RayForSubpixel(100, 50, 0, 0, 2).Direction) {
		t.Error("Subpixel rays must be deterministic")
	}
}

func TestCamera_SingularTransformRejected(t *testing.T) {
	c := NewCamera(10, 10, math.Pi/2)
	if err := c.SetTransform(core.Scaling(0, 0, 0)); err == nil {
		t.Error("Expected an error for a singular view transform")
	}
}
