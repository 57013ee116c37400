package shape

import (
	"math"
	"testing"

	"github.com/jsheldon/rray/pkg/core"
)

func TestCylinder_Miss(t *testing.T) {
	c := NewInfiniteCylinder()

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
	}{
		{"on the surface pointing up", core.NewPoint(1, 0, 0), core.NewVector(0, 1, 0)},
		{"inside pointing up", core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0)},
		{"askew", core.NewPoint(0, 0, -5), core.NewVector(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction.Normalize())
			if xs := c.Intersect(ray); len(xs) != 0 {
				t.Errorf("Expected miss, got %d intersections", len(xs))
			}
		})
	}
}

func TestCylinder_Hit(t *testing.T) {
	c := NewInfiniteCylinder()

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		expected  []float64
	}{
		{"tangent", core.NewPoint(1, 0, -5), core.NewVector(0, 0, 1), []float64{5}},
		{"through the center", core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1), []float64{4, 6}},
		{"at an angle", core.NewPoint(0.5, 0, -5), core.NewVector(0.1, 1, 1), []float64{6.80798, 7.08872}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction.Normalize())
			xs := c.Intersect(ray)
			if tt.name == "tangent" {
				// A tangent ray yields a doubled root
				if len(xs) != 2 || math.Abs(xs[0].T-5) > core.Epsilon {
					t.Fatalf("Expected doubled t=5, got %v", xs)
				}
				return
			}
			assertTs(t, xs, tt.expected)
		})
	}
}

func TestCylinder_Truncated(t *testing.T) {
	c := NewCylinder(1, 2, false)

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		count     int
	}{
		{"diagonal escape", core.NewPoint(0, 1.5, 0), core.NewVector(0.1, 1, 0), 0},
		{"above", core.NewPoint(0, 3, -5), core.NewVector(0, 0, 1), 0},
		{"below", core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1), 0},
		{"at the maximum", core.NewPoint(0, 2, -5), core.NewVector(0, 0, 1), 0},
		{"at the minimum", core.NewPoint(0, 1, -5), core.NewVector(0, 0, 1), 0},
		{"through the middle", core.NewPoint(0, 1.5, -2), core.NewVector(0, 0, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction.Normalize())
			if xs := c.Intersect(ray); len(xs) != tt.count {
				t.Errorf("Expected %d intersections, got %d", tt.count, len(xs))
			}
		})
	}
}

func TestCylinder_Capped(t *testing.T) {
	c := NewCylinder(1, 2, true)

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		count     int
	}{
		{"down the axis", core.NewPoint(0, 3, 0), core.NewVector(0, -1, 0), 2},
		{"diagonal through cap and wall", core.NewPoint(0, 3, -2), core.NewVector(0, -1, 2), 2},
		{"diagonal through cap and corner", core.NewPoint(0, 4, -2), core.NewVector(0, -1, 1), 2},
		{"up through cap and wall", core.NewPoint(0, 0, -2), core.NewVector(0, 1, 2), 2},
		{"up through cap and corner", core.NewPoint(0, -1, -2), core.NewVector(0, 1, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction.Normalize())
			if xs := c.Intersect(ray); len(xs) != tt.count {
				t.Errorf("Expected %d intersections, got %d", tt.count, len(xs))
			}
		})
	}
}

func TestCylinder_NormalAt(t *testing.T) {
	c := NewInfiniteCylinder()
	tests := []struct {
		point    core.Tuple
		expected core.Tuple
	}{
		{core.NewPoint(1, 0, 0), core.NewVector(1, 0, 0)},
		{core.NewPoint(0, 5, -1), core.NewVector(0, 0, -1)},
		{core.NewPoint(0, -2, 1), core.NewVector(0, 0, 1)},
		{core.NewPoint(-1, 1, 0), core.NewVector(-1, 0, 0)},
	}
	for _, tt := range tests {
		if got := c.NormalAt(tt.point, Intersection{}); !got.Equals(tt.expected) {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestCylinder_CapNormals(t *testing.T) {
	c := NewCylinder(1, 2, true)
	tests := []struct {
		point    core.Tuple
		expected core.Tuple
	}{
		{core.NewPoint(0, 1, 0), core.NewVector(0, -1, 0)},
		{core.NewPoint(0.5, 1, 0), core.NewVector(0, -1, 0)},
		{core.NewPoint(0, 2, 0), core.NewVector(0, 1, 0)},
		{core.NewPoint(0.5, 2, 0), core.NewVector(0, 1, 0)},
	}
	for _, tt := range tests {
		if got := c.NormalAt(tt.point, Intersection{}); !got.Equals(tt.expected) {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}
