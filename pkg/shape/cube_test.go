package shape

import (
	"testing"

	"github.com/jsheldon/rray/pkg/core"
)

func TestCube_Intersect(t *testing.T) {
	c := NewCube()

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		expected  []float64
	}{
		{"+x face", core.NewPoint(5, 0.5, 0), core.NewVector(-1, 0, 0), []float64{4, 6}},
		{"-x face", core.NewPoint(-5, 0.5, 0), core.NewVector(1, 0, 0), []float64{4, 6}},
		{"+y face", core.NewPoint(0.5, 5, 0), core.NewVector(0, -1, 0), []float64{4, 6}},
		{"-y face", core.NewPoint(0.5, -5, 0), core.NewVector(0, 1, 0), []float64{4, 6}},
		{"+z face", core.NewPoint(0.5, 0, 5), core.NewVector(0, 0, -1), []float64{4, 6}},
		{"-z face", core.NewPoint(0.5, 0, -5), core.NewVector(0, 0, 1), []float64{4, 6}},
		{"from inside", core.NewPoint(0, 0.5, 0), core.NewVector(0, 0, 1), []float64{-1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := c.Intersect(core.NewRay(tt.origin, tt.direction))
			assertTs(t, xs, tt.expected)
		})
	}
}

func TestCube_Miss(t *testing.T) {
	c := NewCube()

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
	}{
		{"diagonal 1", core.NewPoint(-2, 0, 0), core.NewVector(0.2673, 0.5345, 0.8018)},
		{"diagonal 2", core.NewPoint(0, -2, 0), core.NewVector(0.8018, 0.2673, 0.5345)},
		{"diagonal 3", core.NewPoint(0, 0, -2), core.NewVector(0.5345, 0.8018, 0.2673)},
		{"parallel to z", core.NewPoint(2, 0, 2), core.NewVector(0, 0, -1)},
		{"parallel to y", core.NewPoint(0, 2, 2), core.NewVector(0, -1, 0)},
		{"parallel to x", core.NewPoint(2, 2, 0), core.NewVector(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if xs := c.Intersect(core.NewRay(tt.origin, tt.direction)); len(xs) != 0 {
				t.Errorf("Expected miss, got %d intersections", len(xs))
			}
		})
	}
}

func TestCube_NormalAt(t *testing.T) {
	c := NewCube()

	tests := []struct {
		point    core.Tuple
		expected core.Tuple
	}{
		{core.NewPoint(1, 0.5, -0.8), core.NewVector(1, 0, 0)},
		{core.NewPoint(-1, -0.2, 0.9), core.NewVector(-1, 0, 0)},
		{core.NewPoint(-0.4, 1, -0.1), core.NewVector(0, 1, 0)},
		{core.NewPoint(0.3, -1, -0.7), core.NewVector(0, -1, 0)},
		{core.NewPoint(-0.6, 0.3, 1), core.NewVector(0, 0, 1)},
		{core.NewPoint(0.4, 0.4, -1), core.NewVector(0, 0, -1)},
		{core.NewPoint(1, 1, 1), core.NewVector(1, 0, 0)},
		{core.NewPoint(-1, -1, -1), core.NewVector(-1, 0, 0)},
	}

	for _, tt := range tests {
		if got := c.NormalAt(tt.point, Intersection{}); !got.Equals(tt.expected) {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}
