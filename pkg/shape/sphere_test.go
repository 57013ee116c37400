package shape

import (
	"math"
	"testing"

	"github.com/jsheldon/rray/pkg/core"
)

func TestSphere_Intersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		expected  []float64
	}{
		{
			name:      "through the center",
			origin:    core.NewPoint(0, 0, -5),
			direction: core.NewVector(0, 0, 1),
			expected:  []float64{4, 6},
		},
		{
			name:      "tangent",
			origin:    core.NewPoint(0, 1, -5),
			direction: core.NewVector(0, 0, 1),
			expected:  []float64{5, 5},
		},
		{
			name:      "miss",
			origin:    core.NewPoint(0, 2, -5),
			direction: core.NewVector(0, 0, 1),
			expected:  nil,
		},
		{
			name:      "from inside",
			origin:    core.NewPoint(0, 0, 0),
			direction: core.NewVector(0, 0, 1),
			expected:  []float64{-1, 1},
		},
		{
			name:      "behind the ray",
			origin:    core.NewPoint(0, 0, 5),
			direction: core.NewVector(0, 0, 1),
			expected:  []float64{-6, -4},
		},
	}

	s := NewSphere()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := s.Intersect(core.NewRay(tt.origin, tt.direction))
			assertTs(t, xs, tt.expected)
		})
	}
}

func TestSphere_IntersectSetsShape(t *testing.T) {
	s := NewSphere()
	xs := s.Intersect(core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)))
	if len(xs) != 2 || xs[0].S != s || xs[1].S != s {
		t.Fatalf("Intersections must reference the shape node")
	}
}

func TestSphere_TransformedIntersect(t *testing.T) {
	t.Run("scaled sphere", func(t *testing.T) {
		s := NewSphere()
		if err := s.SetTransform(core.Scaling(2, 2, 2)); err != nil {
			t.Fatalf("SetTransform failed: %v", err)
		}
		xs := s.Intersect(core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)))
		assertTs(t, xs, []float64{3, 7})
	})

	t.Run("translated sphere", func(t *testing.T) {
		s := NewSphere()
		if err := s.SetTransform(core.Translation(5, 0, 0)); err != nil {
			t.Fatalf("SetTransform failed: %v", err)
		}
		xs := s.Intersect(core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)))
		assertTs(t, xs, nil)
	})
}

// TestSphere_ComposedTransformOrder pins the descriptor composition: with
// the list [scale 2, translate (5,0,0)] the scale is innermost, so the
// sphere has radius 2 centered at (5,0,0).
func TestSphere_ComposedTransformOrder(t *testing.T) {
	s := NewSphere()
	m := core.Compose(core.Scaling(2, 2, 2), core.Translation(5, 0, 0))
	if err := s.SetTransform(m); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	xs := s.Intersect(core.NewRay(core.NewPoint(5, 0, -5), core.NewVector(0, 0, 1)))
	assertTs(t, xs, []float64{3, 7})
}

func TestSphere_NormalAt(t *testing.T) {
	s := NewSphere()
	third := math.Sqrt(3) / 3

	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Tuple
	}{
		{"on the x axis", core.NewPoint(1, 0, 0), core.NewVector(1, 0, 0)},
		{"on the y axis", core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0)},
		{"nonaxial point", core.NewPoint(third, third, third), core.NewVector(third, third, third)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.NormalAt(tt.point, Intersection{})
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if !core.FloatEquals(got.Magnitude(), 1) {
				t.Errorf("Normal must be unit length, got %v", got.Magnitude())
			}
		})
	}
}

func TestSphere_NormalAtTransformed(t *testing.T) {
	s := NewSphere()
	if err := s.SetTransform(core.Translation(0, 1, 0)); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	got := s.NormalAt(core.NewPoint(0, 1.70711, -0.70711), Intersection{})
	if !got.Equals(core.NewVector(0, 0.70711, -0.70711)) {
		t.Errorf("Expected (0,0.70711,-0.70711), got %v", got)
	}

	s = NewSphere()
	m := core.Compose(core.RotationZ(math.Pi/5), core.Scaling(1, 0.5, 1))
	if err := s.SetTransform(m); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	got = s.NormalAt(core.NewPoint(0, math.Sqrt2/2, -math.Sqrt2/2), Intersection{})
	if !got.Equals(core.NewVector(0, 0.97014, -0.24254)) {
		t.Errorf("Expected (0,0.97014,-0.24254), got %v", got)
	}
}

func TestGlassSphere_Material(t *testing.T) {
	s := NewGlassSphere()
	if s.Material.Transparency != 1 || s.Material.RefractiveIndex != 1.5 {
		t.Errorf("Unexpected glass sphere material: %+v", s.Material)
	}
}

// assertTs checks the t values of an intersection list
func assertTs(t *testing.T, xs []Intersection, expected []float64) {
	t.Helper()
	if len(xs) != len(expected) {
		t.Fatalf("Expected %d intersections, got %d", len(expected), len(xs))
	}
	for i, want := range expected {
		if math.Abs(xs[i].T-want) > core.Epsilon {
			t.Errorf("Intersection %d: expected t=%v, got t=%v", i, want, xs[i].T)
		}
	}
}
