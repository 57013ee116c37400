package shape

import (
	"github.com/jsheldon/rray/pkg/core"
)

// Triangle is a flat triangle with a precomputed face normal
type Triangle struct {
	P1, P2, P3 core.Tuple
	E1, E2     core.Tuple
	Normal     core.Tuple
}

// newTriangle validates the vertices and precomputes edges and the normal
func newTriangle(p1, p2, p3 core.Tuple) (Triangle, error) {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	normal := e2.Cross(e1)
	if normal.Magnitude() < core.Epsilon {
		return Triangle{}, &core.GeometryError{Reason: "triangle has a degenerate edge"}
	}
	return Triangle{P1: p1, P2: p2, P3: p3, E1: e1, E2: e2, Normal: normal.Normalize()}, nil
}

// NewTriangle creates a triangle node. Degenerate vertices yield a
// GeometryError.
func NewTriangle(p1, p2, p3 core.Tuple) (*Shape, error) {
	tri, err := newTriangle(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return NewShape(tri), nil
}

// LocalIntersect implements the Möller–Trumbore algorithm, recording the
// barycentric u/v of the hit
func (t Triangle) LocalIntersect(ray core.Ray) []Intersection {
	dirCrossE2 := ray.Direction.Cross(t.E2)
	det := t.E1.Dot(dirCrossE2)
	if det > -core.Epsilon && det < core.Epsilon {
		return nil
	}

	f := 1 / det
	p1ToOrigin := ray.Origin.Subtract(t.P1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(t.E1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	tDist := f * t.E2.Dot(originCrossE1)
	return []Intersection{{T: tDist, U: u, V: v}}
}

// LocalNormalAt returns the constant face normal
func (t Triangle) LocalNormalAt(_ core.Tuple, _ Intersection) core.Tuple {
	return t.Normal
}

// Bounds encloses the three vertices
func (t Triangle) Bounds() core.Bounds {
	return core.EmptyBounds().AddPoint(t.P1).AddPoint(t.P2).AddPoint(t.P3)
}

// SmoothTriangle is a triangle with per-vertex normals interpolated across
// the face by the hit's barycentric coordinates
type SmoothTriangle struct {
	Triangle
	N1, N2, N3 core.Tuple
}

// NewSmoothTriangle creates a smooth triangle node
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) (*Shape, error) {
	tri, err := newTriangle(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return NewShape(SmoothTriangle{Triangle: tri, N1: n1, N2: n2, N3: n3}), nil
}

// LocalNormalAt interpolates the vertex normals with the hit's u/v
func (t SmoothTriangle) LocalNormalAt(_ core.Tuple, hit Intersection) core.Tuple {
	return t.N2.Multiply(hit.U).
		Add(t.N3.Multiply(hit.V)).
		Add(t.N1.Multiply(1 - hit.U - hit.V)).
		Normalize()
}
