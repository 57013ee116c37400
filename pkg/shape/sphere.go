package shape

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
)

// Sphere is the unit sphere centered at the origin
type Sphere struct{}

// NewSphere creates a unit sphere node
func NewSphere() *Shape {
	return NewShape(Sphere{})
}

// NewGlassSphere creates a unit sphere with a fully transparent glass material
func NewGlassSphere() *Shape {
	s := NewSphere()
	s.Material = material.Glass()
	return s
}

// LocalIntersect solves the quadratic for a unit sphere at the origin
func (Sphere) LocalIntersect(ray core.Ray) []Intersection {
	sphereToRay := ray.Origin.Subtract(core.NewPoint(0, 0, 0))

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []Intersection{{T: t1}, {T: t2}}
}

// LocalNormalAt returns the vector from the center to the point
func (Sphere) LocalNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	return core.NewVector(point.X, point.Y, point.Z)
}

// Bounds returns the unit cube enclosing the sphere
func (Sphere) Bounds() core.Bounds {
	return core.NewBounds(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
