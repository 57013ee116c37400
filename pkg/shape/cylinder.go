package shape

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
)

// Cylinder is the unit-radius cylinder around the y axis, truncated to
// (Minimum, Maximum) and optionally capped
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates a cylinder node truncated to the given extents
func NewCylinder(minimum, maximum float64, closed bool) *Shape {
	return NewShape(Cylinder{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// NewInfiniteCylinder creates an unbounded open cylinder node
func NewInfiniteCylinder() *Shape {
	return NewCylinder(math.Inf(-1), math.Inf(1), false)
}

// LocalIntersect solves the quadratic in x and z, clips to the y extents and
// tests the end caps when closed
func (c Cylinder) LocalIntersect(ray core.Ray) []Intersection {
	var xs []Intersection

	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z
	if math.Abs(a) >= core.Epsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		disc := b*b - 4*a*cc
		if disc < 0 {
			return nil
		}

		sqrtD := math.Sqrt(disc)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		for _, t := range [2]float64{t0, t1} {
			y := ray.Origin.Y + t*ray.Direction.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, Intersection{T: t})
			}
		}
	}

	return c.intersectCaps(ray, xs)
}

// checkCap reports whether the ray at t lies within radius of the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

func (c Cylinder) intersectCaps(ray core.Ray, xs []Intersection) []Intersection {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	t := (c.Minimum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, Intersection{T: t})
	}
	t = (c.Maximum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, Intersection{T: t})
	}
	return xs
}

// LocalNormalAt distinguishes the caps from the barrel by the hit's distance
// from the axis
func (c Cylinder) LocalNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z
	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	return core.NewVector(point.X, 0, point.Z)
}

// Bounds spans the radius in x/z and the truncation extents in y
func (c Cylinder) Bounds() core.Bounds {
	return core.NewBounds(
		core.NewPoint(-1, c.Minimum, -1),
		core.NewPoint(1, c.Maximum, 1),
	)
}
