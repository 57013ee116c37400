package shape

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
)

// Cone is the double-napped cone around the y axis with unit slope,
// truncated to (Minimum, Maximum) and optionally capped
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates a cone node truncated to the given extents
func NewCone(minimum, maximum float64, closed bool) *Shape {
	return NewShape(Cone{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// LocalIntersect solves the cone quadratic, handling the single-root case of
// rays parallel to one of the cone's halves
func (c Cone) LocalIntersect(ray core.Ray) []Intersection {
	var xs []Intersection

	o, d := ray.Origin, ray.Direction
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	switch {
	case math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon:
		// Ray misses both halves
	case math.Abs(a) < core.Epsilon:
		// Parallel to one half: a single intersection with the other
		t := -cc / (2 * b)
		y := o.Y + t*d.Y
		if c.Minimum < y && y < c.Maximum {
			xs = append(xs, Intersection{T: t})
		}
	default:
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
			y := o.Y + t*d.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, Intersection{T: t})
			}
		}
	}

	return c.intersectCaps(ray, xs)
}

func (c Cone) intersectCaps(ray core.Ray, xs []Intersection) []Intersection {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	// Cap radius equals the |y| of the truncation plane
	t := (c.Minimum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Minimum)) {
		xs = append(xs, Intersection{T: t})
	}
	t = (c.Maximum - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Maximum)) {
		xs = append(xs, Intersection{T: t})
	}
	return xs
}

// LocalNormalAt distinguishes caps from the slanted surface
func (c Cone) LocalNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z
	if dist < c.Maximum*c.Maximum && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < c.Minimum*c.Minimum && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVector(point.X, y, point.Z)
}

// Bounds spans the widest truncation radius in x/z
func (c Cone) Bounds() core.Bounds {
	limit := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewBounds(
		core.NewPoint(-limit, c.Minimum, -limit),
		core.NewPoint(limit, c.Maximum, limit),
	)
}
