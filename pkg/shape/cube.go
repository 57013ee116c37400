package shape

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1, 1] on every axis
type Cube struct{}

// NewCube creates a cube node
func NewCube() *Shape {
	return NewShape(Cube{})
}

// checkAxis computes the entry/exit distances for one slab
func checkAxis(origin, direction float64) (float64, float64) {
	tminNumerator := -1 - origin
	tmaxNumerator := 1 - origin

	var tmin, tmax float64
	if math.Abs(direction) >= core.Epsilon {
		tmin = tminNumerator / direction
		tmax = tmaxNumerator / direction
	} else {
		tmin = tminNumerator * math.Inf(1)
		tmax = tmaxNumerator * math.Inf(1)
	}
	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	return tmin, tmax
}

// LocalIntersect runs the per-axis slab test
func (Cube) LocalIntersect(ray core.Ray) []Intersection {
	xtmin, xtmax := checkAxis(ray.Origin.X, ray.Direction.X)
	ytmin, ytmax := checkAxis(ray.Origin.Y, ray.Direction.Y)
	ztmin, ztmax := checkAxis(ray.Origin.Z, ray.Direction.Z)

	tmin := math.Max(xtmin, math.Max(ytmin, ztmin))
	tmax := math.Min(xtmax, math.Min(ytmax, ztmax))
	if tmin > tmax {
		return nil
	}
	return []Intersection{{T: tmin}, {T: tmax}}
}

// LocalNormalAt picks the face whose coordinate has the largest magnitude
func (Cube) LocalNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	maxc := math.Max(math.Abs(point.X), math.Max(math.Abs(point.Y), math.Abs(point.Z)))
	switch maxc {
	case math.Abs(point.X):
		return core.NewVector(point.X, 0, 0)
	case math.Abs(point.Y):
		return core.NewVector(0, point.Y, 0)
	}
	return core.NewVector(0, 0, point.Z)
}

// Bounds returns the cube itself
func (Cube) Bounds() core.Bounds {
	return core.NewBounds(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
