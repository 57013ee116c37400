package shape

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
)

// Plane is the infinite xz plane at y=0
type Plane struct{}

// NewPlane creates a plane node
func NewPlane() *Shape {
	return NewShape(Plane{})
}

// LocalIntersect returns the single crossing of the y=0 plane, or nothing
// for rays parallel to it
func (Plane) LocalIntersect(ray core.Ray) []Intersection {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	t := -ray.Origin.Y / ray.Direction.Y
	return []Intersection{{T: t}}
}

// LocalNormalAt always points up
func (Plane) LocalNormalAt(_ core.Tuple, _ Intersection) core.Tuple {
	return core.NewVector(0, 1, 0)
}

// Bounds is infinite in x and z
func (Plane) Bounds() core.Bounds {
	return core.NewBounds(
		core.NewPoint(math.Inf(-1), 0, math.Inf(-1)),
		core.NewPoint(math.Inf(1), 0, math.Inf(1)),
	)
}
