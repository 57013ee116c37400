package shape

import (
	"github.com/jsheldon/rray/pkg/core"
)

// Torus is a torus in the xy plane facing the z axis, with major radius
// fixed at 1 and a configurable minor (tube) radius
type Torus struct {
	MinorRadius float64
}

// NewTorus creates a torus node with the given tube radius
func NewTorus(minorRadius float64) *Shape {
	return NewShape(Torus{MinorRadius: minorRadius})
}

// LocalIntersect solves the torus quartic. Only hits in front of the ray
// origin are reported.
func (t Torus) LocalIntersect(ray core.Ray) []Intersection {
	o, d := ray.Origin, ray.Direction
	rSq := t.MinorRadius * t.MinorRadius

	sumDSq := d.X*d.X + d.Y*d.Y + d.Z*d.Z
	e := o.X*o.X + o.Y*o.Y + o.Z*o.Z - rSq + 1 // major radius squared is 1
	f := o.X*d.X + o.Y*d.Y + o.Z*d.Z

	a4 := sumDSq * sumDSq
	a3 := 4 * sumDSq * f
	a2 := 2*sumDSq*e + 4*f*f - 4*(d.X*d.X+d.Y*d.Y)
	a1 := 4*e*f - 8*(o.X*d.X+o.Y*d.Y)
	a0 := e*e - 4*(o.X*o.X+o.Y*o.Y)

	var xs []Intersection
	for _, root := range solveQuartic(a4, a3, a2, a1, a0) {
		if root > 0 {
			xs = append(xs, Intersection{T: root})
		}
	}
	return xs
}

// LocalNormalAt evaluates the gradient of the implicit torus equation
func (t Torus) LocalNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	sumSq := point.X*point.X + point.Y*point.Y + point.Z*point.Z
	paramSq := 1 + t.MinorRadius*t.MinorRadius

	normal := core.NewVector(
		4*point.X*(sumSq-paramSq),
		4*point.Y*(sumSq-paramSq),
		4*point.Z*(sumSq-paramSq+2),
	)
	return normal.Normalize()
}

// Bounds spans the ring plus tube in x/y and the tube radius in z
func (t Torus) Bounds() core.Bounds {
	r := t.MinorRadius
	return core.NewBounds(
		core.NewPoint(-1-r, -1-r, -r),
		core.NewPoint(1+r, 1+r, r),
	)
}
