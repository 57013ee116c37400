package world

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/shape"
)

// Computations carries everything shading needs at an intersection
type Computations struct {
	T          float64
	S          *shape.Shape
	Point      core.Tuple
	Eye        core.Tuple
	Normal     core.Tuple
	Inside     bool
	OverPoint  core.Tuple // nudged along the normal; origin for shadow and reflection rays
	UnderPoint core.Tuple // nudged against the normal; origin for refraction rays
	Reflect    core.Tuple
	N1, N2     float64
}

// PrepareComputations derives the shading inputs for a hit. xs is the full
// sorted intersection list of the ray, needed to walk the containers that
// determine the refractive indices on either side of the hit.
func PrepareComputations(hit shape.Intersection, ray core.Ray, xs []shape.Intersection) Computations {
	point := ray.Position(hit.T)
	eye := ray.Direction.Negate()
	normal := hit.S.NormalAt(point, hit)

	inside := normal.Dot(eye) < 0
	if inside {
		normal = normal.Negate()
	}

	offset := normal.Multiply(core.Epsilon)
	comps := Computations{
		T:          hit.T,
		S:          hit.S,
		Point:      point,
		Eye:        eye,
		Normal:     normal,
		Inside:     inside,
		OverPoint:  point.Add(offset),
		UnderPoint: point.Subtract(offset),
		Reflect:    ray.Direction.Reflect(normal),
		N1:         1,
		N2:         1,
	}

	// Walk the intersection list, tracking which shapes the ray is currently
	// inside of. A shape enters the container list on first sight and leaves
	// when seen again.
	var containers []*shape.Shape
	for _, x := range xs {
		if x == hit {
			if len(containers) > 0 {
				comps.N1 = containers[len(containers)-1].Material.RefractiveIndex
			}
		}

		if idx := indexOf(containers, x.S); idx >= 0 {
			containers = append(containers[:idx], containers[idx+1:]...)
		} else {
			containers = append(containers, x.S)
		}

		if x == hit {
			if len(containers) > 0 {
				comps.N2 = containers[len(containers)-1].Material.RefractiveIndex
			}
			break
		}
	}

	return comps
}

func indexOf(shapes []*shape.Shape, s *shape.Shape) int {
	for i, c := range shapes {
		if c == s {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit
func (c Computations) Schlick() float64 {
	cos := c.Eye.Dot(c.Normal)

	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1 // total internal reflection
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
