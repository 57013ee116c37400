// Package world holds the scene contents and drives the recursive shading
// pipeline: intersection, hit selection, Phong lighting, shadows, reflection
// and refraction.
package world

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
	"github.com/jsheldon/rray/pkg/shape"
)

// MaxDepth bounds the reflection/refraction recursion
const MaxDepth = 5

// World is a collection of shapes and lights
type World struct {
	Shapes []*shape.Shape
	Lights []Light
}

// New creates an empty world
func New() *World {
	return &World{}
}

// AddShape appends a top-level shape and freezes its bounding boxes
func (w *World) AddShape(s *shape.Shape) {
	s.Bounds()
	w.Shapes = append(w.Shapes, s)
}

// AddLight appends a light source
func (w *World) AddLight(l Light) {
	w.Lights = append(w.Lights, l)
}

// Intersect returns every intersection of the ray with the world, sorted by
// ascending t
func (w *World) Intersect(ray core.Ray) []shape.Intersection {
	var xs []shape.Intersection
	for _, s := range w.Shapes {
		xs = append(xs, s.Intersect(ray)...)
	}
	shape.SortIntersections(xs)
	return xs
}

// Hit returns the intersection with the smallest non-negative t, or false
// when every intersection is behind the ray
func Hit(xs []shape.Intersection) (shape.Intersection, bool) {
	for _, x := range xs {
		if x.T >= 0 {
			return x, true
		}
	}
	return shape.Intersection{}, false
}

// ColorAt traces the ray into the world. remaining bounds the recursion: at
// zero the result is the background color regardless of what the ray hits.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	if remaining <= 0 {
		return core.Black()
	}
	xs := w.Intersect(ray)
	hit, ok := Hit(xs)
	if !ok {
		return core.Black()
	}
	comps := PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ShadeHit combines the Phong surface color over all lights with the
// reflected and refracted contributions. When the material is both
// reflective and transparent the two are mixed by Schlick's approximation.
func (w *World) ShadeHit(comps Computations, remaining int) core.Color {
	surface := core.Black()
	objectPoint := comps.S.WorldToObject(comps.OverPoint)
	for _, light := range w.Lights {
		attenuation := w.IntensityAt(light, comps.OverPoint)
		surface = surface.Add(material.Lighting(
			comps.S.Material, light.Position, light.Intensity,
			comps.OverPoint, objectPoint, comps.Eye, comps.Normal, attenuation))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	m := comps.S.Material
	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.Add(reflected.Scale(reflectance)).Add(refracted.Scale(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the reflection ray and scales the result by the
// material's reflectivity
func (w *World) ReflectedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 || comps.S.Material.Reflective == 0 {
		return core.Black()
	}
	reflectRay := core.NewRay(comps.OverPoint, comps.Reflect)
	return w.ColorAt(reflectRay, remaining-1).Scale(comps.S.Material.Reflective)
}

// RefractedColor traces the refraction ray by Snell's law, returning black
// for opaque materials and under total internal reflection
func (w *World) RefractedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 || comps.S.Material.Transparency == 0 {
		return core.Black()
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.Eye.Dot(comps.Normal)
	sin2t := nRatio * nRatio * (1 - cosI*cosI)
	if sin2t > 1 {
		return core.Black() // total internal reflection
	}

	cosT := math.Sqrt(1 - sin2t)
	direction := comps.Normal.Multiply(nRatio*cosI - cosT).Subtract(comps.Eye.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(refractRay, remaining-1).Scale(comps.S.Material.Transparency)
}

// IsShadowed reports whether anything opaque blocks the segment from point
// to lightPos. Transparent shapes do not cast shadows.
func (w *World) IsShadowed(lightPos, point core.Tuple) bool {
	v := lightPos.Subtract(point)
	distance := v.Magnitude()
	ray := core.NewRay(point, v.Normalize())

	for _, x := range w.Intersect(ray) {
		if x.T >= distance {
			break
		}
		if x.T > 0 && x.S.Material.Transparency == 0 {
			return true
		}
	}
	return false
}

// IntensityAt returns the fraction of the light that reaches the point: 0 or
// 1 for point lights, the mean over jittered grid samples for area lights
func (w *World) IntensityAt(light Light, point core.Tuple) float64 {
	if light.Kind == PointLight {
		if w.IsShadowed(light.Position, point) {
			return 0
		}
		return 1
	}

	total := 0.0
	for v := 0; v < light.VSteps; v++ {
		for u := 0; u < light.USteps; u++ {
			if !w.IsShadowed(light.PointOnLight(u, v), point) {
				total++
			}
		}
	}
	return total / float64(light.Samples())
}
