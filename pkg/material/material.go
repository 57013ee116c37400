// Package material implements the Phong shading model with reflective and
// refractive coefficients.
package material

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/pattern"
)

// Material describes how a surface responds to light
type Material struct {
	Pattern         *pattern.Pattern
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
}

// New returns the default material: solid white with the standard Phong
// coefficients and no reflection or transparency.
func New() Material {
	return Material{
		Pattern:         pattern.NewSolid(core.White()),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1,
	}
}

// Glass returns a fully transparent material with the refractive index of glass
func Glass() Material {
	m := New()
	m.Transparency = 1
	m.RefractiveIndex = 1.5
	return m
}

// Lighting evaluates the Phong model for a single light. objectPoint is the
// shading point converted to the shape's object space, where the material's
// pattern lives. attenuation scales the diffuse and specular terms: 0 for a
// fully shadowed point, 1 for a lit one, fractional for area lights.
func Lighting(m Material, lightPos core.Tuple, intensity core.Color, point, objectPoint, eye, normal core.Tuple, attenuation float64) core.Color {
	color := m.Pattern.ColorAt(objectPoint)
	effectiveColor := color.Hadamard(intensity)
	ambient := effectiveColor.Scale(m.Ambient)

	if attenuation <= 0 {
		return ambient
	}

	lightv := lightPos.Subtract(point).Normalize()

	// lightDotNormal is the cosine of the angle between the light vector and
	// the normal; negative means the light is behind the surface.
	lightDotNormal := lightv.Dot(normal)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Scale(m.Diffuse * lightDotNormal)

	specular := core.Black()
	reflectv := lightv.Negate().Reflect(normal)
	reflectDotEye := reflectv.Dot(eye)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = intensity.Scale(m.Specular * factor)
	}

	return ambient.Add(diffuse.Add(specular).Scale(attenuation))
}
