package world

import (
	"math/rand"

	"github.com/jsheldon/rray/pkg/core"
)

// LightKind identifies the light variant
type LightKind int

const (
	// PointLight emits from a single position
	PointLight LightKind = iota
	// AreaLight emits from a rectangle sampled on a jittered grid
	AreaLight
)

// Light is a point or area light source. For area lights Position is the
// center of the rectangle and UVec/VVec are single-cell steps.
type Light struct {
	Kind      LightKind
	Position  core.Tuple
	Intensity core.Color

	Corner core.Tuple
	UVec   core.Tuple
	VVec   core.Tuple
	USteps int
	VSteps int
}

// NewPointLight creates a point light
func NewPointLight(position core.Tuple, intensity core.Color) Light {
	return Light{Kind: PointLight, Position: position, Intensity: intensity}
}

// NewAreaLight creates an area light spanning corner plus the full u and v
// edge vectors, sampled on a usteps x vsteps grid
func NewAreaLight(corner, fullUVec core.Tuple, usteps int, fullVVec core.Tuple, vsteps int, intensity core.Color) Light {
	if usteps < 1 {
		usteps = 1
	}
	if vsteps < 1 {
		vsteps = 1
	}
	return Light{
		Kind:      AreaLight,
		Corner:    corner,
		UVec:      fullUVec.Divide(float64(usteps)),
		VVec:      fullVVec.Divide(float64(vsteps)),
		USteps:    usteps,
		VSteps:    vsteps,
		Intensity: intensity,
		Position:  corner.Add(fullUVec.Divide(2)).Add(fullVVec.Divide(2)),
	}
}

// Samples returns the total number of occlusion samples the light casts
func (l Light) Samples() int {
	if l.Kind == PointLight {
		return 1
	}
	return l.USteps * l.VSteps
}

// PointOnLight returns the sample position in cell (u, v), jittered by a
// sequence seeded from the cell indices so renders stay deterministic
func (l Light) PointOnLight(u, v int) core.Tuple {
	rng := rand.New(rand.NewSource(int64(v*l.USteps+u) + 1))
	return l.Corner.
		Add(l.UVec.Multiply(float64(u) + rng.Float64())).
		Add(l.VVec.Multiply(float64(v) + rng.Float64()))
}
