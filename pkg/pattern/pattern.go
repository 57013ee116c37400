// Package pattern implements the recursive procedural color patterns applied
// by materials. Every pattern carries its own transform; composite patterns
// sample their sub-patterns at the point converted into pattern space.
package pattern

import (
	"math"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/noise"
)

// Kind identifies the pattern variant
type Kind int

const (
	KindSolid Kind = iota
	KindStripe
	KindGradient
	KindRing
	KindChecker
	KindBlend
	KindPerturbed
	KindNoise
	KindImage
	KindTest // returns the pattern-space point as a color, for tests
)

// Pattern is a tagged procedural color sampler with its own transform
type Pattern struct {
	kind    Kind
	color   core.Color // solid
	a, b    *Pattern   // sub-patterns
	ratio   float64    // blend mix factor for b
	scale   float64    // noise amplitude
	octaves int
	persist float64
	tex     *Texture

	transform core.Matrix
	inverse   core.Matrix
}

// NewSolid creates a solid color pattern
func NewSolid(c core.Color) *Pattern {
	return &Pattern{kind: KindSolid, color: c, transform: core.Identity(), inverse: core.Identity()}
}

// NewTest creates a pattern that returns the pattern-space point as a color
func NewTest() *Pattern {
	return &Pattern{kind: KindTest, transform: core.Identity(), inverse: core.Identity()}
}

// NewStripe creates a pattern alternating a and b along x
func NewStripe(a, b *Pattern) *Pattern {
	return &Pattern{kind: KindStripe, a: a, b: b, transform: core.Identity(), inverse: core.Identity()}
}

// NewGradient creates a pattern interpolating from a to b along x
func NewGradient(a, b *Pattern) *Pattern {
	return &Pattern{kind: KindGradient, a: a, b: b, transform: core.Identity(), inverse: core.Identity()}
}

// NewRing creates a pattern alternating a and b in concentric xz rings
func NewRing(a, b *Pattern) *Pattern {
	return &Pattern{kind: KindRing, a: a, b: b, transform: core.Identity(), inverse: core.Identity()}
}

// NewChecker creates a 3D checkerboard of a and b
func NewChecker(a, b *Pattern) *Pattern {
	return &Pattern{kind: KindChecker, a: a, b: b, transform: core.Identity(), inverse: core.Identity()}
}

// NewBlend creates a pattern mixing a and b; ratio is the weight of b
func NewBlend(a, b *Pattern, ratio float64) *Pattern {
	return &Pattern{kind: KindBlend, a: a, b: b, ratio: ratio, transform: core.Identity(), inverse: core.Identity()}
}

// NewPerturbed creates a pattern that samples inner at a noise-displaced point
func NewPerturbed(inner *Pattern, scale float64, octaves int, persistence float64) *Pattern {
	return &Pattern{kind: KindPerturbed, a: inner, scale: scale, octaves: octaves, persist: persistence,
		transform: core.Identity(), inverse: core.Identity()}
}

// NewNoise creates a pattern interpolating a to b by octave noise
func NewNoise(a, b *Pattern, scale float64, octaves int, persistence float64) *Pattern {
	return &Pattern{kind: KindNoise, a: a, b: b, scale: scale, octaves: octaves, persist: persistence,
		transform: core.Identity(), inverse: core.Identity()}
}

// NewImage creates a pattern that samples the given texture
func NewImage(tex *Texture) *Pattern {
	return &Pattern{kind: KindImage, tex: tex, transform: core.Identity(), inverse: core.Identity()}
}

// SetTransform sets the pattern's transform and caches its inverse
func (p *Pattern) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	p.transform = m
	p.inverse = inv
	return nil
}

// Transform returns the pattern's transform
func (p *Pattern) Transform() core.Matrix {
	return p.transform
}

// ColorAt samples the pattern at a point in the space of the pattern's owner
// (object space for a material pattern, enclosing pattern space for a
// sub-pattern). The point is first moved into this pattern's own space.
func (p *Pattern) ColorAt(point core.Tuple) core.Color {
	pp := p.inverse.MulTuple(point)

	switch p.kind {
	case KindSolid:
		return p.color
	case KindTest:
		return core.NewColor(pp.X, pp.Y, pp.Z)
	case KindStripe:
		if int(math.Floor(pp.X))%2 == 0 {
			return p.a.ColorAt(pp)
		}
		return p.b.ColorAt(pp)
	case KindGradient:
		a := p.a.ColorAt(pp)
		b := p.b.ColorAt(pp)
		fraction := pp.X - math.Floor(pp.X)
		return a.Add(b.Subtract(a).Scale(fraction))
	case KindRing:
		if int(math.Floor(math.Sqrt(pp.X*pp.X+pp.Z*pp.Z)))%2 == 0 {
			return p.a.ColorAt(pp)
		}
		return p.b.ColorAt(pp)
	case KindChecker:
		sum := math.Floor(pp.X) + math.Floor(pp.Y) + math.Floor(pp.Z)
		if int(sum)%2 == 0 {
			return p.a.ColorAt(pp)
		}
		return p.b.ColorAt(pp)
	case KindBlend:
		a := p.a.ColorAt(pp)
		b := p.b.ColorAt(pp)
		return a.Scale(1 - p.ratio).Add(b.Scale(p.ratio))
	case KindPerturbed:
		// Three decorrelated noise lookups displace the sample point.
		nx := noise.Octave(pp.X, pp.Y, pp.Z, p.octaves, p.persist) * p.scale
		ny := noise.Octave(pp.X, pp.Y, pp.Z+1, p.octaves, p.persist) * p.scale
		nz := noise.Octave(pp.X, pp.Y, pp.Z+2, p.octaves, p.persist) * p.scale
		return p.a.ColorAt(core.Tuple{X: pp.X + nx, Y: pp.Y + ny, Z: pp.Z + nz, W: pp.W})
	case KindNoise:
		n := noise.Octave(pp.X, pp.Y, pp.Z, p.octaves, p.persist) * p.scale
		t := (n + 1) / 2
		a := p.a.ColorAt(pp)
		b := p.b.ColorAt(pp)
		return a.Add(b.Subtract(a).Scale(t))
	case KindImage:
		u, v := p.tex.Project(pp)
		return p.tex.Sample(u, v)
	}
	return core.Black()
}
