package core

import "math"

// Bounds represents an axis-aligned bounding box
type Bounds struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// EmptyBounds returns a bounds that contains nothing; adding any point or
// box to it yields that point or box.
func EmptyBounds() Bounds {
	return Bounds{
		Min: NewPoint(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewPoint(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// NewBounds creates a bounds from min and max corners
func NewBounds(min, max Tuple) Bounds {
	return Bounds{Min: min, Max: max}
}

// AddPoint returns the bounds grown to contain the given point
func (b Bounds) AddPoint(p Tuple) Bounds {
	return Bounds{
		Min: NewPoint(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: NewPoint(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Union returns a bounds that contains both this bounds and another
func (b Bounds) Union(other Bounds) Bounds {
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Contains reports whether the point lies inside the bounds
func (b Bounds) Contains(p Tuple) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// InfiniteBounds returns a bounds that contains every point
func InfiniteBounds() Bounds {
	return Bounds{
		Min: NewPoint(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
		Max: NewPoint(math.Inf(1), math.Inf(1), math.Inf(1)),
	}
}

func (b Bounds) hasInfiniteCorner() bool {
	for _, v := range [6]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// Transform returns the bounds that contains all eight corners of this
// bounds after applying the given matrix. Unbounded shapes stay unbounded:
// multiplying an infinite corner through a rotation would produce NaN.
func (b Bounds) Transform(m Matrix) Bounds {
	if b.Min.X > b.Max.X {
		return b // empty
	}
	if b.hasInfiniteCorner() {
		return InfiniteBounds()
	}
	corners := [8]Tuple{
		b.Min,
		NewPoint(b.Min.X, b.Min.Y, b.Max.Z),
		NewPoint(b.Min.X, b.Max.Y, b.Min.Z),
		NewPoint(b.Min.X, b.Max.Y, b.Max.Z),
		NewPoint(b.Max.X, b.Min.Y, b.Min.Z),
		NewPoint(b.Max.X, b.Min.Y, b.Max.Z),
		NewPoint(b.Max.X, b.Max.Y, b.Min.Z),
		b.Max,
	}
	result := EmptyBounds()
	for _, c := range corners {
		result = result.AddPoint(m.MulTuple(c))
	}
	return result
}

// Intersects tests if a ray hits this bounds using the slab method
func (b Bounds) Intersects(ray Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64
		switch axis {
		case 0:
			min, max = b.Min.X, b.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			min, max = b.Min.Y, b.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			min, max = b.Min.Z, b.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(direction) < Epsilon {
			// Ray is parallel to this slab
			if origin < min || origin > max {
				return false
			}
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Center returns the center point of the bounds
func (b Bounds) Center() Tuple {
	return NewPoint((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2, (b.Min.Z+b.Max.Z)/2)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b Bounds) LongestAxis() int {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	if dx > dy && dx > dz {
		return 0
	}
	if dy > dz {
		return 1
	}
	return 2
}
