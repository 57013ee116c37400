// Package shape implements the scene graph: primitive shapes wrapped in
// nodes carrying a transform, a material and a parent back-reference, plus
// aggregate group and CSG nodes with cached bounding boxes.
package shape

import (
	"sort"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
)

// Intersection records a ray hit at distance T on a shape. U and V carry
// barycentric coordinates for triangles.
type Intersection struct {
	T    float64
	S    *Shape
	U, V float64
}

// Primitive is the object-space geometry of a leaf shape. LocalIntersect
// receives a ray already transformed into object space and returns hits with
// the shape field unset; the owning node fills it in.
type Primitive interface {
	LocalIntersect(ray core.Ray) []Intersection
	LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple
	Bounds() core.Bounds
}

type kind int

const (
	kindPrimitive kind = iota
	kindGroup
	kindCSG
)

// Operation selects the boolean operation of a CSG node
type Operation int

const (
	Union Operation = iota
	Intersect
	Difference
)

// Shape is a node in the scene graph. It owns its children; the parent
// pointer is a back-reference used only for coordinate conversions.
type Shape struct {
	kind     kind
	prim     Primitive
	Material material.Material

	transform    core.Matrix
	inverse      core.Matrix
	invTranspose core.Matrix

	parent *Shape

	// group
	children []*Shape

	// csg
	op          Operation
	left, right *Shape

	// cached local-space bounds for group and CSG nodes
	bounds *core.Bounds
}

// NewShape wraps a primitive in a node with identity transform and the
// default material
func NewShape(prim Primitive) *Shape {
	return &Shape{
		kind:         kindPrimitive,
		prim:         prim,
		Material:     material.New(),
		transform:    core.Identity(),
		inverse:      core.Identity(),
		invTranspose: core.Identity(),
	}
}

// NewGroup creates an empty aggregate node
func NewGroup() *Shape {
	return &Shape{
		kind:         kindGroup,
		Material:     material.New(),
		transform:    core.Identity(),
		inverse:      core.Identity(),
		invTranspose: core.Identity(),
	}
}

// NewCSG composes two shapes under the given boolean operation
func NewCSG(op Operation, left, right *Shape) *Shape {
	s := &Shape{
		kind:         kindCSG,
		op:           op,
		left:         left,
		right:        right,
		Material:     material.New(),
		transform:    core.Identity(),
		inverse:      core.Identity(),
		invTranspose: core.Identity(),
	}
	left.parent = s
	right.parent = s
	return s
}

// SetTransform sets the node's transform, caching its inverse and inverse
// transpose. A singular matrix yields a GeometryError.
func (s *Shape) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return err
	}
	s.transform = m
	s.inverse = inv
	s.invTranspose = inv.Transpose()
	s.invalidateBounds()
	return nil
}

// Transform returns the node's transform
func (s *Shape) Transform() core.Matrix {
	return s.transform
}

// Inverse returns the cached inverse of the node's transform
func (s *Shape) Inverse() core.Matrix {
	return s.inverse
}

// Parent returns the enclosing group or CSG node, or nil at the root
func (s *Shape) Parent() *Shape {
	return s.parent
}

// Primitive returns the node's geometry, or nil for group and CSG nodes
func (s *Shape) Primitive() Primitive {
	return s.prim
}

// Children returns a group's children
func (s *Shape) Children() []*Shape {
	return s.children
}

// Left returns the left operand of a CSG node
func (s *Shape) Left() *Shape {
	return s.left
}

// Right returns the right operand of a CSG node
func (s *Shape) Right() *Shape {
	return s.right
}

// AddChild appends a child to a group and sets its parent back-reference
func (s *Shape) AddChild(child *Shape) {
	child.parent = s
	s.children = append(s.children, child)
	s.invalidateBounds()
}

func (s *Shape) invalidateBounds() {
	for n := s; n != nil; n = n.parent {
		n.bounds = nil
	}
}

// Intersect transforms the ray into the node's space and dispatches on kind
func (s *Shape) Intersect(ray core.Ray) []Intersection {
	localRay := ray.Transform(s.inverse)

	switch s.kind {
	case kindPrimitive:
		xs := s.prim.LocalIntersect(localRay)
		for i := range xs {
			xs[i].S = s
		}
		return xs

	case kindGroup:
		if !s.localBounds().Intersects(localRay) {
			return nil
		}
		var xs []Intersection
		for _, child := range s.children {
			xs = append(xs, child.Intersect(localRay)...)
		}
		SortIntersections(xs)
		return xs

	case kindCSG:
		if !s.localBounds().Intersects(localRay) {
			return nil
		}
		xs := s.left.Intersect(localRay)
		xs = append(xs, s.right.Intersect(localRay)...)
		SortIntersections(xs)
		return s.filterIntersections(xs)
	}
	return nil
}

// NormalAt computes the world-space surface normal at the given world point.
// The intersection supplies u/v for shapes whose normal depends on the hit.
func (s *Shape) NormalAt(worldPoint core.Tuple, hit Intersection) core.Tuple {
	localPoint := s.WorldToObject(worldPoint)
	localNormal := s.prim.LocalNormalAt(localPoint, hit)
	return s.NormalToWorld(localNormal)
}

// WorldToObject converts a world-space point into the node's object space by
// applying every ancestor's inverse from the outside in
func (s *Shape) WorldToObject(point core.Tuple) core.Tuple {
	if s.parent != nil {
		point = s.parent.WorldToObject(point)
	}
	return s.inverse.MulTuple(point)
}

// NormalToWorld converts an object-space normal to world space via the
// inverse transpose of each transform from the inside out
func (s *Shape) NormalToWorld(normal core.Tuple) core.Tuple {
	normal = s.invTranspose.MulTuple(normal)
	normal.W = 0
	normal = normal.Normalize()
	if s.parent != nil {
		normal = s.parent.NormalToWorld(normal)
	}
	return normal
}

// Includes reports whether the node is, or transitively contains, other
func (s *Shape) Includes(other *Shape) bool {
	switch s.kind {
	case kindGroup:
		for _, child := range s.children {
			if child.Includes(other) {
				return true
			}
		}
		return false
	case kindCSG:
		return s.left.Includes(other) || s.right.Includes(other)
	default:
		return s == other
	}
}

// localBounds returns the node's bounds in its own space: the primitive's
// constant box, or the union of children's parent-space boxes. Aggregate
// bounds are cached; the scene must be frozen before parallel rendering.
func (s *Shape) localBounds() core.Bounds {
	if s.kind == kindPrimitive {
		return s.prim.Bounds()
	}
	if s.bounds != nil {
		return *s.bounds
	}
	b := core.EmptyBounds()
	switch s.kind {
	case kindGroup:
		for _, child := range s.children {
			b = b.Union(child.ParentSpaceBounds())
		}
	case kindCSG:
		b = s.left.ParentSpaceBounds().Union(s.right.ParentSpaceBounds())
	}
	s.bounds = &b
	return b
}

// ParentSpaceBounds returns the node's bounds after its own transform
func (s *Shape) ParentSpaceBounds() core.Bounds {
	return s.localBounds().Transform(s.transform)
}

// Bounds computes and caches the node's bounds, bottom-up. Call after the
// scene graph is built and before rendering begins.
func (s *Shape) Bounds() core.Bounds {
	switch s.kind {
	case kindGroup:
		for _, child := range s.children {
			child.Bounds()
		}
	case kindCSG:
		s.left.Bounds()
		s.right.Bounds()
	}
	return s.localBounds()
}

// SortIntersections orders intersections by ascending t
func SortIntersections(xs []Intersection) {
	sort.Slice(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// IntersectionAllowed implements the CSG truth tables. lhit reports whether
// the candidate hit lies on the left operand; inl and inr whether the ray is
// currently inside the left and right operands.
func IntersectionAllowed(op Operation, lhit, inl, inr bool) bool {
	switch op {
	case Union:
		return (lhit && !inr) || (!lhit && !inl)
	case Intersect:
		return (lhit && inr) || (!lhit && inl)
	case Difference:
		return (lhit && !inr) || (!lhit && inl)
	}
	return false
}

// filterIntersections walks the merged, sorted intersections of both CSG
// operands, keeping those the operation allows
func (s *Shape) filterIntersections(xs []Intersection) []Intersection {
	inl := false
	inr := false
	var result []Intersection

	for _, x := range xs {
		lhit := s.left.Includes(x.S)
		if IntersectionAllowed(s.op, lhit, inl, inr) {
			result = append(result, x)
		}
		if lhit {
			inl = !inl
		} else {
			inr = !inr
		}
	}
	return result
}

// Subdivide recursively splits groups with more than threshold children into
// two subgroups along the longest axis of the group's bounds. A build-time
// optimization; intersection semantics are unchanged.
func (s *Shape) Subdivide(threshold int) {
	switch s.kind {
	case kindGroup:
		if threshold > 0 && len(s.children) > threshold {
			s.splitChildren()
		}
		for _, child := range s.children {
			child.Subdivide(threshold)
		}
	case kindCSG:
		s.left.Subdivide(threshold)
		s.right.Subdivide(threshold)
	}
}

// splitChildren partitions children by bounding box center around the
// midpoint of the group's bounds on their longest axis. If every child lands
// on one side the group is left unchanged.
func (s *Shape) splitChildren() {
	b := s.localBounds()
	axis := b.LongestAxis()
	split := axisValue(b.Center(), axis)

	var left, right []*Shape
	for _, child := range s.children {
		if axisValue(child.ParentSpaceBounds().Center(), axis) < split {
			left = append(left, child)
		} else {
			right = append(right, child)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return
	}

	lg := NewGroup()
	for _, c := range left {
		lg.AddChild(c)
	}
	rg := NewGroup()
	for _, c := range right {
		rg.AddChild(c)
	}
	s.children = nil
	s.bounds = nil
	s.AddChild(lg)
	s.AddChild(rg)
}

func axisValue(p core.Tuple, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}
