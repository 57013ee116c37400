package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
	"github.com/jsheldon/rray/pkg/shape"
)

// ObjModel is the result of parsing a Wavefront OBJ stream: a root group
// holding the default-group triangles plus one sub-group per named group.
type ObjModel struct {
	Root         *shape.Shape
	IgnoredLines int

	vertices []core.Tuple
	normals  []core.Tuple
	groups   map[string]*shape.Shape
	current  *shape.Shape
	material material.Material
}

// LoadObjFile parses an OBJ file into a group, applying the material to
// every triangle
func LoadObjFile(path string, m material.Material) (*shape.Shape, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer file.Close()

	model, err := ParseObj(file, m)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return model.Root, nil
}

// ParseObj reads the minimal OBJ subset: v, vn, f and g directives. Faces
// with more than three vertices are fan-triangulated; faces with vertex
// normals become smooth triangles. Unsupported directives are counted and
// skipped.
func ParseObj(r io.Reader, m material.Material) (*ObjModel, error) {
	root := shape.NewGroup()
	model := &ObjModel{
		Root:     root,
		groups:   make(map[string]*shape.Shape),
		current:  root,
		material: m,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = model.addVertex(fields[1:])
		case "vn":
			err = model.addNormal(fields[1:])
		case "f":
			err = model.addFace(fields[1:])
		case "g":
			model.switchGroup(fields[1:])
		default:
			model.IgnoredLines++
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return model, nil
}

func parseTriple(fields []string, what string) (core.Tuple, error) {
	if len(fields) < 3 {
		return core.Tuple{}, fmt.Errorf("%s needs 3 components, got %d", what, len(fields))
	}
	var c [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Tuple{}, fmt.Errorf("%s component %q: %w", what, fields[i], err)
		}
		c[i] = v
	}
	return core.Tuple{X: c[0], Y: c[1], Z: c[2]}, nil
}

func (m *ObjModel) addVertex(fields []string) error {
	t, err := parseTriple(fields, "vertex")
	if err != nil {
		return err
	}
	t.W = 1
	m.vertices = append(m.vertices, t)
	return nil
}

func (m *ObjModel) addNormal(fields []string) error {
	t, err := parseTriple(fields, "normal")
	if err != nil {
		return err
	}
	m.normals = append(m.normals, t)
	return nil
}

func (m *ObjModel) switchGroup(fields []string) {
	if len(fields) == 0 {
		m.current = m.Root
		return
	}
	name := fields[0]
	g, ok := m.groups[name]
	if !ok {
		g = shape.NewGroup()
		m.groups[name] = g
		m.Root.AddChild(g)
	}
	m.current = g
}

// faceVertex is one "v", "v/vt/vn" or "v//vn" reference in a face
type faceVertex struct {
	vertex core.Tuple
	normal core.Tuple
	smooth bool
}

func (m *ObjModel) resolveVertex(ref string) (faceVertex, error) {
	parts := strings.Split(ref, "/")

	vi, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceVertex{}, fmt.Errorf("face vertex %q: %w", ref, err)
	}
	if vi < 1 || vi > len(m.vertices) {
		return faceVertex{}, fmt.Errorf("face vertex index %d out of range", vi)
	}
	fv := faceVertex{vertex: m.vertices[vi-1]}

	// parts[1] is the texture coordinate index, unused
	if len(parts) == 3 && parts[2] != "" {
		ni, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceVertex{}, fmt.Errorf("face normal %q: %w", ref, err)
		}
		if ni < 1 || ni > len(m.normals) {
			return faceVertex{}, fmt.Errorf("face normal index %d out of range", ni)
		}
		fv.normal = m.normals[ni-1]
		fv.smooth = true
	}
	return fv, nil
}

// addFace fan-triangulates a polygon into triangles anchored at the first
// vertex
func (m *ObjModel) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	verts := make([]faceVertex, len(fields))
	for i, ref := range fields {
		fv, err := m.resolveVertex(ref)
		if err != nil {
			return err
		}
		verts[i] = fv
	}

	for i := 1; i < len(verts)-1; i++ {
		a, b, c := verts[0], verts[i], verts[i+1]

		var tri *shape.Shape
		var err error
		if a.smooth && b.smooth && c.smooth {
			tri, err = shape.NewSmoothTriangle(a.vertex, b.vertex, c.vertex, a.normal, b.normal, c.normal)
		} else {
			tri, err = shape.NewTriangle(a.vertex, b.vertex, c.vertex)
		}
		if err != nil {
			return err
		}
		tri.Material = m.material
		m.current.AddChild(tri)
	}
	return nil
}
