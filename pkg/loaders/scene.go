// Package loaders builds worlds from declarative scene files and Wavefront
// OBJ meshes. Scene files may be YAML or JSON; both share one schema, and
// YAML 1.2 is a superset of JSON, so a single decoder handles both.
package loaders

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
	"github.com/jsheldon/rray/pkg/pattern"
	"github.com/jsheldon/rray/pkg/renderer"
	"github.com/jsheldon/rray/pkg/shape"
	"github.com/jsheldon/rray/pkg/world"
)

// GroupThreshold is the child count above which groups are subdivided into
// sub-groups at build time.
const GroupThreshold = 8

// SceneFile mirrors the scene file schema
type SceneFile struct {
	Camera CameraDef   `yaml:"camera"`
	Lights []LightDef  `yaml:"lights"`
	Scene  []ObjectDef `yaml:"scene"`
}

// CameraDef describes the camera
type CameraDef struct {
	FOV  float64   `yaml:"fov"` // degrees
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`
	Up   []float64 `yaml:"up"`
}

// LightDef describes a point or area light
type LightDef struct {
	Type     string    `yaml:"type"`
	Color    []float64 `yaml:"color"`
	Position []float64 `yaml:"position"`
	Corner   []float64 `yaml:"corner"`
	UVec     []float64 `yaml:"uvec"`
	VVec     []float64 `yaml:"vvec"`
	Samples  int       `yaml:"samples"`
}

// TransformDef describes one primitive transform. translate and scale take
// either an amount vector or individual x/y/z components.
type TransformDef struct {
	Type   string    `yaml:"type"`
	Amount []float64 `yaml:"amount"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	Z      float64   `yaml:"z"`
	Axis   string    `yaml:"axis"`
	Angle  float64   `yaml:"angle"` // degrees
	XY     float64   `yaml:"xy"`
	XZ     float64   `yaml:"xz"`
	YX     float64   `yaml:"yx"`
	YZ     float64   `yaml:"yz"`
	ZX     float64   `yaml:"zx"`
	ZY     float64   `yaml:"zy"`
}

// MaterialDef describes a material; absent fields keep their defaults
type MaterialDef struct {
	Pattern         *PatternDef `yaml:"pattern"`
	Ambient         *float64    `yaml:"ambient"`
	Diffuse         *float64    `yaml:"diffuse"`
	Specular        *float64    `yaml:"specular"`
	Shininess       *float64    `yaml:"shininess"`
	Reflective      *float64    `yaml:"reflective"`
	Transparency    *float64    `yaml:"transparency"`
	RefractiveIndex *float64    `yaml:"refractive_index"`
}

// PatternDef describes a pattern. Two-sided kinds accept either colors or
// nested patterns on each side.
type PatternDef struct {
	Type        string         `yaml:"type"`
	Color       []float64      `yaml:"color"`
	ColorA      []float64      `yaml:"color_a"`
	ColorB      []float64      `yaml:"color_b"`
	PatternA    *PatternDef    `yaml:"pattern_a"`
	PatternB    *PatternDef    `yaml:"pattern_b"`
	Transforms  []TransformDef `yaml:"transforms"`
	Scale       *float64       `yaml:"scale"`
	Octaves     *int           `yaml:"octaves"`
	Persistence *float64       `yaml:"persistence"`
	File        string         `yaml:"file"`
	Projection  string         `yaml:"projection"`
}

// ObjectDef describes a shape node
type ObjectDef struct {
	Type        string         `yaml:"type"`
	Transforms  []TransformDef `yaml:"transforms"`
	Material    *MaterialDef   `yaml:"material"`
	Hidden      bool           `yaml:"hidden"`
	Minimum     *float64       `yaml:"minimum"`
	Maximum     *float64       `yaml:"maximum"`
	Closed      bool           `yaml:"closed"`
	MinorRadius *float64       `yaml:"minor_radius"`
	P1          []float64      `yaml:"p1"`
	P2          []float64      `yaml:"p2"`
	P3          []float64      `yaml:"p3"`
	Children    []ObjectDef    `yaml:"children"`
	Operation   string         `yaml:"operation"`
	Left        *ObjectDef     `yaml:"left"`
	Right       *ObjectDef     `yaml:"right"`
	ObjFile     string         `yaml:"obj_file"`
}

// LoadSceneFile reads and decodes a scene file
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &sf, nil
}

// BuildScene loads a scene file and constructs the frozen world and camera
// for a width x height render. Mesh and texture paths are resolved relative
// to the scene file.
func BuildScene(path string, width, height int) (*world.World, *renderer.Camera, error) {
	sf, err := LoadSceneFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Build(sf, filepath.Dir(path), width, height)
}

// Build constructs the world and camera from a decoded scene file
func Build(sf *SceneFile, baseDir string, width, height int) (*world.World, *renderer.Camera, error) {
	camera, err := buildCamera(sf.Camera, width, height)
	if err != nil {
		return nil, nil, err
	}

	w := world.New()
	if len(sf.Lights) == 0 {
		return nil, nil, &ConfigError{Reason: "scene has no lights"}
	}
	for _, def := range sf.Lights {
		light, err := buildLight(def)
		if err != nil {
			return nil, nil, err
		}
		w.AddLight(light)
	}

	for _, def := range sf.Scene {
		if def.Hidden {
			continue
		}
		s, err := buildShape(def, baseDir)
		if err != nil {
			return nil, nil, err
		}
		s.Subdivide(GroupThreshold)
		w.AddShape(s)
	}

	return w, camera, nil
}

func buildCamera(def CameraDef, width, height int) (*renderer.Camera, error) {
	from, err := point(def.From, "camera.from")
	if err != nil {
		return nil, err
	}
	to, err := point(def.To, "camera.to")
	if err != nil {
		return nil, err
	}
	up, err := vector(def.Up, "camera.up")
	if err != nil {
		return nil, err
	}

	camera := renderer.NewCamera(width, height, degreesToRadians(def.FOV))
	view, err := core.ViewTransform(from, to, up)
	if err != nil {
		return nil, err
	}
	if err := camera.SetTransform(view); err != nil {
		return nil, err
	}
	return camera, nil
}

func buildLight(def LightDef) (world.Light, error) {
	intensity, err := colorOf(def.Color, "light.color")
	if err != nil {
		return world.Light{}, err
	}

	switch def.Type {
	case "point":
		position, err := point(def.Position, "light.position")
		if err != nil {
			return world.Light{}, err
		}
		return world.NewPointLight(position, intensity), nil

	case "area":
		corner, err := point(def.Corner, "light.corner")
		if err != nil {
			return world.Light{}, err
		}
		uvec, err := vector(def.UVec, "light.uvec")
		if err != nil {
			return world.Light{}, err
		}
		vvec, err := vector(def.VVec, "light.vvec")
		if err != nil {
			return world.Light{}, err
		}
		samples := def.Samples
		if samples <= 0 {
			samples = 2
		}
		return world.NewAreaLight(corner, uvec, samples, vvec, samples, intensity), nil
	}
	return world.Light{}, &ConfigError{Reason: "unknown light type " + quoted(def.Type)}
}

// buildTransform composes a descriptor list into a single matrix. Each
// descriptor is left-multiplied onto the accumulator, so the first entry of
// the list is applied to the object first.
func buildTransform(defs []TransformDef) (core.Matrix, error) {
	mats := make([]core.Matrix, 0, len(defs))
	for _, def := range defs {
		m, err := buildMatrix(def)
		if err != nil {
			return core.Matrix{}, err
		}
		mats = append(mats, m)
	}
	return core.Compose(mats...), nil
}

func buildMatrix(def TransformDef) (core.Matrix, error) {
	switch def.Type {
	case "translate":
		x, y, z, err := components(def, "translate")
		if err != nil {
			return core.Matrix{}, err
		}
		return core.Translation(x, y, z), nil
	case "scale":
		x, y, z, err := components(def, "scale")
		if err != nil {
			return core.Matrix{}, err
		}
		return core.Scaling(x, y, z), nil
	case "rotate":
		r := degreesToRadians(def.Angle)
		switch def.Axis {
		case "x":
			return core.RotationX(r), nil
		case "y":
			return core.RotationY(r), nil
		case "z":
			return core.RotationZ(r), nil
		}
		return core.Matrix{}, &ConfigError{Reason: "rotate axis must be x, y or z, got " + quoted(def.Axis)}
	case "shear":
		return core.Shearing(def.XY, def.XZ, def.YX, def.YZ, def.ZX, def.ZY), nil
	}
	return core.Matrix{}, &ConfigError{Reason: "unknown transform type " + quoted(def.Type)}
}

// components accepts either the amount vector or individual x/y/z fields
func components(def TransformDef, what string) (float64, float64, float64, error) {
	if def.Amount != nil {
		if len(def.Amount) != 3 {
			return 0, 0, 0, &ConfigError{Reason: fmt.Sprintf("%s amount needs 3 components, got %d", what, len(def.Amount))}
		}
		return def.Amount[0], def.Amount[1], def.Amount[2], nil
	}
	return def.X, def.Y, def.Z, nil
}

func buildMaterial(def *MaterialDef, baseDir string) (material.Material, error) {
	m := material.New()
	if def == nil {
		return m, nil
	}
	if def.Pattern != nil {
		p, err := buildPattern(def.Pattern, baseDir)
		if err != nil {
			return m, err
		}
		m.Pattern = p
	}
	if def.Ambient != nil {
		m.Ambient = *def.Ambient
	}
	if def.Diffuse != nil {
		m.Diffuse = *def.Diffuse
	}
	if def.Specular != nil {
		m.Specular = *def.Specular
	}
	if def.Shininess != nil {
		m.Shininess = *def.Shininess
	}
	if def.Reflective != nil {
		m.Reflective = *def.Reflective
	}
	if def.Transparency != nil {
		m.Transparency = *def.Transparency
	}
	if def.RefractiveIndex != nil {
		m.RefractiveIndex = *def.RefractiveIndex
	}
	return m, nil
}

// side resolves one side of a two-sided pattern: a nested pattern when
// present, otherwise the color wrapped in a solid.
func side(p *PatternDef, c []float64, field, baseDir string) (*pattern.Pattern, error) {
	if p != nil {
		return buildPattern(p, baseDir)
	}
	if c == nil {
		return nil, &ConfigError{Reason: field + " is missing"}
	}
	col, err := colorOf(c, field)
	if err != nil {
		return nil, err
	}
	return pattern.NewSolid(col), nil
}

func buildPattern(def *PatternDef, baseDir string) (*pattern.Pattern, error) {
	var p *pattern.Pattern

	switch def.Type {
	case "solid":
		col, err := colorOf(def.Color, "pattern.color")
		if err != nil {
			return nil, err
		}
		p = pattern.NewSolid(col)

	case "stripe", "gradient", "ring", "checker", "blend", "noise":
		a, err := side(def.PatternA, def.ColorA, "pattern.color_a", baseDir)
		if err != nil {
			return nil, err
		}
		b, err := side(def.PatternB, def.ColorB, "pattern.color_b", baseDir)
		if err != nil {
			return nil, err
		}
		switch def.Type {
		case "stripe":
			p = pattern.NewStripe(a, b)
		case "gradient":
			p = pattern.NewGradient(a, b)
		case "ring":
			p = pattern.NewRing(a, b)
		case "checker":
			p = pattern.NewChecker(a, b)
		case "blend":
			p = pattern.NewBlend(a, b, floatOr(def.Scale, 0.5))
		case "noise":
			p = pattern.NewNoise(a, b, floatOr(def.Scale, 1), intOr(def.Octaves, 1), floatOr(def.Persistence, 1))
		}

	case "perturbed":
		inner, err := side(def.PatternA, def.ColorA, "pattern.pattern_a", baseDir)
		if err != nil {
			return nil, err
		}
		p = pattern.NewPerturbed(inner, floatOr(def.Scale, 0.2), intOr(def.Octaves, 3), floatOr(def.Persistence, 0.5))

	case "image":
		if def.File == "" {
			return nil, &ConfigError{Reason: "image pattern needs a file"}
		}
		tex, err := pattern.LoadTexture(filepath.Join(baseDir, def.File))
		if err != nil {
			return nil, err
		}
		if def.Projection == "spherical" {
			tex.Projection = pattern.ProjectSpherical
		}
		p = pattern.NewImage(tex)

	default:
		return nil, &ConfigError{Reason: "unknown pattern type " + quoted(def.Type)}
	}

	if len(def.Transforms) > 0 {
		m, err := buildTransform(def.Transforms)
		if err != nil {
			return nil, err
		}
		if err := p.SetTransform(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func buildShape(def ObjectDef, baseDir string) (*shape.Shape, error) {
	var s *shape.Shape
	var err error

	switch def.Type {
	case "sphere":
		s = shape.NewSphere()
	case "glass_sphere":
		s = shape.NewGlassSphere()
	case "plane":
		s = shape.NewPlane()
	case "cube":
		s = shape.NewCube()
	case "cylinder":
		s = shape.NewCylinder(floatOr(def.Minimum, math.Inf(-1)), floatOr(def.Maximum, math.Inf(1)), def.Closed)
	case "cone":
		s = shape.NewCone(floatOr(def.Minimum, math.Inf(-1)), floatOr(def.Maximum, math.Inf(1)), def.Closed)
	case "torus":
		s = shape.NewTorus(floatOr(def.MinorRadius, 0.25))
	case "triangle":
		s, err = buildTriangle(def)
	case "group":
		s, err = buildGroup(def, baseDir)
	case "csg":
		s, err = buildCSG(def, baseDir)
	case "obj_file":
		s, err = buildObjFile(def, baseDir)
	default:
		return nil, &ConfigError{Reason: "unknown shape type " + quoted(def.Type)}
	}
	if err != nil {
		return nil, err
	}

	if len(def.Transforms) > 0 {
		m, err := buildTransform(def.Transforms)
		if err != nil {
			return nil, err
		}
		if err := s.SetTransform(m); err != nil {
			return nil, err
		}
	}
	if def.Material != nil && def.Type != "obj_file" {
		m, err := buildMaterial(def.Material, baseDir)
		if err != nil {
			return nil, err
		}
		s.Material = m
	}
	return s, nil
}

func buildTriangle(def ObjectDef) (*shape.Shape, error) {
	p1, err := point(def.P1, "triangle.p1")
	if err != nil {
		return nil, err
	}
	p2, err := point(def.P2, "triangle.p2")
	if err != nil {
		return nil, err
	}
	p3, err := point(def.P3, "triangle.p3")
	if err != nil {
		return nil, err
	}
	return shape.NewTriangle(p1, p2, p3)
}

func buildGroup(def ObjectDef, baseDir string) (*shape.Shape, error) {
	g := shape.NewGroup()
	for _, child := range def.Children {
		if child.Hidden {
			continue
		}
		c, err := buildShape(child, baseDir)
		if err != nil {
			return nil, err
		}
		g.AddChild(c)
	}
	return g, nil
}

func buildCSG(def ObjectDef, baseDir string) (*shape.Shape, error) {
	var op shape.Operation
	switch def.Operation {
	case "union":
		op = shape.Union
	case "intersection":
		op = shape.Intersect
	case "difference":
		op = shape.Difference
	default:
		return nil, &ConfigError{Reason: "unknown csg operation " + quoted(def.Operation)}
	}
	if def.Left == nil || def.Right == nil {
		return nil, &ConfigError{Reason: "csg needs both left and right shapes"}
	}
	left, err := buildShape(*def.Left, baseDir)
	if err != nil {
		return nil, err
	}
	right, err := buildShape(*def.Right, baseDir)
	if err != nil {
		return nil, err
	}
	return shape.NewCSG(op, left, right), nil
}

func buildObjFile(def ObjectDef, baseDir string) (*shape.Shape, error) {
	if def.ObjFile == "" {
		return nil, &ConfigError{Reason: "obj_file shape needs an obj_file path"}
	}
	m, err := buildMaterial(def.Material, baseDir)
	if err != nil {
		return nil, err
	}
	return LoadObjFile(filepath.Join(baseDir, def.ObjFile), m)
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func point(v []float64, field string) (core.Tuple, error) {
	if len(v) != 3 {
		return core.Tuple{}, &ConfigError{Reason: fmt.Sprintf("%s needs 3 components, got %d", field, len(v))}
	}
	return core.NewPoint(v[0], v[1], v[2]), nil
}

func vector(v []float64, field string) (core.Tuple, error) {
	if len(v) != 3 {
		return core.Tuple{}, &ConfigError{Reason: fmt.Sprintf("%s needs 3 components, got %d", field, len(v))}
	}
	return core.NewVector(v[0], v[1], v[2]), nil
}

func colorOf(v []float64, field string) (core.Color, error) {
	if len(v) != 3 {
		return core.Color{}, &ConfigError{Reason: fmt.Sprintf("%s needs 3 components, got %d", field, len(v))}
	}
	return core.NewColor(v[0], v[1], v[2]), nil
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}
