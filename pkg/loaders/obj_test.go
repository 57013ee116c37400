package loaders

import (
	"strings"
	"testing"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/material"
	"github.com/jsheldon/rray/pkg/shape"
)

func parse(t *testing.T, input string) *ObjModel {
	t.Helper()
	model, err := ParseObj(strings.NewReader(input), material.New())
	if err != nil {
		t.Fatalf("ParseObj failed: %v", err)
	}
	return model
}

func TestParseObj_IgnoresGibberish(t *testing.T) {
	model := parse(t, `There was a young lady named Bright
who traveled much faster than light.
She set out one day
in a relative way,
and came back the previous night.
`)
	if model.IgnoredLines != 5 {
		t.Errorf("Expected 5 ignored lines, got %d", model.IgnoredLines)
	}
	if len(model.Root.Children()) != 0 {
		t.Errorf("Gibberish must not produce shapes")
	}
}

func TestParseObj_Vertices(t *testing.T) {
	model := parse(t, `v -1 1 0
v -1.0000 0.5000 0.0000
v 1 0 0
v 1 1 0
`)
	expected := []core.Tuple{
		core.NewPoint(-1, 1, 0),
		core.NewPoint(-1, 0.5, 0),
		core.NewPoint(1, 0, 0),
		core.NewPoint(1, 1, 0),
	}
	if len(model.vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(model.vertices))
	}
	for i, want := range expected {
		if !model.vertices[i].Equals(want) {
			t.Errorf("Vertex %d: expected %v, got %v", i+1, want, model.vertices[i])
		}
	}
}

func TestParseObj_Faces(t *testing.T) {
	model := parse(t, `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

f 1 2 3
f 1 3 4
`)
	children := model.Root.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(children))
	}

	t1 := children[0].Primitive().(shape.Triangle)
	if !t1.P1.Equals(core.NewPoint(-1, 1, 0)) ||
		!t1.P2.Equals(core.NewPoint(-1, 0, 0)) ||
		!t1.P3.Equals(core.NewPoint(1, 0, 0)) {
		t.Errorf("Unexpected first triangle %+v", t1)
	}
}

func TestParseObj_FanTriangulation(t *testing.T) {
	model := parse(t, `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
v 0 2 0

f 1 2 3 4 5
`)
	children := model.Root.Children()
	if len(children) != 3 {
		t.Fatalf("Expected 3 triangles from a pentagon, got %d", len(children))
	}
	for i, c := range children {
		tri := c.Primitive().(shape.Triangle)
		if !tri.P1.Equals(core.NewPoint(-1, 1, 0)) {
			t.Errorf("Triangle %d must be anchored at the first vertex, got %v", i, tri.P1)
		}
	}
}

func TestParseObj_NamedGroups(t *testing.T) {
	model := parse(t, `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

g FirstGroup
f 1 2 3
g SecondGroup
f 1 3 4
`)
	children := model.Root.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 sub-groups, got %d", len(children))
	}
	for _, g := range children {
		if g.Primitive() != nil {
			t.Error("Named groups must become group nodes")
		}
		if len(g.Children()) != 1 {
			t.Errorf("Expected 1 triangle per group, got %d", len(g.Children()))
		}
	}
}

func TestParseObj_VertexNormals(t *testing.T) {
	model := parse(t, `v 0 1 0
v -1 0 0
v 1 0 0

vn -1 0 0
vn 1 0 0
vn 0 1 0

f 1//3 2//1 3//2
f 1/0/3 2/102/1 3/14/2
`)
	children := model.Root.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 smooth triangles, got %d", len(children))
	}

	st, ok := children[0].Primitive().(shape.SmoothTriangle)
	if !ok {
		t.Fatalf("Expected a smooth triangle, got %T", children[0].Primitive())
	}
	if !st.N1.Equals(core.NewVector(0, 1, 0)) ||
		!st.N2.Equals(core.NewVector(-1, 0, 0)) ||
		!st.N3.Equals(core.NewVector(1, 0, 0)) {
		t.Errorf("Unexpected normals %+v", st)
	}
}

func TestParseObj_AppliesMaterial(t *testing.T) {
	m := material.New()
	m.Reflective = 0.7
	model, err := ParseObj(strings.NewReader(`v 0 1 0
v -1 0 0
v 1 0 0
f 1 2 3
`), m)
	if err != nil {
		t.Fatal(err)
	}
	tri := model.Root.Children()[0]
	if tri.Material.Reflective != 0.7 {
		t.Errorf("Expected the material applied to triangles, got %+v", tri.Material)
	}
}

func TestParseObj_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"vertex index out of range", "v 0 1 0\nf 1 2 3\n"},
		{"malformed vertex", "v 0 one 0\n"},
		{"face with too few vertices", "v 0 1 0\nv 1 0 0\nf 1 2\n"},
		{"degenerate triangle", "v 0 0 0\nv 1 1 1\nv 2 2 2\nf 1 2 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseObj(strings.NewReader(tt.input), material.New()); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadObjFile_Missing(t *testing.T) {
	if _, err := LoadObjFile("no-such-file.obj", material.New()); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
