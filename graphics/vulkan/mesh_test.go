package vulkan

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLoadTriangleMesh(t *testing.T) {
	vertices, err := loadMesh(triangleMesh)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	want := []mgl32.Vec3{{-0.5, -0.5, 0}, {0, 0.5, 0}, {0.5, -0.25, 0}}
	if len(vertices) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(vertices), len(want))
	}
	for i, v := range vertices {
		if !v.Position.ApproxEqual(want[i]) {
			t.Errorf("vertex %d = %v, want %v", i, v.Position, want[i])
		}
	}
}

func TestDecodeMeshTriangulatesQuads(t *testing.T) {
	mesh := `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	vertices, err := decodeMesh(strings.NewReader(mesh), strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(vertices) != 6 {
		t.Fatalf("got %d vertices, want 6", len(vertices))
	}
	if !vertices[3].Position.ApproxEqual(mgl32.Vec3{0, 0, 0}) || !vertices[5].Position.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("second triangle = %v", vertices[3:])
	}
}

func TestShadersAreEmbedded(t *testing.T) {
	for _, name := range []string{vertexShader, fragmentShader} {
		code, err := loadShader(name)
		if err != nil {
			t.Fatalf("%s: %+v", name, err)
		}
		if len(code) == 0 || code[0] != 0x07230203 {
			t.Errorf("%s does not start with the SPIR-V magic number", name)
		}
	}
}
