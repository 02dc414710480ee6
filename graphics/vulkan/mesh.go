package vulkan

import (
	"embed"
	"io"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders meshes
var assets embed.FS

// Vertex is the layout of the vertex buffer: a single position attribute.
type Vertex struct {
	Position mgl32.Vec3
}

// ClearColor is what every frame is cleared to before drawing.
var ClearColor = mgl32.Vec4{0, 0, 1, 1}

// triangleMesh is the static scene.
const triangleMesh = "triangle"

func loadMesh(name string) ([]Vertex, error) {
	meshFile, err := assets.Open(path.Join("meshes", name+".obj"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening mesh %s", name)
	}
	defer meshFile.Close()

	matFile, err := assets.Open(path.Join("meshes", name+".mtl"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening materials of mesh %s", name)
	}
	defer matFile.Close()

	return decodeMesh(meshFile, matFile)
}

// decodeMesh turns every face of every object into a triangle list.
func decodeMesh(mesh, materials io.Reader) ([]Vertex, error) {
	decoder, err := obj.DecodeReader(mesh, materials)
	if err != nil {
		return nil, errors.Wrap(err, "decoding mesh")
	}

	vertex := func(index int) Vertex {
		return Vertex{Position: mgl32.Vec3{
			decoder.Vertices[index*3],
			decoder.Vertices[index*3+1],
			decoder.Vertices[index*3+2],
		}}
	}

	var vertices []Vertex
	for _, decodedObj := range decoder.Objects {
		for _, face := range decodedObj.Faces {
			for i := 2; i < len(face.Vertices); i++ {
				vertices = append(vertices,
					vertex(face.Vertices[0]),
					vertex(face.Vertices[i-1]),
					vertex(face.Vertices[i]),
				)
			}
		}
	}

	if len(vertices) == 0 {
		return nil, errors.New("mesh has no faces")
	}
	return vertices, nil
}
