// Package geometry generates basic solids in the shapes the mesh store
// consumes: a vertex list, a face table and optional extras.
package geometry

import (
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/meshdata"
)

// CubeVertex is one corner of one cube face.
type CubeVertex struct {
	Position math.Vec3
	TexCoord [2]float32
	Normal   math.Vec3
	Color    meshdata.Color
}

var (
	cubeCorners = [8]math.Vec3{
		{1, 1, 1}, {-1, 1, 1}, {-1, -1, 1}, {1, -1, 1},
		{1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, -1},
	}
	cubeNormals = [6]math.Vec3{
		{0, 0, 1}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
	}
	// Corner colors form an RGB cube: each corner's color follows its position.
	cubeColors = [8]meshdata.Color{
		{0, 1, 1, 1}, {0, 0, 1, 1}, {0, 0, 0, 1}, {0, 1, 0, 1},
		{1, 1, 0, 1}, {1, 1, 1, 1}, {1, 0, 1, 1}, {1, 0, 0, 1},
	}
	cubeTexCoords = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	// Four corners per side, counter-clockwise seen from outside.
	cubeSideCorners = [6][4]int{
		{0, 1, 2, 3}, {0, 3, 4, 5}, {0, 5, 6, 1},
		{1, 6, 7, 2}, {7, 4, 3, 2}, {4, 7, 6, 5},
	}
	cubeSideTexCoords = [6][4]int{
		{0, 1, 2, 3}, {0, 1, 2, 3}, {0, 1, 2, 3},
		{3, 2, 1, 0}, {0, 1, 2, 3}, {0, 1, 2, 3},
	}
)

// CreateCube returns a cube spanning [-1,1] on every axis. Each of the six
// sides has its own four vertices so that normals and texture coordinates
// stay per side. filled holds two triangles per side and outline the four
// border segments of every side.
func CreateCube() (vertices []CubeVertex, filled []meshdata.Face, outline []meshdata.Edge) {
	vertices = make([]CubeVertex, 0, 24)
	filled = make([]meshdata.Face, 0, 12)
	outline = make([]meshdata.Edge, 0, 24)

	for side, corners := range cubeSideCorners {
		base := uint32(len(vertices))
		for k, c := range corners {
			vertices = append(vertices, CubeVertex{
				Position: cubeCorners[c],
				TexCoord: cubeTexCoords[cubeSideTexCoords[side][k]],
				Normal:   cubeNormals[side],
				Color:    cubeColors[c],
			})
		}
		filled = append(filled,
			meshdata.Face{base, base + 1, base + 2},
			meshdata.Face{base, base + 2, base + 3})
		outline = append(outline,
			meshdata.Edge{base, base + 1},
			meshdata.Edge{base + 1, base + 2},
			meshdata.Edge{base + 2, base + 3},
			meshdata.Edge{base + 3, base})
	}
	return vertices, filled, outline
}

// CubeMesh builds an indexed mesh with vertex colors from CreateCube.
func CubeMesh(opts meshdata.Options) (*meshdata.Mesh, error) {
	verts, faces, _ := CreateCube()
	positions := make([]math.Vec3, len(verts))
	colors := make([]meshdata.Color, len(verts))
	for i, v := range verts {
		positions[i] = v.Position
		colors[i] = v.Color
	}
	return meshdata.New(meshdata.Data{
		Vertices:     positions,
		Faces:        faces,
		VertexColors: colors,
	}, opts)
}
