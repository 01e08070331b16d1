package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/meshdata"
)

func TestTessellate(t *testing.T) {
	tests := []struct {
		name  string
		solid Solid
	}{
		{"box", Solid{Kind: KindBox, Size: math.Vec3{X: 2, Y: 1, Z: 1}}},
		{"sphere", Solid{Kind: KindSphere, Radius: 1}},
		{"cylinder", Solid{Kind: KindCylinder, Radius: 0.5, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, err := Tessellate(tt.solid, 16)
			require.NoError(t, err)
			require.NotEmpty(t, flat)
			assert.Zero(t, len(flat)%3)
		})
	}
}

func TestTessellateErrors(t *testing.T) {
	_, err := Tessellate(Solid{Kind: "torus"}, 8)
	assert.ErrorIs(t, err, ErrUnknownSolid)

	_, err = Tessellate(Solid{Kind: KindSphere}, 8)
	assert.ErrorIs(t, err, ErrInvalidSolid)

	_, err = Tessellate(Solid{Kind: KindBox, Size: math.Vec3{X: 1, Y: 0, Z: 1}}, 8)
	assert.ErrorIs(t, err, ErrInvalidSolid)

	_, err = SolidMesh(Solid{Kind: KindCylinder, Radius: 1}, 8, meshdata.Options{})
	assert.ErrorIs(t, err, ErrInvalidSolid)
}

func TestSolidMeshSharesCorners(t *testing.T) {
	m, err := SolidMesh(Solid{Kind: KindSphere, Radius: 1}, 16, meshdata.Options{})
	require.NoError(t, err)
	assert.Equal(t, meshdata.FaceExpanded, m.Layout())

	n, err := m.FaceCount()
	require.NoError(t, err)
	unique, err := m.Vertices(meshdata.Unindexed)
	require.NoError(t, err)
	assert.Less(t, len(unique), 3*n, "marching cubes triangles share corners")

	vn, err := m.VertexNormals(meshdata.Unindexed)
	require.NoError(t, err)
	assert.Len(t, vn, len(unique))
	outward, counted := 0, 0
	for i, p := range unique {
		if vn[i].IsZero() || vn[i].HasNaN() {
			continue
		}
		counted++
		if vn[i].Dot(p) > 0 {
			outward++
		}
	}
	require.NotZero(t, counted)
	// Normals on a sphere point away from the center.
	assert.Greater(t, float64(outward)/float64(counted), 0.9)
}
