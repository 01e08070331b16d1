package meshdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/meshkit/pkg/math"
)

// quad returns a unit square in the XY plane split into two triangles that
// share the edge (0,2).
func quad() ([]math.Vec3, []Face) {
	return []math.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{1, 1, 0},
			{0, 1, 0},
		}, []Face{
			{0, 1, 2},
			{0, 2, 3},
		}
}

// flatQuad is quad in the face-expanded layout.
func flatQuad() []math.Vec3 {
	return []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
		{0, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
}

func newQuad(t *testing.T) *Mesh {
	t.Helper()
	v, f := quad()
	m, err := NewIndexed(v, f)
	require.NoError(t, err)
	return m
}

func TestNewIndexed(t *testing.T) {
	m := newQuad(t)

	assert.Equal(t, Unindexed, m.Layout())
	n, err := m.FaceCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, m.HasFaceIndexedData())

	v, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Len(t, v, 4)
}

func TestNewFaceExpanded(t *testing.T) {
	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)

	assert.Equal(t, FaceExpanded, m.Layout())
	assert.True(t, m.HasFaceIndexedData())
	n, err := m.FaceCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewFaceExpandedRejectsPartialFace(t *testing.T) {
	_, err := NewFaceExpanded(flatQuad()[:5])
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewEmpty(t *testing.T) {
	m, err := New(Data{}, Options{})
	require.NoError(t, err)

	_, err = m.FaceCount()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.Vertices(Unindexed)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.Faces()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.VertexColors(Unindexed)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.FaceColors(Unindexed)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.EdgeColors()
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, DefaultTolerance, m.Tolerance())
}

func TestInvalidIndexing(t *testing.T) {
	m := newQuad(t)
	bogus := Indexing(7)

	_, err := m.Vertices(bogus)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.FaceNormals(bogus)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.VertexNormals(bogus)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.VertexColors(bogus)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.FaceColors(bogus)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, m.SetVertices(nil, bogus), ErrInvalidArgument)
	assert.ErrorIs(t, m.SetVertexColors(nil, bogus), ErrInvalidArgument)
	assert.ErrorIs(t, m.SetFaceColors(nil, bogus), ErrInvalidArgument)

	// A rejected setter leaves the mesh alone.
	v, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Len(t, v, 4)
}

func TestParseIndexing(t *testing.T) {
	tests := []struct {
		in      string
		want    Indexing
		wantErr bool
	}{
		{"", Unindexed, false},
		{"unindexed", Unindexed, false},
		{"none", Unindexed, false},
		{"faces", FaceExpanded, false},
		{"edges", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexing(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Indexing {
	t.Helper()
	ix, err := ParseIndexing(s)
	require.NoError(t, err)
	return ix
}

func TestDualLayoutEquivalence(t *testing.T) {
	m := newQuad(t)

	unique, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	faces, err := m.Faces()
	require.NoError(t, err)
	expanded, err := m.Vertices(FaceExpanded)
	require.NoError(t, err)

	require.Len(t, expanded, 3*len(faces))
	for i, f := range faces {
		for j, v := range f {
			assert.Equal(t, unique[v], expanded[3*i+j], "face %d corner %d", i, j)
		}
	}
	assert.True(t, m.HasFaceIndexedData())
}

func TestCachedAccessorsReturnSameArray(t *testing.T) {
	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)
	require.NoError(t, m.SetFaceColors([]Color{{R: 1, A: 1}, {G: 1, A: 1}}, Unindexed))

	type accessor func() (any, error)
	first := func(v any) any {
		switch s := v.(type) {
		case []math.Vec3:
			return &s[0]
		case []Face:
			return &s[0]
		case []Edge:
			return &s[0]
		case []Color:
			return &s[0]
		case [][]int:
			return &s[0]
		}
		t.Fatalf("unexpected type %T", v)
		return nil
	}
	wrap := func(f func(Indexing) ([]math.Vec3, error), ix Indexing) accessor {
		return func() (any, error) { return f(ix) }
	}

	tests := map[string]accessor{
		"vertices":              wrap(m.Vertices, Unindexed),
		"vertices faces":        wrap(m.Vertices, FaceExpanded),
		"face normals":          wrap(m.FaceNormals, Unindexed),
		"face normals faces":    wrap(m.FaceNormals, FaceExpanded),
		"vertex normals":        wrap(m.VertexNormals, Unindexed),
		"vertex normals faces":  wrap(m.VertexNormals, FaceExpanded),
		"faces":                 func() (any, error) { return m.Faces() },
		"edges":                 func() (any, error) { return m.Edges() },
		"vertex faces":          func() (any, error) { return m.VertexFaces() },
		"face colors faces":     func() (any, error) { return m.FaceColors(FaceExpanded) },
		"face colors unindexed": func() (any, error) { return m.FaceColors(Unindexed) },
	}
	for name, get := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := get()
			require.NoError(t, err)
			b, err := get()
			require.NoError(t, err)
			assert.Same(t, first(a), first(b))
		})
	}
}

func TestCachedDerivationRunsOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m, err := New(Data{Vertices: flatQuad()}, Options{Logger: zap.New(core)})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := m.Vertices(Unindexed)
		require.NoError(t, err)
		_, err = m.VertexNormals(Unindexed)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, logs.FilterMessage("reduced face-expanded vertices").Len())
	assert.Equal(t, 1, logs.FilterMessage("computed vertex normals").Len())

	require.NoError(t, m.SetVertices(flatQuad(), FaceExpanded))
	_, err = m.VertexNormals(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("reduced face-expanded vertices").Len())
	assert.Equal(t, 2, logs.FilterMessage("computed vertex normals").Len())
}

func TestDeduplication(t *testing.T) {
	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)

	v, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, v)

	faces, err := m.Faces()
	require.NoError(t, err)
	assert.Equal(t, []Face{{0, 1, 2}, {0, 2, 3}}, faces)

	vf, err := m.VertexFaces()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {0}, {0, 1}, {1}}, vf)
}

func TestDeduplicationTolerance(t *testing.T) {
	corners := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0.0001, 0, 0}, {0, 1, 0}, {-1, 0, 0},
	}

	tests := []struct {
		name      string
		tolerance float64
		unique    int
	}{
		{"default keeps nearby points apart", 0, 6 - 1},
		{"coarse tolerance merges nearby points", 1e-3, 6 - 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(Data{Vertices: corners}, Options{Tolerance: tt.tolerance})
			require.NoError(t, err)
			v, err := m.Vertices(Unindexed)
			require.NoError(t, err)
			assert.Len(t, v, tt.unique)

			vf, err := m.VertexFaces()
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1}, vf[2], "shared corner (0,1,0) lists both faces")
		})
	}
}

func TestVertexFacesIndexed(t *testing.T) {
	v, f := quad()
	v = append(v, math.Vec3{5, 5, 5})
	m, err := NewIndexed(v, f)
	require.NoError(t, err)

	vf, err := m.VertexFaces()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {0}, {0, 1}, {1}, {}}, vf)
}

func TestSetVerticesUnindexedKeepsDerivedFaces(t *testing.T) {
	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)

	moved := []math.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}
	require.NoError(t, m.SetVertices(moved, Unindexed))
	assert.Equal(t, Unindexed, m.Layout())

	faces, err := m.Faces()
	require.NoError(t, err)
	assert.Equal(t, []Face{{0, 1, 2}, {0, 2, 3}}, faces)

	x, err := m.Vertices(FaceExpanded)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{1, 1, 1}, x[2])
}

func TestSetFacesReducesFlatMesh(t *testing.T) {
	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)

	require.NoError(t, m.SetFaces([]Face{{3, 1, 2}}))
	assert.Equal(t, Unindexed, m.Layout())

	n, err := m.FaceCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	x, err := m.Vertices(FaceExpanded)
	require.NoError(t, err)
	assert.Equal(t, []math.Vec3{{0, 1, 0}, {1, 0, 0}, {1, 1, 0}}, x)
}

func TestFaceOutOfRange(t *testing.T) {
	m, err := NewIndexed([]math.Vec3{{0, 0, 0}, {1, 0, 0}}, []Face{{0, 1, 2}})
	require.NoError(t, err)

	_, err = m.Vertices(FaceExpanded)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = m.VertexFaces()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, m.HasFaceIndexedData(), "failed accessor must not populate the cache")

	require.NoError(t, m.SetVertices([]math.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Unindexed))
	x, err := m.Vertices(FaceExpanded)
	require.NoError(t, err)
	assert.Len(t, x, 3)
}

func TestVerticesWithoutFaces(t *testing.T) {
	m, err := New(Data{}, Options{})
	require.NoError(t, err)
	require.NoError(t, m.SetVertices([]math.Vec3{{1, 2, 3}}, Unindexed))

	v, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Len(t, v, 1)

	_, err = m.Vertices(FaceExpanded)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = m.FaceCount()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSettersCopyInput(t *testing.T) {
	v, f := quad()
	m, err := NewIndexed(v, f)
	require.NoError(t, err)

	v[0] = math.Vec3{9, 9, 9}
	f[0] = Face{3, 3, 3}

	got, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{}, got[0])
	faces, err := m.Faces()
	require.NoError(t, err)
	assert.Equal(t, Face{0, 1, 2}, faces[0])
}

func TestTranslateKeepsNormals(t *testing.T) {
	m := newQuad(t)
	before, err := m.VertexNormals(Unindexed)
	require.NoError(t, err)

	require.NoError(t, m.Translate(math.Vec3{X: 10}))

	after, err := m.VertexNormals(Unindexed)
	require.NoError(t, err)
	assert.Same(t, &before[0], &after[0])

	v, err := m.Vertices(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{10, 0, 0}, v[0])
}

func TestTransformResetsNormals(t *testing.T) {
	m := newQuad(t)
	before, err := m.FaceNormals(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{0, 0, 1}, before[0])

	require.NoError(t, m.Transform(math.Scale(2, 2, 2)))

	after, err := m.FaceNormals(Unindexed)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{0, 0, 4}, after[0])
}

func TestTransformWithoutVertices(t *testing.T) {
	m, err := New(Data{}, Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Transform(math.Identity()), ErrNoData)
	assert.ErrorIs(t, m.Translate(math.Vec3{X: 1}), ErrNoData)
}

func TestSummary(t *testing.T) {
	m := newQuad(t)
	m.SetEdgeColors(make([]Color, 5))

	s := m.Summary()
	assert.Equal(t, Stats{
		Layout:       Unindexed,
		Vertices:     4,
		Faces:        2,
		Edges:        5,
		HasEdgeColor: true,
	}, s)

	empty, err := New(Data{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty.Summary())
}

func TestSummaryLogObject(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	m, err := NewFaceExpanded(flatQuad())
	require.NoError(t, err)
	log.Info("mesh", zap.Object("mesh", m.Summary()))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, map[string]any{
		"layout":       "faces",
		"vertices":     int64(4),
		"faces":        int64(2),
		"edges":        int64(6),
		"vertex_color": false,
		"face_color":   false,
		"edge_color":   false,
	}, fields["mesh"])
}

func TestVertexFacesFollowSetFaces(t *testing.T) {
	m := newQuad(t)
	vf, err := m.VertexFaces()
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1}, {0}, {0, 1}, {1}}, vf)

	require.NoError(t, m.SetFaces([]Face{{1, 2, 3}, {3, 2, 0}}))

	vf2, err := m.VertexFaces()
	require.NoError(t, err)
	assert.NotSame(t, &vf[0], &vf2[0])
	assert.Equal(t, [][]int{{1}, {0}, {0, 1}, {0, 1}}, vf2)

	again, err := m.VertexFaces()
	require.NoError(t, err)
	assert.Same(t, &vf2[0], &again[0])
}
