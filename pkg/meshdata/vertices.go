package meshdata

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/pkg/math"
)

// reduction is the indexed form derived from face-expanded positions.
type reduction struct {
	vertices    []math.Vec3
	faces       []Face
	vertexFaces [][]int
}

// Vertices returns vertex positions. Unindexed yields one entry per unique
// vertex; FaceExpanded yields three entries per face.
//
// Asking for Unindexed positions of a face-expanded mesh merges corners
// whose coordinates agree within the mesh tolerance. Asking for FaceExpanded
// positions of an indexed mesh gathers vertices through the face table.
//
// The returned slice is the mesh's own storage and must not be modified;
// use SetVertices to change positions.
func (m *Mesh) Vertices(ix Indexing) ([]math.Vec3, error) {
	if err := ix.check(); err != nil {
		return nil, err
	}
	if !m.hasPositions {
		return nil, fmt.Errorf("%w: no vertices set", ErrNoData)
	}

	switch {
	case ix == m.layout && ix == Unindexed:
		return m.vertices, nil
	case ix == m.layout:
		return m.expanded, nil
	case ix == Unindexed:
		return m.reduce().vertices, nil
	}

	if v, ok := m.gathered.load(&m.gen, inPositions, inFaces); ok {
		return v, nil
	}
	if m.faces == nil {
		return nil, fmt.Errorf("%w: no faces set", ErrNoData)
	}
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	out := make([]math.Vec3, 0, 3*len(m.faces))
	for _, f := range m.faces {
		out = append(out, m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]])
	}
	return m.gathered.store(&m.gen, out), nil
}

// Faces returns the face table. For a face-expanded mesh the table comes
// from vertex deduplication.
//
// The returned slice is shared with the mesh and its derived caches such as
// Edges; writing to it leaves them stale. Use SetFaces instead.
func (m *Mesh) Faces() ([]Face, error) {
	if m.layout == FaceExpanded && m.hasPositions {
		return m.reduce().faces, nil
	}
	if m.faces == nil {
		return nil, fmt.Errorf("%w: no faces set", ErrNoData)
	}
	return m.faces, nil
}

// FaceCount returns the number of faces in whichever layout is
// authoritative.
func (m *Mesh) FaceCount() (int, error) {
	if m.layout == FaceExpanded && m.hasPositions {
		return len(m.expanded) / 3, nil
	}
	if m.faces != nil {
		return len(m.faces), nil
	}
	return 0, fmt.Errorf("%w: neither faces nor face-expanded vertices set", ErrNoData)
}

// VertexFaces maps each unique vertex index to the faces using it, in face
// order. A face listing the same vertex twice appears twice.
func (m *Mesh) VertexFaces() ([][]int, error) {
	if m.layout == FaceExpanded && m.hasPositions {
		return m.reduce().vertexFaces, nil
	}
	if vf, ok := m.adjacency.load(&m.gen, inPositions, inFaces); ok {
		return vf, nil
	}
	if !m.hasPositions {
		return nil, fmt.Errorf("%w: no vertices set", ErrNoData)
	}
	if m.faces == nil {
		return nil, fmt.Errorf("%w: no faces set", ErrNoData)
	}
	if err := m.checkFaces(); err != nil {
		return nil, err
	}
	vf := make([][]int, len(m.vertices))
	for i := range vf {
		vf[i] = []int{}
	}
	for i, f := range m.faces {
		for _, v := range f {
			vf[v] = append(vf[v], i)
		}
	}
	return m.adjacency.store(&m.gen, vf), nil
}

// checkFaces verifies that every face index addresses an existing vertex.
func (m *Mesh) checkFaces() error {
	n := uint32(len(m.vertices))
	for i, f := range m.faces {
		for _, v := range f {
			if v >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidArgument, i, v, n)
			}
		}
	}
	return nil
}

// reduce collapses face-expanded positions into unique vertices and a face
// table. Corners are visited face by face; each coordinate is quantized to
// the mesh tolerance and the quantized triple keys a map of first
// occurrences. Only valid while the flat layout is the source of truth.
func (m *Mesh) reduce() *reduction {
	if r, ok := m.reduced.load(&m.gen, inPositions); ok {
		return r
	}

	nf := len(m.expanded) / 3
	tol := m.opts.Tolerance
	seen := make(map[[3]float64]uint32, nf)
	r := &reduction{
		faces: make([]Face, nf),
	}
	for i := 0; i < nf; i++ {
		for j := 0; j < 3; j++ {
			pt := m.expanded[3*i+j]
			key := [3]float64{
				gomath.Round(float64(pt.X) / tol),
				gomath.Round(float64(pt.Y) / tol),
				gomath.Round(float64(pt.Z) / tol),
			}
			idx, ok := seen[key]
			if !ok {
				idx = uint32(len(r.vertices))
				seen[key] = idx
				r.vertices = append(r.vertices, pt)
				r.vertexFaces = append(r.vertexFaces, []int{})
			}
			r.vertexFaces[idx] = append(r.vertexFaces[idx], i)
			r.faces[i][j] = idx
		}
	}
	if r.vertices == nil {
		r.vertices = []math.Vec3{}
		r.vertexFaces = [][]int{}
	}

	m.log.Debug("reduced face-expanded vertices",
		zap.Int("faces", nf),
		zap.Int("corners", 3*nf),
		zap.Int("unique", len(r.vertices)),
		zap.Float64("tolerance", tol))

	return m.reduced.store(&m.gen, r)
}
