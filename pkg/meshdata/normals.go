package meshdata

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/pkg/math"
)

// FaceNormals returns one normal per face, computed as
// cross(v1-v0, v2-v0) in winding order. The result is deliberately not
// unit length: its magnitude is twice the triangle area, which gives
// area-weighted vertex normals. Degenerate faces yield the zero vector.
//
// With FaceExpanded each face normal is repeated for the three corners.
func (m *Mesh) FaceNormals(ix Indexing) ([]math.Vec3, error) {
	if err := ix.check(); err != nil {
		return nil, err
	}
	fn, ok := m.faceNormals.load(&m.gen, inNormals)
	if !ok {
		v, err := m.Vertices(FaceExpanded)
		if err != nil {
			return nil, err
		}
		fn = make([]math.Vec3, len(v)/3)
		for i := range fn {
			v0, v1, v2 := v[3*i], v[3*i+1], v[3*i+2]
			fn[i] = v1.Sub(v0).Cross(v2.Sub(v0))
		}
		m.faceNormals.store(&m.gen, fn)
	}
	if ix == Unindexed {
		return fn, nil
	}

	if x, ok := m.faceNormalsX.load(&m.gen, inNormals); ok {
		return x, nil
	}
	x := make([]math.Vec3, 0, 3*len(fn))
	for _, n := range fn {
		x = append(x, n, n, n)
	}
	return m.faceNormalsX.store(&m.gen, x), nil
}

// VertexNormals returns one unit normal per unique vertex: the normalized
// sum of the raw normals of every face using it. A vertex used by no face
// gets the zero vector. Incident normals that cancel out exactly produce
// NaN components; they are not patched.
//
// With FaceExpanded the per-vertex normals are gathered through the face
// table, three per face.
func (m *Mesh) VertexNormals(ix Indexing) ([]math.Vec3, error) {
	if err := ix.check(); err != nil {
		return nil, err
	}
	vn, ok := m.vertexNormals.load(&m.gen, inNormals)
	if !ok {
		var err error
		if vn, err = m.computeVertexNormals(); err != nil {
			return nil, err
		}
		m.vertexNormals.store(&m.gen, vn)
	}
	if ix == Unindexed {
		return vn, nil
	}

	if x, ok := m.vertexNormalsX.load(&m.gen, inNormals, inFaces); ok {
		return x, nil
	}
	faces, err := m.Faces()
	if err != nil {
		return nil, err
	}
	x := make([]math.Vec3, 0, 3*len(faces))
	for _, f := range faces {
		for _, v := range f {
			if int(v) >= len(vn) {
				// Normals kept across a SetVertices that changed the vertex count.
				x = append(x, math.Vec3{})
				continue
			}
			x = append(x, vn[v])
		}
	}
	return m.vertexNormalsX.store(&m.gen, x), nil
}

func (m *Mesh) computeVertexNormals() ([]math.Vec3, error) {
	fn, err := m.FaceNormals(Unindexed)
	if err != nil {
		return nil, err
	}
	vf, err := m.VertexFaces()
	if err != nil {
		return nil, err
	}

	vn := make([]math.Vec3, len(vf))
	for v, faces := range vf {
		if len(faces) == 0 {
			continue
		}
		var sum math.Vec3
		for _, f := range faces {
			sum = sum.Add(fn[f])
		}
		vn[v] = sum.Scale(1 / sum.Length())
	}

	m.log.Debug("computed vertex normals",
		zap.Int("vertices", len(vn)),
		zap.Int("faces", len(fn)))
	return vn, nil
}
