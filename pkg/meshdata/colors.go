package meshdata

import (
	"fmt"
	"slices"
)

// SetVertexColors replaces the vertex colors. With Unindexed there is one
// color per unique vertex; with FaceExpanded there are three per face.
func (m *Mesh) SetVertexColors(colors []Color, ix Indexing) error {
	if err := ix.check(); err != nil {
		return err
	}
	if ix == FaceExpanded && len(colors)%3 != 0 {
		return fmt.Errorf("%w: face-expanded vertex colors need 3 per face, got %d", ErrInvalidArgument, len(colors))
	}
	m.vertexColors = slices.Clone(colors)
	m.vertexColorLayout = ix
	m.gen.bump(inVertexColors)
	return nil
}

// SetFaceColors replaces the face colors. With Unindexed there is one color
// per face; with FaceExpanded there are three per face.
func (m *Mesh) SetFaceColors(colors []Color, ix Indexing) error {
	if err := ix.check(); err != nil {
		return err
	}
	if ix == FaceExpanded && len(colors)%3 != 0 {
		return fmt.Errorf("%w: face-expanded face colors need 3 per face, got %d", ErrInvalidArgument, len(colors))
	}
	m.faceColors = slices.Clone(colors)
	m.faceColorLayout = ix
	m.gen.bump(inFaceColors)
	return nil
}

// SetEdgeColors replaces the per-edge colors, one per entry of Edges.
func (m *Mesh) SetEdgeColors(colors []Color) {
	m.edgeColors = slices.Clone(colors)
}

// HasVertexColor reports whether vertex colors were set.
func (m *Mesh) HasVertexColor() bool {
	return m.vertexColors != nil
}

// HasFaceColor reports whether face colors were set.
func (m *Mesh) HasFaceColor() bool {
	return m.faceColors != nil
}

// HasEdgeColor reports whether edge colors were set.
func (m *Mesh) HasEdgeColor() bool {
	return m.edgeColors != nil
}

// EdgeColors returns the per-edge colors.
func (m *Mesh) EdgeColors() ([]Color, error) {
	if m.edgeColors == nil {
		return nil, fmt.Errorf("%w: no edge colors set", ErrNoData)
	}
	return m.edgeColors, nil
}

// VertexColors returns vertex colors in the requested layout.
//
// Converting to FaceExpanded gathers colors through the face table.
// Converting face-expanded colors back to Unindexed keeps, for each unique
// vertex, the color of the first corner that references it; vertices no
// face references get the zero color.
func (m *Mesh) VertexColors(ix Indexing) ([]Color, error) {
	if err := ix.check(); err != nil {
		return nil, err
	}
	if m.vertexColors == nil {
		return nil, fmt.Errorf("%w: no vertex colors set", ErrNoData)
	}
	if ix == m.vertexColorLayout {
		return m.vertexColors, nil
	}

	if ix == FaceExpanded {
		if c, ok := m.vertexColorsX.load(&m.gen, inVertexColors, inPositions, inFaces); ok {
			return c, nil
		}
		faces, err := m.Faces()
		if err != nil {
			return nil, err
		}
		out := make([]Color, 0, 3*len(faces))
		for i, f := range faces {
			for _, v := range f {
				if int(v) >= len(m.vertexColors) {
					return nil, fmt.Errorf("%w: face %d references vertex %d, only %d vertex colors", ErrInvalidArgument, i, v, len(m.vertexColors))
				}
				out = append(out, m.vertexColors[v])
			}
		}
		return m.vertexColorsX.store(&m.gen, out), nil
	}

	if c, ok := m.vertexColorsU.load(&m.gen, inVertexColors, inPositions, inFaces); ok {
		return c, nil
	}
	// Validate before Faces, which may dedup and populate the cache.
	nf, err := m.FaceCount()
	if err != nil {
		return nil, err
	}
	if len(m.vertexColors) != 3*nf {
		return nil, fmt.Errorf("%w: %d face-expanded vertex colors for %d faces", ErrInvalidArgument, len(m.vertexColors), nf)
	}
	faces, err := m.Faces()
	if err != nil {
		return nil, err
	}
	verts, err := m.Vertices(Unindexed)
	if err != nil {
		return nil, err
	}
	out := make([]Color, len(verts))
	assigned := make([]bool, len(verts))
	for i, f := range faces {
		for j, v := range f {
			if int(v) >= len(out) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidArgument, i, v, len(out))
			}
			if !assigned[v] {
				out[v] = m.vertexColors[3*i+j]
				assigned[v] = true
			}
		}
	}
	return m.vertexColorsU.store(&m.gen, out), nil
}

// FaceColors returns face colors in the requested layout. FaceExpanded
// repeats each face color for the three corners; converting back to
// Unindexed keeps the first corner's color.
func (m *Mesh) FaceColors(ix Indexing) ([]Color, error) {
	if err := ix.check(); err != nil {
		return nil, err
	}
	if m.faceColors == nil {
		return nil, fmt.Errorf("%w: no face colors set", ErrNoData)
	}
	if ix == m.faceColorLayout {
		return m.faceColors, nil
	}

	if ix == FaceExpanded {
		if c, ok := m.faceColorsX.load(&m.gen, inFaceColors, inFaces); ok {
			return c, nil
		}
		out := make([]Color, 0, 3*len(m.faceColors))
		for _, c := range m.faceColors {
			out = append(out, c, c, c)
		}
		return m.faceColorsX.store(&m.gen, out), nil
	}

	if c, ok := m.faceColorsU.load(&m.gen, inFaceColors); ok {
		return c, nil
	}
	out := make([]Color, len(m.faceColors)/3)
	for i := range out {
		out[i] = m.faceColors[3*i]
	}
	return m.faceColorsU.store(&m.gen, out), nil
}
