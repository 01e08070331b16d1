package meshdata

import "go.uber.org/zap/zapcore"

// Stats summarizes a mesh for logs and tooling.
type Stats struct {
	Layout         Indexing
	Vertices       int
	Faces          int
	Edges          int
	HasVertexColor bool
	HasFaceColor   bool
	HasEdgeColor   bool
}

// Summary reports counts for whatever the mesh can provide. Missing data
// counts as zero. It may trigger deduplication and edge extraction.
func (m *Mesh) Summary() Stats {
	s := Stats{
		Layout:         m.layout,
		HasVertexColor: m.HasVertexColor(),
		HasFaceColor:   m.HasFaceColor(),
		HasEdgeColor:   m.HasEdgeColor(),
	}
	if v, err := m.Vertices(Unindexed); err == nil {
		s.Vertices = len(v)
	}
	if n, err := m.FaceCount(); err == nil {
		s.Faces = n
	}
	if e, err := m.Edges(); err == nil {
		s.Edges = len(e)
	}
	return s
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("layout", s.Layout.String())
	enc.AddInt("vertices", s.Vertices)
	enc.AddInt("faces", s.Faces)
	enc.AddInt("edges", s.Edges)
	enc.AddBool("vertex_color", s.HasVertexColor)
	enc.AddBool("face_color", s.HasFaceColor)
	enc.AddBool("edge_color", s.HasEdgeColor)
	return nil
}
