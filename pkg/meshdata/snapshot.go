package meshdata

import (
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/Faultbox/meshkit/pkg/math"
)

// snapshotFormat tags every blob written by Save. Restore rejects anything
// else, including well-formed msgpack from another producer.
const snapshotFormat = "meshkit.mesh/1"

var msgpack = newMsgpackHandle()

func newMsgpackHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.ErrorIfNoField = true
	return h
}

// snapshot is the persisted form of a mesh: only source-of-truth arrays.
type snapshot struct {
	Format       string      `codec:"format"`
	Layout       Indexing    `codec:"layout"`
	HasPositions bool        `codec:"has_positions"`
	HasFaces     bool        `codec:"has_faces"`
	Vertices     []math.Vec3 `codec:"vertices"`
	Faces        []Face      `codec:"faces"`

	VertexColors      []Color  `codec:"vertex_colors"`
	VertexColorLayout Indexing `codec:"vertex_color_layout"`
	FaceColors        []Color  `codec:"face_colors"`
	FaceColorLayout   Indexing `codec:"face_color_layout"`
	EdgeColors        []Color  `codec:"edge_colors"`
}

// Save serializes the mesh for storage. Only the authoritative arrays are
// written: unique vertices and faces for an indexed mesh, or the
// face-expanded positions for a flat one, plus whichever color arrays were
// set. Derived data is recomputed after Restore.
func (m *Mesh) Save() ([]byte, error) {
	s := snapshot{
		Format:            snapshotFormat,
		Layout:            m.layout,
		HasPositions:      m.hasPositions,
		HasFaces:          m.faces != nil,
		Faces:             m.faces,
		VertexColors:      m.vertexColors,
		VertexColorLayout: m.vertexColorLayout,
		FaceColors:        m.faceColors,
		FaceColorLayout:   m.faceColorLayout,
		EdgeColors:        m.edgeColors,
	}
	if m.layout == FaceExpanded {
		s.Vertices = m.expanded
	} else {
		s.Vertices = m.vertices
	}

	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpack).Encode(&s); err != nil {
		return nil, fmt.Errorf("encoding mesh: %w", err)
	}
	return out, nil
}

// Restore replaces the whole mesh state with a blob produced by Save. On
// error the mesh is left untouched.
func (m *Mesh) Restore(blob []byte) error {
	if len(blob) == 0 {
		return fmt.Errorf("%w: empty snapshot", ErrCorruptSnapshot)
	}
	var s snapshot
	if err := codec.NewDecoderBytes(blob, msgpack).Decode(&s); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if s.Format != snapshotFormat {
		return fmt.Errorf("%w: unknown format %q", ErrCorruptSnapshot, s.Format)
	}
	for _, ix := range []Indexing{s.Layout, s.VertexColorLayout, s.FaceColorLayout} {
		if !ix.Valid() {
			return fmt.Errorf("%w: unknown layout %s", ErrCorruptSnapshot, ix)
		}
	}
	if s.Layout == FaceExpanded && len(s.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d face-expanded vertices", ErrCorruptSnapshot, len(s.Vertices))
	}
	if s.HasFaces && s.Faces == nil {
		s.Faces = []Face{}
	}

	fresh := &Mesh{opts: m.opts, log: m.log}
	fresh.gen.now = m.gen.now
	if s.HasPositions {
		if s.Vertices == nil {
			s.Vertices = []math.Vec3{}
		}
		if err := fresh.SetVertices(s.Vertices, s.Layout); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}
	if s.HasFaces {
		if err := fresh.SetFaces(s.Faces); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}
	if s.VertexColors != nil {
		if err := fresh.SetVertexColors(s.VertexColors, s.VertexColorLayout); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}
	if s.FaceColors != nil {
		if err := fresh.SetFaceColors(s.FaceColors, s.FaceColorLayout); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}
	if s.EdgeColors != nil {
		fresh.SetEdgeColors(s.EdgeColors)
	}
	*m = *fresh
	return nil
}

// Load creates a mesh from a blob produced by Save.
func Load(blob []byte, opts Options) (*Mesh, error) {
	m, err := New(Data{}, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Restore(blob); err != nil {
		return nil, err
	}
	return m, nil
}
