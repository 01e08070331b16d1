// Package meshdata stores a triangle mesh in two interchangeable layouts and
// lazily derives everything a renderer asks of it.
//
// The indexed layout keeps unique vertex positions plus a face table of
// indices, suitable for indexed draws. The face-expanded layout keeps three
// positions per face with shared vertices duplicated, suitable for
// non-indexed draws. Whichever layout was set last is the source of truth;
// the other one, along with normals, adjacency, edges and the alternate
// forms of colors, is computed on first access and cached until a mutation
// invalidates it.
//
// Accessors return the cached slices directly. Callers must treat them as
// read-only; every change goes through a setter so the caches stay coherent.
//
// A Mesh is not safe for concurrent use.
package meshdata

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/pkg/math"
)

// DefaultTolerance is the quantization step used to merge nearly identical
// positions when reducing a face-expanded mesh to an indexed one.
const DefaultTolerance = 1e-14

// Options configures a Mesh.
type Options struct {
	// Tolerance is the quantization step for vertex deduplication.
	// Zero means DefaultTolerance.
	Tolerance float64
	// Logger receives debug output for expensive derivations.
	// Nil means no logging.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Data is the initial content of a mesh.
//
// When Faces is nil, Vertices holds three positions per face and the mesh
// starts in the face-expanded layout; VertexColors and FaceColors are then
// also read as three entries per face. When Faces is non-nil, Vertices holds
// unique positions, VertexColors one entry per vertex and FaceColors one
// entry per face.
type Data struct {
	Vertices     []math.Vec3
	Faces        []Face
	VertexColors []Color
	FaceColors   []Color
}

// Mesh is the mesh data store.
type Mesh struct {
	opts Options
	log  *zap.Logger

	layout       Indexing
	hasPositions bool
	vertices     []math.Vec3 // unique positions, source when layout == Unindexed
	faces        []Face      // face table, source when layout == Unindexed
	expanded     []math.Vec3 // three per face, source when layout == FaceExpanded

	vertexColors      []Color
	vertexColorLayout Indexing
	faceColors        []Color
	faceColorLayout   Indexing
	edgeColors        []Color

	gen generations

	reduced        cached[*reduction]
	gathered       cached[[]math.Vec3]
	adjacency      cached[[][]int]
	edges          cached[[]Edge]
	faceNormals    cached[[]math.Vec3]
	faceNormalsX   cached[[]math.Vec3]
	vertexNormals  cached[[]math.Vec3]
	vertexNormalsX cached[[]math.Vec3]
	vertexColorsU  cached[[]Color]
	vertexColorsX  cached[[]Color]
	faceColorsU    cached[[]Color]
	faceColorsX    cached[[]Color]
}

// New creates a mesh from data. Every field of data is optional.
func New(data Data, opts Options) (*Mesh, error) {
	m := &Mesh{opts: opts.withDefaults()}
	m.log = m.opts.Logger

	ix := Unindexed
	if data.Faces == nil {
		ix = FaceExpanded
	}

	if data.Vertices != nil {
		if err := m.SetVertices(data.Vertices, ix); err != nil {
			return nil, fmt.Errorf("vertices: %w", err)
		}
	}
	if data.Faces != nil {
		if err := m.SetFaces(data.Faces); err != nil {
			return nil, fmt.Errorf("faces: %w", err)
		}
	}
	if data.VertexColors != nil {
		if err := m.SetVertexColors(data.VertexColors, ix); err != nil {
			return nil, fmt.Errorf("vertex colors: %w", err)
		}
	}
	if data.FaceColors != nil {
		if err := m.SetFaceColors(data.FaceColors, ix); err != nil {
			return nil, fmt.Errorf("face colors: %w", err)
		}
	}
	return m, nil
}

// NewIndexed creates a mesh from unique vertices and a face table.
func NewIndexed(vertices []math.Vec3, faces []Face) (*Mesh, error) {
	if faces == nil {
		faces = []Face{}
	}
	return New(Data{Vertices: vertices, Faces: faces}, Options{})
}

// NewFaceExpanded creates a mesh from three positions per face.
func NewFaceExpanded(vertices []math.Vec3) (*Mesh, error) {
	return New(Data{Vertices: vertices}, Options{})
}

// Layout returns the layout that is currently the source of truth for
// positions.
func (m *Mesh) Layout() Indexing {
	return m.layout
}

// Tolerance returns the deduplication quantization step.
func (m *Mesh) Tolerance() float64 {
	return m.opts.Tolerance
}

// setConfig collects SetOption values.
type setConfig struct {
	resetNormals bool
}

// SetOption tunes SetVertices.
type SetOption func(*setConfig)

// KeepNormals tells SetVertices that cached normals remain valid for the new
// positions, as with a pure translation.
func KeepNormals() SetOption {
	return func(c *setConfig) {
		c.resetNormals = false
	}
}

// SetVertices replaces the positions. With Unindexed, verts are unique
// positions addressed by the existing face table. With FaceExpanded, verts
// hold three positions per face and become the source of truth, the face
// table being derived from them on demand.
//
// Cached normals are dropped unless KeepNormals is given.
func (m *Mesh) SetVertices(verts []math.Vec3, ix Indexing, opts ...SetOption) error {
	if err := ix.check(); err != nil {
		return err
	}
	cfg := setConfig{resetNormals: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	changed := []input{inPositions}
	switch ix {
	case Unindexed:
		if m.layout == FaceExpanded {
			// The face table derived from the old flat positions carries over.
			if m.hasPositions {
				m.faces = m.reduce().faces
			}
			changed = append(changed, inFaces)
		}
		m.vertices = slices.Clone(verts)
		m.expanded = nil
	case FaceExpanded:
		if len(verts)%3 != 0 {
			return fmt.Errorf("%w: face-expanded vertices need 3 per face, got %d", ErrInvalidArgument, len(verts))
		}
		m.expanded = slices.Clone(verts)
		if m.expanded == nil {
			m.expanded = []math.Vec3{}
		}
		m.vertices = nil
		m.faces = nil
		changed = append(changed, inFaces)
	}
	m.layout = ix
	m.hasPositions = true

	if cfg.resetNormals {
		changed = append(changed, inNormals)
	}
	m.gen.bump(changed...)
	return nil
}

// SetFaces replaces the face table. Each face holds three indices into the
// unique vertex list. If positions are currently face-expanded they are
// reduced to unique vertices first and the mesh switches to the indexed
// layout. Edges, adjacency, face-expanded positions, normals and the
// face-indexed forms of colors are all invalidated.
//
// A nil faces slice removes the face table.
func (m *Mesh) SetFaces(faces []Face) error {
	if m.layout == FaceExpanded && m.hasPositions {
		m.vertices = m.reduce().vertices
		m.expanded = nil
		m.layout = Unindexed
		m.gen.bump(inPositions)
	}
	m.layout = Unindexed
	m.faces = slices.Clone(faces)
	m.gen.bump(inFaces, inNormals)
	return nil
}

// ResetNormals drops every cached normal array.
func (m *Mesh) ResetNormals() {
	m.gen.bump(inNormals)
}

// Translate moves every position by offset. Normals stay valid and are kept.
func (m *Mesh) Translate(offset math.Vec3) error {
	src, err := m.positionSource()
	if err != nil {
		return err
	}
	moved := make([]math.Vec3, len(src))
	for i, p := range src {
		moved[i] = p.Add(offset)
	}
	return m.SetVertices(moved, m.layout, KeepNormals())
}

// Transform applies an affine transform to every position. Normals are
// reset unless the transform is a pure translation.
func (m *Mesh) Transform(t math.Mat4) error {
	src, err := m.positionSource()
	if err != nil {
		return err
	}
	moved := make([]math.Vec3, len(src))
	for i, p := range src {
		moved[i] = t.TransformVec3(p)
	}
	var opts []SetOption
	if t.IsAffineTranslation() {
		opts = append(opts, KeepNormals())
	}
	return m.SetVertices(moved, m.layout, opts...)
}

// positionSource returns whichever position array is authoritative.
func (m *Mesh) positionSource() ([]math.Vec3, error) {
	if !m.hasPositions {
		return nil, fmt.Errorf("%w: no vertices set", ErrNoData)
	}
	if m.layout == FaceExpanded {
		return m.expanded, nil
	}
	return m.vertices, nil
}

// HasFaceIndexedData reports whether positions are available three per face
// without further computation.
func (m *Mesh) HasFaceIndexedData() bool {
	if m.layout == FaceExpanded && m.hasPositions {
		return true
	}
	_, ok := m.gathered.load(&m.gen, inPositions, inFaces)
	return ok
}
