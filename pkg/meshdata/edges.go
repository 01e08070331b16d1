package meshdata

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Edges returns the undirected edges of the mesh.
//
// For an indexed mesh each face contributes (f0,f1), (f1,f2) and (f2,f0);
// every pair is ordered low index first, then the list is sorted and
// duplicates shared between faces are removed.
//
// A face-expanded mesh has no shared vertices, so its edges address the
// three-per-face position array directly: face i yields (3i,3i+1),
// (3i+1,3i+2) and (3i+2,3i), with no merging across faces.
//
// Without a face table of either kind Edges fails with
// ErrUnsupportedOperation.
func (m *Mesh) Edges() ([]Edge, error) {
	if e, ok := m.edges.load(&m.gen, inPositions, inFaces); ok {
		return e, nil
	}

	switch {
	case m.layout == Unindexed && m.faces != nil:
		return m.edges.store(&m.gen, m.indexedEdges()), nil
	case m.layout == FaceExpanded && m.hasPositions:
		return m.edges.store(&m.gen, flatEdges(len(m.expanded)/3)), nil
	default:
		return nil, fmt.Errorf("%w: cannot generate edges, no faces in this mesh", ErrUnsupportedOperation)
	}
}

func (m *Mesh) indexedEdges() []Edge {
	edges := make([]Edge, 0, 3*len(m.faces))
	for _, f := range m.faces {
		edges = append(edges,
			canonicalEdge(f[0], f[1]),
			canonicalEdge(f[1], f[2]),
			canonicalEdge(f[2], f[0]))
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	edges = slices.Compact(edges)

	m.log.Debug("extracted edges",
		zap.Int("faces", len(m.faces)),
		zap.Int("edges", len(edges)))
	return edges
}

func canonicalEdge(a, b uint32) Edge {
	if a > b {
		return Edge{b, a}
	}
	return Edge{a, b}
}

func flatEdges(nf int) []Edge {
	edges := make([]Edge, 0, 3*nf)
	for i := 0; i < nf; i++ {
		base := uint32(3 * i)
		edges = append(edges,
			Edge{base, base + 1},
			Edge{base + 1, base + 2},
			Edge{base + 2, base})
	}
	return edges
}
