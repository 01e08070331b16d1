package meshdata

import "fmt"

// Indexing selects which of the two layouts an array is expressed in.
type Indexing int

const (
	// Unindexed is the shared-vertex layout: one entry per unique vertex
	// (or per face for face attributes), addressed through the face table.
	Unindexed Indexing = iota
	// FaceExpanded is the flat layout: three entries per face, one per
	// corner, with shared vertices duplicated.
	FaceExpanded
)

// String returns the selector name.
func (ix Indexing) String() string {
	switch ix {
	case Unindexed:
		return "unindexed"
	case FaceExpanded:
		return "faces"
	default:
		return fmt.Sprintf("Indexing(%d)", int(ix))
	}
}

// Valid reports whether ix is one of the two known layouts.
func (ix Indexing) Valid() bool {
	return ix == Unindexed || ix == FaceExpanded
}

func (ix Indexing) check() error {
	if !ix.Valid() {
		return fmt.Errorf("%w: indexing mode %s, accepts unindexed or faces", ErrInvalidArgument, ix)
	}
	return nil
}

// ParseIndexing converts "unindexed" (or "") and "faces" into an Indexing.
func ParseIndexing(s string) (Indexing, error) {
	switch s {
	case "", "unindexed", "none":
		return Unindexed, nil
	case "faces":
		return FaceExpanded, nil
	default:
		return 0, fmt.Errorf("%w: indexing mode %q, accepts unindexed or faces", ErrInvalidArgument, s)
	}
}

// Face is a triangle given as three indices into the unique vertex list,
// in winding order.
type Face [3]uint32

// Edge is an undirected pair of vertex indices.
type Edge [2]uint32

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}
