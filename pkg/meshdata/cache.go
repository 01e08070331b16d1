package meshdata

// input names one source array whose mutation can invalidate derived data.
type input int

const (
	inPositions input = iota
	inFaces
	inNormals
	inVertexColors
	inFaceColors
	numInputs
)

// generations tracks, per input, the mesh generation at which it last
// changed. The counter only grows.
type generations struct {
	now     uint64
	changed [numInputs]uint64
}

// bump starts a new generation and marks the given inputs as changed in it.
func (g *generations) bump(inputs ...input) {
	g.now++
	for _, in := range inputs {
		g.changed[in] = g.now
	}
}

// cached is one memoized derived array. It is trusted only while none of
// the inputs it was built from changed after it was stored.
type cached[T any] struct {
	value T
	at    uint64
	ok    bool
}

func (c *cached[T]) load(g *generations, deps ...input) (T, bool) {
	if !c.ok {
		var zero T
		return zero, false
	}
	for _, d := range deps {
		if g.changed[d] > c.at {
			var zero T
			return zero, false
		}
	}
	return c.value, true
}

func (c *cached[T]) store(g *generations, v T) T {
	c.value = v
	c.at = g.now
	c.ok = true
	return v
}
