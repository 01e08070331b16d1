package geometry

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/meshdata"
)

// Solid errors.
var (
	ErrUnknownSolid = errors.New("unknown solid kind")
	ErrInvalidSolid = errors.New("invalid solid dimensions")
)

// Kind names a solid primitive.
type Kind string

// Solid kinds.
const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 64

// Solid describes a primitive centered at the origin.
type Solid struct {
	Kind   Kind
	Size   math.Vec3 // box extents
	Radius float64   // sphere and cylinder
	Height float64   // cylinder, along Z
	Round  float64   // edge rounding for box and cylinder
}

func (s Solid) sdf() (sdf.SDF3, error) {
	switch s.Kind {
	case KindBox:
		if s.Size.X <= 0 || s.Size.Y <= 0 || s.Size.Z <= 0 {
			return nil, fmt.Errorf("%w: box size %v", ErrInvalidSolid, s.Size)
		}
		return sdf.Box3D(v3.Vec{X: float64(s.Size.X), Y: float64(s.Size.Y), Z: float64(s.Size.Z)}, s.Round)
	case KindSphere:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere radius %g", ErrInvalidSolid, s.Radius)
		}
		return sdf.Sphere3D(s.Radius)
	case KindCylinder:
		if s.Radius <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("%w: cylinder radius %g height %g", ErrInvalidSolid, s.Radius, s.Height)
		}
		return sdf.Cylinder3D(s.Height, s.Radius, s.Round)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolid, s.Kind)
	}
}

// Tessellate renders the solid's surface with uniform marching cubes and
// returns three positions per triangle, ready for a face-expanded mesh.
// cells <= 0 means DefaultCells.
func Tessellate(s Solid, cells int) ([]math.Vec3, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	field, err := s.sdf()
	if err != nil {
		return nil, err
	}

	triangles := render.ToTriangles(field, render.NewMarchingCubesUniform(cells))
	out := make([]math.Vec3, 0, 3*len(triangles))
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			out = append(out, math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)})
		}
	}
	return out, nil
}

// SolidMesh tessellates the solid into a face-expanded mesh. Asking the mesh
// for unindexed vertices merges the corners shared between triangles.
func SolidMesh(s Solid, cells int, opts meshdata.Options) (*meshdata.Mesh, error) {
	flat, err := Tessellate(s, cells)
	if err != nil {
		return nil, fmt.Errorf("tessellating %s: %w", s.Kind, err)
	}
	return meshdata.New(meshdata.Data{Vertices: flat}, opts)
}
