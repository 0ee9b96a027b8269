// Package scene holds the hand-authored meshes of the tutorials and the
// transform state that moves them.
package scene

import (
	"errors"
	"fmt"

	"github.com/toxichemicals/GO/holy-webgl/gfx"
)

var ErrMalformed = errors.New("malformed mesh")

// Attribute names shared by the tutorial shaders.
const (
	AttribPosition = "vertPosition"
	AttribColor    = "vertColor"
)

var (
	// CubeLayout is X, Y, Z, R, G, B per vertex.
	CubeLayout = gfx.Layout{{Name: AttribPosition, Size: 3}, {Name: AttribColor, Size: 3}}
	// FlatLayout is X, Y, R, G, B per vertex.
	FlatLayout = gfx.Layout{{Name: AttribPosition, Size: 2}, {Name: AttribColor, Size: 3}}
)

// Mesh is interleaved vertex data plus an optional triangle index list.
type Mesh struct {
	Data    []float32
	Indices []uint16
	Layout  gfx.Layout
}

// VertexCount is the number of whole vertex records in Data.
func (m Mesh) VertexCount() int {
	if s := m.Layout.Stride(); s > 0 {
		return len(m.Data) / s
	}
	return 0
}

// Validate checks that Data holds whole vertex records, that the index list
// describes whole triangles, and that every index refers to a vertex.
func (m Mesh) Validate() error {
	stride := m.Layout.Stride()
	if stride == 0 {
		return fmt.Errorf("%w: empty layout", ErrMalformed)
	}
	if len(m.Data)%stride != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of stride %d", ErrMalformed, len(m.Data), stride)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form whole triangles", ErrMalformed, len(m.Indices))
	}
	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at position %d exceeds %d vertices", ErrMalformed, idx, i, n)
		}
	}
	return nil
}

// Components returns the named attribute of every vertex.
func (m Mesh) Components(name string) ([][]float32, error) {
	i := m.Layout.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: no attribute %q", ErrMalformed, name)
	}
	stride := m.Layout.Stride()
	off := m.Layout.OffsetBytes(i) / 4
	size := m.Layout[i].Size
	out := make([][]float32, 0, m.VertexCount())
	for v := 0; v+stride <= len(m.Data); v += stride {
		out = append(out, m.Data[v+off:v+off+size:v+off+size])
	}
	return out, nil
}

// Cube returns the tutorial cube: 6 faces of 4 vertices each, one flat color
// per face, two counter-clockwise triangles per face.
func Cube() Mesh {
	return Mesh{
		Layout: CubeLayout,
		Data: []float32{
			// X, Y, Z           R, G, B
			// Top
			-1.0, 1.0, -1.0, 0.5, 0.5, 0.5,
			-1.0, 1.0, 1.0, 0.5, 0.5, 0.5,
			1.0, 1.0, 1.0, 0.5, 0.5, 0.5,
			1.0, 1.0, -1.0, 0.5, 0.5, 0.5,

			// Left
			-1.0, 1.0, 1.0, 0.75, 0.25, 0.5,
			-1.0, -1.0, 1.0, 0.75, 0.25, 0.5,
			-1.0, -1.0, -1.0, 0.75, 0.25, 0.5,
			-1.0, 1.0, -1.0, 0.75, 0.25, 0.5,

			// Right
			1.0, 1.0, 1.0, 0.25, 0.25, 0.75,
			1.0, -1.0, 1.0, 0.25, 0.25, 0.75,
			1.0, -1.0, -1.0, 0.25, 0.25, 0.75,
			1.0, 1.0, -1.0, 0.25, 0.25, 0.75,

			// Front
			1.0, 1.0, 1.0, 1.0, 0.0, 0.15,
			1.0, -1.0, 1.0, 1.0, 0.0, 0.15,
			-1.0, -1.0, 1.0, 1.0, 0.0, 0.15,
			-1.0, 1.0, 1.0, 1.0, 0.0, 0.15,

			// Back
			1.0, 1.0, -1.0, 0.0, 1.0, 0.15,
			1.0, -1.0, -1.0, 0.0, 1.0, 0.15,
			-1.0, -1.0, -1.0, 0.0, 1.0, 0.15,
			-1.0, 1.0, -1.0, 0.0, 1.0, 0.15,

			// Bottom
			-1.0, -1.0, -1.0, 0.5, 0.5, 1.0,
			-1.0, -1.0, 1.0, 0.5, 0.5, 1.0,
			1.0, -1.0, 1.0, 0.5, 0.5, 1.0,
			1.0, -1.0, -1.0, 0.5, 0.5, 1.0,
		},
		Indices: []uint16{
			// Top
			0, 1, 2,
			0, 2, 3,

			// Left
			5, 4, 6,
			6, 4, 7,

			// Right
			8, 9, 10,
			8, 10, 11,

			// Front
			13, 12, 14,
			15, 14, 12,

			// Back
			16, 17, 18,
			16, 18, 19,

			// Bottom
			21, 20, 22,
			22, 20, 23,
		},
	}
}

// Triangle returns the flat tutorial triangle. It has no index list.
func Triangle() Mesh {
	return Mesh{
		Layout: FlatLayout,
		Data: []float32{
			// X, Y       R, G, B
			0.0, 0.5, 1.0, 0.5, 0.3,
			-0.5, -0.5, 0.2, 0.8, 0.0,
			0.5, -0.5, 0.0, 0.1, 0.9,
		},
	}
}
