// Package shapes generates interleaved vertex buffers for simple 2D shapes:
// circles drawn as fans or indexed triangle lists, spirals drawn as line
// strips, and hand-authored outlines with a supplied triangulation.
//
// All generators are pure: identical inputs produce bit-identical meshes and
// nothing is cached between calls.
package shapes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/richinsley/goshapes/graphics"
)

// ErrInvalidParameter is returned (wrapped) when a shape is requested with a
// geometrically meaningless configuration.
var ErrInvalidParameter = errors.New("invalid shape parameter")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// Point is a position in normalized device coordinates.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
)

func (c Color) valid() bool {
	for _, v := range [3]float32{c.R, c.G, c.B} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// Mesh is a generated vertex buffer with an optional index list. Vertices
// are interleaved according to Layout. A nil Indices means Topology alone
// describes how consecutive vertices connect.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Layout   graphics.Layout
	Topology graphics.Topology
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / m.Layout.Stride()
}

// Position returns the x, y coordinates of vertex i.
func (m *Mesh) Position(i int) Point {
	off := i * m.Layout.Stride()
	return Point{m.Vertices[off], m.Vertices[off+1]}
}

// Color returns the color of vertex i, or false if the layout has none.
func (m *Mesh) Color(i int) (Color, bool) {
	if !m.Layout.HasColor() {
		return Color{}, false
	}
	off := i*m.Layout.Stride() + 3
	return Color{m.Vertices[off], m.Vertices[off+1], m.Vertices[off+2]}, true
}

// DrawCount is the number of elements a draw call needs: the index count for
// indexed meshes, the vertex count otherwise.
func (m *Mesh) DrawCount() int {
	if m.Indices != nil {
		return len(m.Indices)
	}
	return m.VertexCount()
}

// Rotated returns a copy of m with every position rotated by angle radians
// counter-clockwise about center.
func Rotated(m *Mesh, center Point, angle float32) *Mesh {
	out := &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Layout:   m.Layout,
		Topology: m.Topology,
	}
	if m.Indices != nil {
		out.Indices = append([]uint32(nil), m.Indices...)
	}
	sin, cos := math32.Sin(angle), math32.Cos(angle)
	stride := m.Layout.Stride()
	for off := 0; off < len(out.Vertices); off += stride {
		dx := out.Vertices[off] - center.X
		dy := out.Vertices[off+1] - center.Y
		out.Vertices[off] = center.X + dx*cos - dy*sin
		out.Vertices[off+1] = center.Y + dx*sin + dy*cos
	}
	return out
}

// builder appends vertices in a fixed layout.
type builder struct {
	layout   graphics.Layout
	vertices []float32
}

func newBuilder(layout graphics.Layout, vertexCount int) *builder {
	return &builder{
		layout:   layout,
		vertices: make([]float32, 0, vertexCount*layout.Stride()),
	}
}

func (b *builder) add(p Point, c Color) {
	b.vertices = append(b.vertices, p.X, p.Y, 0)
	if b.layout.HasColor() {
		b.vertices = append(b.vertices, c.R, c.G, c.B)
	}
}

func (b *builder) mesh(topology graphics.Topology, indices []uint32) *Mesh {
	return &Mesh{
		Vertices: b.vertices,
		Indices:  indices,
		Layout:   b.layout,
		Topology: topology,
	}
}
