package shapes

import (
	"github.com/chewxy/math32"
	"github.com/richinsley/goshapes/graphics"
)

// MinSegments is the smallest segment count that still encloses an area.
const MinSegments = 3

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func checkCircle(center Point, radius float32, segments int) error {
	if !finite(center.X) || !finite(center.Y) {
		return invalid("center (%v, %v) is not finite", center.X, center.Y)
	}
	if !finite(radius) || radius < 0 {
		return invalid("radius %v must be a finite non-negative number", radius)
	}
	if segments < MinSegments {
		return invalid("segment count %d is below %d", segments, MinSegments)
	}
	return nil
}

// rim returns segments points evenly spaced on the circle, starting at angle 0.
func rim(center Point, radius float32, segments int) []Point {
	pts := make([]Point, segments)
	for i := range pts {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		pts[i] = Point{
			X: center.X + radius*math32.Cos(theta),
			Y: center.Y + radius*math32.Sin(theta),
		}
	}
	return pts
}

// PolygonFan returns a filled regular polygon approximating a circle, laid
// out for a triangle fan: vertex 0 is the center, followed by segments+1 rim
// vertices where the last repeats the first so the fan closes.
func PolygonFan(center Point, radius float32, segments int, color Color) (*Mesh, error) {
	if err := checkCircle(center, radius, segments); err != nil {
		return nil, err
	}
	if !color.valid() {
		return nil, invalid("color %v has a channel outside [0, 1]", color)
	}
	pts := rim(center, radius, segments)
	b := newBuilder(graphics.LayoutPositionColor, segments+2)
	b.add(center, color)
	for _, p := range pts {
		b.add(p, color)
	}
	b.add(pts[0], color)
	return b.mesh(graphics.TriangleFan, nil), nil
}

// PolygonOutline returns the segments rim vertices of a regular polygon,
// position only, with an index list that fans out from vertex 0 for drawing
// as a plain triangle list.
func PolygonOutline(center Point, radius float32, segments int) (*Mesh, error) {
	if err := checkCircle(center, radius, segments); err != nil {
		return nil, err
	}
	b := newBuilder(graphics.LayoutPosition, segments)
	for _, p := range rim(center, radius, segments) {
		b.add(p, Color{})
	}
	indices := make([]uint32, 0, 3*(segments-2))
	for i := 1; i <= segments-2; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	return b.mesh(graphics.Triangles, indices), nil
}

// IndexedDisc returns the same vertices as PolygonFan together with an
// explicit triangle list (0, i, i+1) for i = 1..segments, so the disc can be
// drawn with indexed triangles instead of a fan. The repeated rim vertex
// closes the disc; no extra closing triangle is emitted.
func IndexedDisc(center Point, radius float32, segments int, color Color) (*Mesh, error) {
	m, err := PolygonFan(center, radius, segments, color)
	if err != nil {
		return nil, err
	}
	m.Indices = make([]uint32, 0, 3*segments)
	for i := 1; i <= segments; i++ {
		m.Indices = append(m.Indices, 0, uint32(i), uint32(i+1))
	}
	m.Topology = graphics.Triangles
	return m, nil
}
