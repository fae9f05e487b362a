package shapes

import (
	"github.com/richinsley/goshapes/graphics"
)

// FixedPolyline wraps an explicit outline into a position+color mesh with a
// uniform color. indices is the caller's triangulation of the outline and is
// copied as given; outlines that are not convex cannot be fanned from a
// single apex, so no triangulation is derived here. With no indices the
// outline is drawn as a closed line loop.
func FixedPolyline(points []Point, indices []uint32, color Color) (*Mesh, error) {
	if len(points) < 2 {
		return nil, invalid("outline needs at least 2 points, got %d", len(points))
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return nil, invalid("point %d (%v, %v) is not finite", i, p.X, p.Y)
		}
	}
	if len(indices)%3 != 0 {
		return nil, invalid("index count %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(points) {
			return nil, invalid("index %d at position %d is out of range for %d points", idx, i, len(points))
		}
	}
	if !color.valid() {
		return nil, invalid("color %v has a channel outside [0, 1]", color)
	}

	b := newBuilder(graphics.LayoutPositionColor, len(points))
	for _, p := range points {
		b.add(p, color)
	}
	if len(indices) == 0 {
		return b.mesh(graphics.LineLoop, nil), nil
	}
	return b.mesh(graphics.Triangles, append([]uint32(nil), indices...)), nil
}

// Triangles returns a position-only triangle list; every three consecutive
// points form one triangle.
func Triangles(points []Point) (*Mesh, error) {
	if len(points) == 0 || len(points)%3 != 0 {
		return nil, invalid("triangle list needs a positive multiple of 3 points, got %d", len(points))
	}
	b := newBuilder(graphics.LayoutPosition, len(points))
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return nil, invalid("point %d (%v, %v) is not finite", i, p.X, p.Y)
		}
		b.add(p, Color{})
	}
	return b.mesh(graphics.Triangles, nil), nil
}
