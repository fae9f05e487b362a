package shapes

import (
	"github.com/chewxy/math32"
	"github.com/richinsley/goshapes/graphics"
)

// Spiral returns an Archimedean spiral as a line strip of points vertices.
// Point i sits at angle 2π·turns·i/points with its radius stepped linearly
// from startRadius towards endRadius by (startRadius-endRadius)/points per
// point, so the final point stops one step short of endRadius.
func Spiral(center Point, startRadius, endRadius, turns float32, points int, color Color) (*Mesh, error) {
	if !finite(center.X) || !finite(center.Y) {
		return nil, invalid("center (%v, %v) is not finite", center.X, center.Y)
	}
	if !finite(startRadius) || startRadius < 0 {
		return nil, invalid("start radius %v must be a finite non-negative number", startRadius)
	}
	if !finite(endRadius) || endRadius < 0 {
		return nil, invalid("end radius %v must be a finite non-negative number", endRadius)
	}
	if !finite(turns) || turns <= 0 {
		return nil, invalid("turn count %v must be positive", turns)
	}
	if points < 2 {
		return nil, invalid("point count %d is below 2", points)
	}
	if !color.valid() {
		return nil, invalid("color %v has a channel outside [0, 1]", color)
	}

	angleStep := 2 * math32.Pi * turns / float32(points)
	radiusStep := (startRadius - endRadius) / float32(points)

	b := newBuilder(graphics.LayoutPositionColor, points)
	for i := 0; i < points; i++ {
		angle := angleStep * float32(i)
		radius := startRadius - radiusStep*float32(i)
		b.add(Point{
			X: center.X + radius*math32.Cos(angle),
			Y: center.Y + radius*math32.Sin(angle),
		}, color)
	}
	return b.mesh(graphics.LineStrip, nil), nil
}
