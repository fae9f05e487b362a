package shapes

import (
	"github.com/chewxy/math32"
)

// Kind names a shape generator.
type Kind string

const (
	KindFan       Kind = "fan"
	KindOutline   Kind = "outline"
	KindDisc      Kind = "indexed-disc"
	KindSpiral    Kind = "spiral"
	KindPolyline  Kind = "polyline"
	KindTriangles Kind = "triangles"
	KindCarBody   Kind = "car-body"
)

// Descriptor is the configuration for one generated shape. Only the fields
// used by Kind are read.
type Descriptor struct {
	Kind        Kind     `yaml:"kind"`
	Center      Point    `yaml:"center,omitempty"`
	Radius      float32  `yaml:"radius,omitempty"`
	StartRadius float32  `yaml:"start_radius,omitempty"`
	EndRadius   float32  `yaml:"end_radius,omitempty"`
	Turns       float32  `yaml:"turns,omitempty"`
	Segments    int      `yaml:"segments,omitempty"`
	Points      int      `yaml:"points,omitempty"`
	Color       Color    `yaml:"color,omitempty"`
	Vertices    []Point  `yaml:"vertices,omitempty"`
	Indices     []uint32 `yaml:"indices,omitempty"`
	// Rotation turns the generated shape counter-clockwise, in degrees. The
	// pivot is Center for the circle and spiral kinds and the origin for the
	// kinds built from explicit vertices, which have no center.
	Rotation float32 `yaml:"rotation,omitempty"`
}

// Generate builds the mesh described by d.
func Generate(d Descriptor) (*Mesh, error) {
	if !finite(d.Rotation) {
		return nil, invalid("rotation %v is not finite", d.Rotation)
	}

	var (
		m   *Mesh
		err error
	)
	pivot := d.Center
	switch d.Kind {
	case KindFan:
		m, err = PolygonFan(d.Center, d.Radius, d.Segments, d.Color)
	case KindOutline:
		m, err = PolygonOutline(d.Center, d.Radius, d.Segments)
	case KindDisc:
		m, err = IndexedDisc(d.Center, d.Radius, d.Segments, d.Color)
	case KindSpiral:
		m, err = Spiral(d.Center, d.StartRadius, d.EndRadius, d.Turns, d.Points, d.Color)
	case KindPolyline:
		m, err = FixedPolyline(d.Vertices, d.Indices, d.Color)
		pivot = Point{}
	case KindTriangles:
		m, err = Triangles(d.Vertices)
		pivot = Point{}
	case KindCarBody:
		m, err = CarBody(d.Color)
		pivot = Point{}
	default:
		return nil, invalid("unknown shape kind %q", d.Kind)
	}
	if err != nil {
		return nil, err
	}
	if d.Rotation != 0 {
		m = Rotated(m, pivot, d.Rotation*math32.Pi/180)
	}
	return m, nil
}
