package shapes

// carOutline is the side silhouette of a car, traced clockwise from the rear
// bumper. The duplicate at index 7 and the closing repeat of index 0 are kept
// so carTriangles keeps addressing the same vertices.
var carOutline = []Point{
	{-0.95, -0.45},
	{-0.95, 0.05},
	{-0.65, 0.05},
	{-0.55, 0.35},
	{0.25, 0.35},
	{0.45, 0.05},
	{0.85, 0.05},
	{0.85, 0.05},
	{0.95, 0.05},
	{0.95, -0.45},
	{0.70, -0.45},
	{0.60, -0.35},
	{0.50, -0.35},
	{0.40, -0.45},
	{-0.40, -0.45},
	{-0.50, -0.35},
	{-0.60, -0.35},
	{-0.70, -0.45},
	{-0.95, -0.45},
}

// carTriangles zig-zags between the roof line (1..9) and the underside with
// its wheel arches (10..17). The outline dips into the arches, so a fan from
// any single vertex would cover them.
var carTriangles = []uint32{
	0, 1, 17,
	1, 2, 17,
	2, 16, 17,
	2, 3, 16,
	3, 15, 16,
	3, 4, 15,
	4, 14, 15,
	4, 5, 14,
	5, 13, 14,
	5, 6, 13,
	6, 12, 13,
	6, 7, 12,
	7, 11, 12,
	7, 8, 11,
	8, 10, 11,
	8, 9, 10,
}

const (
	wheelRadius   = 0.15
	wheelSegments = 36
)

var wheelCenters = []Point{{-0.55, -0.55}, {0.55, -0.55}}

// CarOutlinePoints returns a copy of the car silhouette.
func CarOutlinePoints() []Point {
	return append([]Point(nil), carOutline...)
}

// CarTriangles returns a copy of the hand-picked triangulation of the car
// silhouette.
func CarTriangles() []uint32 {
	return append([]uint32(nil), carTriangles...)
}

// CarBody returns the filled car silhouette in a single color.
func CarBody(color Color) (*Mesh, error) {
	return FixedPolyline(carOutline, carTriangles, color)
}

// CarWheelDescriptors describes the two wheel fans, rear wheel first.
func CarWheelDescriptors(color Color) []Descriptor {
	ds := make([]Descriptor, 0, len(wheelCenters))
	for _, c := range wheelCenters {
		ds = append(ds, Descriptor{
			Kind:     KindFan,
			Center:   c,
			Radius:   wheelRadius,
			Segments: wheelSegments,
			Color:    color,
		})
	}
	return ds
}

// CarWheels returns one fan per wheel, meant to be drawn before the body.
func CarWheels(color Color) ([]*Mesh, error) {
	var wheels []*Mesh
	for _, d := range CarWheelDescriptors(color) {
		m, err := Generate(d)
		if err != nil {
			return nil, err
		}
		wheels = append(wheels, m)
	}
	return wheels, nil
}
