package shapes

import (
	"math"
	"testing"

	"github.com/richinsley/goshapes/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func dist(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func TestPolygonFan(t *testing.T) {
	center := Point{0.3, -0.2}
	for _, segments := range []int{3, 4, 8, 36, 360} {
		m, err := PolygonFan(center, 0.5, segments, Red)
		require.NoError(t, err)

		assert.Equal(t, graphics.LayoutPositionColor, m.Layout)
		assert.Equal(t, graphics.TriangleFan, m.Topology)
		assert.Nil(t, m.Indices)
		require.Equal(t, segments+2, m.VertexCount())
		assert.Equal(t, segments+2, m.DrawCount())

		assert.Equal(t, center, m.Position(0))
		assert.Equal(t, m.Position(1), m.Position(segments+1), "rim must close on its first vertex")

		for i := 1; i < m.VertexCount(); i++ {
			assert.InDelta(t, 0.5, dist(m.Position(i), center), tolerance, "vertex %d", i)
			c, ok := m.Color(i)
			require.True(t, ok)
			assert.Equal(t, Red, c)
		}
	}
}

func TestPolygonFanStartsOnPositiveX(t *testing.T) {
	m, err := PolygonFan(Point{}, 1, 4, White)
	require.NoError(t, err)
	assert.InDelta(t, 1, m.Position(1).X, tolerance)
	assert.InDelta(t, 0, m.Position(1).Y, tolerance)
	assert.InDelta(t, 0, m.Position(2).X, tolerance)
	assert.InDelta(t, 1, m.Position(2).Y, tolerance)
}

func TestPolygonFanIsDeterministic(t *testing.T) {
	a, err := PolygonFan(Point{-0.55, -0.55}, 0.15, 36, Black)
	require.NoError(t, err)
	b, err := PolygonFan(Point{-0.55, -0.55}, 0.15, 36, Black)
	require.NoError(t, err)

	require.Equal(t, len(a.Vertices), len(b.Vertices))
	for i := range a.Vertices {
		assert.Equal(t, math.Float32bits(a.Vertices[i]), math.Float32bits(b.Vertices[i]), "float %d", i)
	}
}

func TestPolygonOutline(t *testing.T) {
	for _, n := range []int{3, 5, 8, 64} {
		m, err := PolygonOutline(Point{0.1, 0.1}, 0.4, n)
		require.NoError(t, err)

		assert.Equal(t, graphics.LayoutPosition, m.Layout)
		assert.Equal(t, graphics.Triangles, m.Topology)
		assert.Equal(t, n, m.VertexCount())
		require.Len(t, m.Indices, 3*(n-2))
		assert.Equal(t, 3*(n-2), m.DrawCount())

		seen := make(map[uint32]bool)
		for tri := 0; tri < len(m.Indices); tri += 3 {
			assert.Equal(t, uint32(0), m.Indices[tri], "every triangle fans from vertex 0")
			assert.Equal(t, m.Indices[tri+1]+1, m.Indices[tri+2])
			for _, idx := range m.Indices[tri : tri+3] {
				assert.Less(t, int(idx), n)
				seen[idx] = true
			}
		}
		for v := uint32(1); v < uint32(n); v++ {
			assert.True(t, seen[v], "rim vertex %d not covered", v)
		}

		_, ok := m.Color(0)
		assert.False(t, ok)
	}
}

func TestIndexedDisc(t *testing.T) {
	const segments = 8
	m, err := IndexedDisc(Point{}, 0.5, segments, Color{0.5, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, graphics.Triangles, m.Topology)
	assert.Equal(t, segments+2, m.VertexCount())
	require.Len(t, m.Indices, 3*segments)

	type tri [3]uint32
	seen := make(map[tri]bool)
	for i := 0; i < len(m.Indices); i += 3 {
		tr := tri{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		assert.False(t, seen[tr], "triangle %v emitted twice", tr)
		seen[tr] = true
		assert.LessOrEqual(t, int(tr[2]), segments+1)
	}
	// The last wedge reaches the repeated rim vertex rather than wrapping to 1.
	assert.Equal(t, []uint32{0, segments, segments + 1}, m.Indices[len(m.Indices)-3:])
}

func TestSpiral(t *testing.T) {
	const (
		points = 300
		turns  = 3.0
		start  = 0.9
		end    = 0.05
	)
	center := Point{}
	m, err := Spiral(center, start, end, turns, points, Red)
	require.NoError(t, err)

	assert.Equal(t, graphics.LineStrip, m.Topology)
	assert.Nil(t, m.Indices)
	require.Equal(t, points, m.VertexCount())

	first := m.Position(0)
	assert.InDelta(t, start, first.X, tolerance)
	assert.InDelta(t, 0, first.Y, tolerance)

	step := (start - end) / float64(points)
	assert.InDelta(t, end+step, dist(m.Position(points-1), center), tolerance)

	prev := math.Inf(1)
	for i := 0; i < points; i++ {
		r := dist(m.Position(i), center)
		assert.LessOrEqual(t, r, prev+tolerance, "radius grew at point %d", i)
		prev = r
	}
}

func TestSpiralOffCenter(t *testing.T) {
	center := Point{0.25, -0.25}
	m, err := Spiral(center, 0.5, 0.5, 1, 4, White)
	require.NoError(t, err)
	for i := 0; i < m.VertexCount(); i++ {
		assert.InDelta(t, 0.5, dist(m.Position(i), center), tolerance)
	}
	assert.InDelta(t, 0.25, m.Position(1).X, tolerance)
	assert.InDelta(t, 0.25, m.Position(1).Y, tolerance)
}

func TestInvalidParameters(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		gen  func() (*Mesh, error)
	}{
		{"fan too few segments", func() (*Mesh, error) { return PolygonFan(Point{}, 1, 2, Red) }},
		{"fan zero segments", func() (*Mesh, error) { return PolygonFan(Point{}, 1, 0, Red) }},
		{"fan negative radius", func() (*Mesh, error) { return PolygonFan(Point{}, -0.1, 8, Red) }},
		{"fan nan radius", func() (*Mesh, error) { return PolygonFan(Point{}, nan, 8, Red) }},
		{"fan nan center", func() (*Mesh, error) { return PolygonFan(Point{nan, 0}, 1, 8, Red) }},
		{"fan color out of range", func() (*Mesh, error) { return PolygonFan(Point{}, 1, 8, Color{1.5, 0, 0}) }},
		{"outline too few segments", func() (*Mesh, error) { return PolygonOutline(Point{}, 1, 2) }},
		{"outline negative radius", func() (*Mesh, error) { return PolygonOutline(Point{}, -1, 8) }},
		{"disc negative segments", func() (*Mesh, error) { return IndexedDisc(Point{}, 1, -4, Red) }},
		{"spiral single point", func() (*Mesh, error) { return Spiral(Point{}, 0.9, 0.05, 3, 1, Red) }},
		{"spiral zero turns", func() (*Mesh, error) { return Spiral(Point{}, 0.9, 0.05, 0, 300, Red) }},
		{"spiral negative end", func() (*Mesh, error) { return Spiral(Point{}, 0.9, -0.05, 3, 300, Red) }},
		{"spiral negative color", func() (*Mesh, error) { return Spiral(Point{}, 0.9, 0.05, 3, 300, Color{0, -1, 0}) }},
		{"polyline single point", func() (*Mesh, error) { return FixedPolyline([]Point{{}}, nil, Red) }},
		{"polyline ragged indices", func() (*Mesh, error) {
			return FixedPolyline([]Point{{}, {1, 0}, {0, 1}}, []uint32{0, 1}, Red)
		}},
		{"polyline index out of range", func() (*Mesh, error) {
			return FixedPolyline([]Point{{}, {1, 0}, {0, 1}}, []uint32{0, 1, 3}, Red)
		}},
		{"triangles ragged", func() (*Mesh, error) { return Triangles([]Point{{}, {1, 0}}) }},
		{"triangles empty", func() (*Mesh, error) { return Triangles(nil) }},
		{"generate nan rotation", func() (*Mesh, error) {
			return Generate(Descriptor{Kind: KindFan, Radius: 0.5, Segments: 8, Color: Red, Rotation: nan})
		}},
		{"generate infinite rotation", func() (*Mesh, error) {
			return Generate(Descriptor{Kind: KindCarBody, Color: Red, Rotation: float32(math.Inf(1))})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.gen()
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, m)
		})
	}
}

func TestFixedPolylineCopiesInput(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {0, 1}}
	idx := []uint32{0, 1, 2}
	m, err := FixedPolyline(pts, idx, Red)
	require.NoError(t, err)

	idx[0] = 2
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, graphics.Triangles, m.Topology)

	loop, err := FixedPolyline(pts, nil, Red)
	require.NoError(t, err)
	assert.Equal(t, graphics.LineLoop, loop.Topology)
	assert.Nil(t, loop.Indices)
}

func TestCar(t *testing.T) {
	body, err := CarBody(Red)
	require.NoError(t, err)

	assert.Equal(t, 19, body.VertexCount())
	require.Len(t, body.Indices, 48)
	for _, idx := range body.Indices {
		assert.Less(t, int(idx), 18, "the closing repeat of vertex 0 is never indexed")
	}
	assert.Equal(t, body.Position(0), body.Position(18))

	wheels, err := CarWheels(Black)
	require.NoError(t, err)
	require.Len(t, wheels, 2)
	for i, w := range wheels {
		assert.Equal(t, wheelSegments+2, w.VertexCount())
		assert.Equal(t, wheelCenters[i], w.Position(0))
	}

	pts := CarOutlinePoints()
	pts[0] = Point{}
	assert.Equal(t, Point{-0.95, -0.45}, CarOutlinePoints()[0])
}

func TestGenerate(t *testing.T) {
	m, err := Generate(Descriptor{
		Kind:     KindFan,
		Center:   Point{0.1, 0.1},
		Radius:   0.5,
		Segments: 4,
		Color:    White,
		Rotation: 90,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, m.Position(1).X, tolerance)
	assert.InDelta(t, 0.6, m.Position(1).Y, tolerance)
	assert.Equal(t, Point{0.1, 0.1}, m.Position(0))

	m, err = Generate(Descriptor{Kind: KindSpiral, StartRadius: 0.9, EndRadius: 0.05, Turns: 3, Points: 300, Color: Red})
	require.NoError(t, err)
	assert.Equal(t, 300, m.VertexCount())

	_, err = Generate(Descriptor{Kind: "hexagram"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateRotatesVertexKindsAboutOrigin(t *testing.T) {
	body, err := CarBody(Red)
	require.NoError(t, err)
	want := Rotated(body, Point{}, math.Pi/2)

	// Center is not a property of the car body and must not move the pivot.
	m, err := Generate(Descriptor{Kind: KindCarBody, Color: Red, Center: Point{0.3, 0.3}, Rotation: 90})
	require.NoError(t, err)
	for i := 0; i < m.VertexCount(); i++ {
		assert.InDelta(t, want.Position(i).X, m.Position(i).X, tolerance)
		assert.InDelta(t, want.Position(i).Y, m.Position(i).Y, tolerance)
	}
}
