package exercise

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/goshapes/shader"
	"github.com/richinsley/goshapes/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsValidate(t *testing.T) {
	list := List()
	require.Len(t, list, 7)
	for _, e := range list {
		assert.NoError(t, e.Validate(), e.Name)
		assert.NotEmpty(t, e.Title, e.Name)
	}
	assert.Equal(t, "car", list[0].Name)
}

func TestGet(t *testing.T) {
	a, err := Get("car")
	require.NoError(t, err)
	b, err := Get("car")
	require.NoError(t, err)

	a.Drawables[0].Name = "changed"
	assert.Equal(t, "rear-wheel", b.Drawables[0].Name, "built-ins are handed out as copies")
	assert.Equal(t, shapes.CarWheelDescriptors(shapes.Black), []shapes.Descriptor{b.Drawables[0].Shape, b.Drawables[1].Shape})

	_, err = Get("teapot")
	assert.ErrorContains(t, err, "teapot")
}

func TestDefaultPass(t *testing.T) {
	fan, err := shapes.PolygonFan(shapes.Point{}, 1, 8, shapes.Red)
	require.NoError(t, err)
	assert.Equal(t, shader.VertexColor, DefaultPass(fan).Program)

	tri, err := shapes.Triangles([]shapes.Point{{}, {X: 1}, {Y: 1}})
	require.NoError(t, err)
	p := DefaultPass(tri)
	assert.Equal(t, shader.UniformColor, p.Program)
	require.NotNil(t, p.Color)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, *p.Color)
}

const sampleYAML = `
name: target
title: Concentric rings
background: [0.1, 0.1, 0.1, 1]
drawables:
  - name: outer
    shape:
      kind: fan
      radius: 0.8
      segments: 64
      color: {r: 1, g: 0, b: 0}
  - name: inner
    shape:
      kind: outline
      radius: 0.4
      segments: 6
      rotation: 30
    passes:
      - mode: fill
        program: uniform-color
        color: [1, 1, 1, 1]
      - mode: wireframe
        program: uniform-color
        color: [0, 0, 0, 1]
        line_width: 3
  - name: dots
    shape:
      kind: spiral
      start_radius: 0.3
      end_radius: 0.0
      turns: 2
      points: 40
      color: {r: 0, g: 0, b: 1}
    passes:
      - mode: points
        program: round-point
        color: [0, 0, 1, 1]
        point_size: 8
`

func TestParse(t *testing.T) {
	e, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "target", e.Name)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, e.Background)
	require.Len(t, e.Drawables, 3)
	assert.Equal(t, shapes.KindFan, e.Drawables[0].Shape.Kind)
	assert.Equal(t, 64, e.Drawables[0].Shape.Segments)
	assert.Equal(t, shapes.Color{R: 1}, e.Drawables[0].Shape.Color)
	assert.Equal(t, float32(30), e.Drawables[1].Shape.Rotation)
	require.Len(t, e.Drawables[1].Passes, 2)
	assert.Equal(t, ModeWireframe, e.Drawables[1].Passes[1].Mode)
	assert.Equal(t, float32(3), e.Drawables[1].Passes[1].LineWidth)
	assert.Equal(t, float32(8), e.Drawables[2].Passes[0].PointSize)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"syntax", "name: [", "failed to parse"},
		{"no name", "title: x", "no name"},
		{"bad kind", "name: x\ndrawables:\n  - shape: {kind: star}", "unknown shape kind"},
		{"bad segments", "name: x\ndrawables:\n  - shape: {kind: fan, radius: 1, segments: 2}", "segment count"},
		{"bad mode", "name: x\ndrawables:\n  - shape: {kind: fan, radius: 1, segments: 8}\n    passes: [{mode: glow, program: vertex-color}]", "unknown mode"},
		{"bad program", "name: x\ndrawables:\n  - shape: {kind: fan, radius: 1, segments: 8}\n    passes: [{mode: fill, program: phong}]", "phong"},
		{"colorless vertex-color", "name: x\ndrawables:\n  - shape: {kind: outline, radius: 1, segments: 8}\n    passes: [{mode: fill, program: vertex-color}]", "per-vertex colors"},
		{"duplicate", "name: x\ndrawables:\n  - {name: a, shape: {kind: car-body}}\n  - {name: a, shape: {kind: car-body}}", "duplicate"},
		{"background", "name: x\nbackground: [2, 0, 0, 1]", "background"},
		{"nan background", "name: x\nbackground: [.nan, 0, 0, 1]", "background"},
		{"nan pass color", "name: x\ndrawables:\n  - shape: {kind: car-body}\n    passes: [{mode: fill, program: vertex-color, color: [.nan, 0, 0, 1]}]", "outside [0, 1]"},
		{"nan rotation", "name: x\ndrawables:\n  - shape: {kind: car-body, rotation: .nan}", "rotation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	src, err := Get("overlay")
	require.NoError(t, err)
	data, err := Marshal(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	e, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src, e)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")
}
