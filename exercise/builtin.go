package exercise

import (
	"fmt"
	"sort"

	"github.com/richinsley/goshapes/shader"
	"github.com/richinsley/goshapes/shapes"
)

var (
	teal = [4]float32{0.2, 0.3, 0.3, 1}
	dark = [4]float32{0.1, 0.1, 0.1, 1}
)

var twoTriangles = []shapes.Point{
	{X: 0.2, Y: 0.2}, {X: 0.6, Y: 0.2}, {X: 0.4, Y: 0.6},
	{X: -0.8, Y: -0.3}, {X: -0.4, Y: -0.1}, {X: -0.7, Y: 0.1},
}

func rgba(r, g, b, a float32) *[4]float32 {
	return &[4]float32{r, g, b, a}
}

var builtins = map[string]func() *Exercise{
	"window": func() *Exercise {
		return &Exercise{Name: "window", Title: "Empty window", Background: teal}
	},
	"points": func() *Exercise {
		return &Exercise{
			Name:       "points",
			Title:      "Triangle vertices as points",
			Background: teal,
			Drawables: []Drawable{{
				Name:  "vertices",
				Shape: shapes.Descriptor{Kind: shapes.KindTriangles, Vertices: twoTriangles},
				Passes: []Pass{
					{Mode: ModePoints, Program: shader.UniformColor, Color: rgba(1, 1, 1, 1), PointSize: 10},
				},
			}},
		}
	},
	"triangles": func() *Exercise {
		return &Exercise{
			Name:       "triangles",
			Title:      "Two triangles",
			Background: teal,
			Drawables: []Drawable{{
				Name:  "triangles",
				Shape: shapes.Descriptor{Kind: shapes.KindTriangles, Vertices: twoTriangles},
				Passes: []Pass{
					{Mode: ModeFill, Program: shader.UniformColor, Color: rgba(1, 0, 0, 1)},
				},
			}},
		}
	},
	"overlay": func() *Exercise {
		return &Exercise{
			Name:       "overlay",
			Title:      "Filled triangles with outlines and round vertices",
			Background: teal,
			Drawables: []Drawable{{
				Name:  "triangles",
				Shape: shapes.Descriptor{Kind: shapes.KindTriangles, Vertices: twoTriangles},
				Passes: []Pass{
					{Mode: ModeFill, Program: shader.UniformColor, Color: rgba(1, 0, 0, 1)},
					{Mode: ModeWireframe, Program: shader.UniformColor, Color: rgba(0, 0, 0, 1), LineWidth: 5},
					{Mode: ModePoints, Program: shader.RoundPoint, Color: rgba(1, 1, 1, 1), PointSize: 20},
				},
			}},
		}
	},
	"indexed-circle": func() *Exercise {
		return &Exercise{
			Name:       "indexed-circle",
			Title:      "Octagon from indexed triangles",
			Background: teal,
			Drawables: []Drawable{{
				Name: "disc",
				Shape: shapes.Descriptor{
					Kind:     shapes.KindDisc,
					Radius:   0.5,
					Segments: 8,
					Color:    shapes.Color{R: 0.5},
					// Start at the bottom of the circle.
					Rotation: -90,
				},
			}},
		}
	},
	"spiral": func() *Exercise {
		return &Exercise{
			Name:       "spiral",
			Title:      "Spiral",
			Background: dark,
			Drawables: []Drawable{{
				Name: "spiral",
				Shape: shapes.Descriptor{
					Kind:        shapes.KindSpiral,
					StartRadius: 0.9,
					EndRadius:   0.05,
					Turns:       3,
					Points:      300,
					Color:       shapes.Red,
				},
			}},
		}
	},
	"car": func() *Exercise {
		wheels := shapes.CarWheelDescriptors(shapes.Black)
		return &Exercise{
			Name:       "car",
			Title:      "Car",
			Background: teal,
			Drawables: []Drawable{
				{Name: "rear-wheel", Shape: wheels[0]},
				{Name: "front-wheel", Shape: wheels[1]},
				{Name: "body", Shape: shapes.Descriptor{Kind: shapes.KindCarBody, Color: shapes.Red}},
			},
		}
	},
}

// Get returns a fresh copy of the named built-in exercise.
func Get(name string) (*Exercise, error) {
	mk, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", name)
	}
	return mk(), nil
}

// List returns the built-in exercises sorted by name.
func List() []*Exercise {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Exercise, 0, len(names))
	for _, name := range names {
		out = append(out, builtins[name]())
	}
	return out
}
