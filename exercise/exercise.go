// Package exercise describes what a run draws: which shapes to generate,
// which program draws each one, and how. Exercises are either built in or
// loaded from YAML.
package exercise

import (
	"fmt"
	"os"

	"github.com/richinsley/goshapes/shader"
	"github.com/richinsley/goshapes/shapes"
	"gopkg.in/yaml.v3"
)

// Mode is how a pass rasterizes its mesh.
type Mode string

const (
	ModeFill      Mode = "fill"
	ModeWireframe Mode = "wireframe"
	ModePoints    Mode = "points"
)

// Pass is one draw of a drawable's mesh.
type Pass struct {
	Mode    Mode   `yaml:"mode"`
	Program string `yaml:"program"`
	// Color sets the program's inputColor uniform, when it has one.
	Color     *[4]float32 `yaml:"color,omitempty"`
	LineWidth float32     `yaml:"line_width,omitempty"`
	PointSize float32     `yaml:"point_size,omitempty"`
}

// Drawable is a generated shape and the passes that draw it, in order.
type Drawable struct {
	Name   string            `yaml:"name"`
	Shape  shapes.Descriptor `yaml:"shape"`
	Passes []Pass            `yaml:"passes,omitempty"`
}

// Exercise is a full scene: a background color and drawables rendered back
// to front.
type Exercise struct {
	Name       string     `yaml:"name"`
	Title      string     `yaml:"title"`
	Background [4]float32 `yaml:"background"`
	Drawables  []Drawable `yaml:"drawables"`
}

// DefaultPass is used for drawables that list no passes: a filled draw with
// the per-vertex color program, or white through the uniform color program
// for meshes without colors.
func DefaultPass(m *shapes.Mesh) Pass {
	if m.Layout.HasColor() {
		return Pass{Mode: ModeFill, Program: shader.VertexColor}
	}
	white := [4]float32{1, 1, 1, 1}
	return Pass{Mode: ModeFill, Program: shader.UniformColor, Color: &white}
}

// PassesFor returns d's passes, or the default pass for m when d has none.
func (d *Drawable) PassesFor(m *shapes.Mesh) []Pass {
	if len(d.Passes) == 0 {
		return []Pass{DefaultPass(m)}
	}
	return d.Passes
}

// Validate checks that every shape generates and every pass names a known
// mode and program.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("exercise has no name")
	}
	for _, c := range e.Background {
		if !(c >= 0 && c <= 1) {
			return fmt.Errorf("exercise %s: background %v has a channel outside [0, 1]", e.Name, e.Background)
		}
	}
	seen := make(map[string]bool)
	for i, d := range e.Drawables {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if seen[name] {
			return fmt.Errorf("exercise %s: duplicate drawable %s", e.Name, name)
		}
		seen[name] = true

		m, err := shapes.Generate(d.Shape)
		if err != nil {
			return fmt.Errorf("exercise %s: drawable %s: %w", e.Name, name, err)
		}
		for j, p := range d.PassesFor(m) {
			if err := p.validate(); err != nil {
				return fmt.Errorf("exercise %s: drawable %s: pass %d: %w", e.Name, name, j, err)
			}
			if p.Program == shader.VertexColor && !m.Layout.HasColor() {
				return fmt.Errorf("exercise %s: drawable %s: pass %d: %s needs per-vertex colors", e.Name, name, j, p.Program)
			}
		}
	}
	return nil
}

func (p *Pass) validate() error {
	switch p.Mode {
	case ModeFill, ModeWireframe, ModePoints:
	default:
		return fmt.Errorf("unknown mode %q", p.Mode)
	}
	if _, err := shader.Lookup(p.Program, false); err != nil {
		return err
	}
	if p.LineWidth < 0 || p.PointSize < 0 {
		return fmt.Errorf("line width and point size must not be negative")
	}
	if p.Color != nil {
		for _, c := range p.Color {
			if !(c >= 0 && c <= 1) {
				return fmt.Errorf("color %v has a channel outside [0, 1]", *p.Color)
			}
		}
	}
	return nil
}

// Parse decodes and validates a YAML exercise.
func Parse(data []byte) (*Exercise, error) {
	var e Exercise
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to parse exercise: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Load reads and validates a YAML exercise file.
func Load(path string) (*Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exercise file: %w", err)
	}
	e, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// Marshal encodes e as YAML, suitable as a starting point for a custom file.
func Marshal(e *Exercise) ([]byte, error) {
	return yaml.Marshal(e)
}
