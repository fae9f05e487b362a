package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/goshapes/exercise"
	"github.com/richinsley/goshapes/graphics"
	"github.com/richinsley/goshapes/shader"
	"github.com/richinsley/goshapes/shapes"
	xlate "github.com/richinsley/goshapes/translator"
)

// SceneOptions controls how a scene compiles its programs.
type SceneOptions struct {
	// IsGLES selects the GLES flavor of the built-in programs.
	IsGLES bool
	// Translate compiles the ES 3.0 sources through the shader translator
	// instead of using the per-API sources.
	Translate bool
	// LineWidth is used by wireframe passes that do not set their own.
	LineWidth float32
}

// program is a linked program with the locations of the uniforms the passes
// set. Locations are -1 when the program does not use the uniform.
type program struct {
	*shader.Program
	colorLoc     int32
	pointSizeLoc int32
}

type renderPass struct {
	exercise.Pass
	program *program
}

// drawable is a generated mesh, its uploaded buffer, and the passes that draw
// it.
type drawable struct {
	name   string
	mesh   *shapes.Mesh
	buffer *graphics.Buffer
	passes []renderPass
}

// Scene holds every device resource needed to draw one exercise.
type Scene struct {
	Title      string
	Background [4]float32

	device    graphics.Device
	opts      SceneOptions
	programs  map[string]*program
	drawables []*drawable
}

// NewScene validates ex, generates its meshes, builds the programs its passes
// name and uploads everything to device. On error nothing is left allocated.
func NewScene(device graphics.Device, ex *exercise.Exercise, opts SceneOptions) (*Scene, error) {
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	scene := &Scene{
		Title:      ex.Title,
		Background: ex.Background,
		device:     device,
		opts:       opts,
		programs:   make(map[string]*program),
	}
	builder := shader.NewBuilder(device)

	for i := range ex.Drawables {
		d := &ex.Drawables[i]
		mesh, err := shapes.Generate(d.Shape)
		if err != nil {
			scene.Destroy()
			return nil, fmt.Errorf("failed to generate %s: %w", d.Name, err)
		}

		item := &drawable{name: d.Name, mesh: mesh}
		for _, p := range d.PassesFor(mesh) {
			prog, err := scene.program(builder, p.Program)
			if err != nil {
				scene.Destroy()
				return nil, fmt.Errorf("drawable %s: %w", d.Name, err)
			}
			if p.Mode == exercise.ModeWireframe && opts.IsGLES {
				log.Printf("Warning: %s: GLES has no polygon mode, wireframe pass draws filled", d.Name)
			}
			item.passes = append(item.passes, renderPass{Pass: p, program: prog})
		}

		item.buffer, err = device.UploadMesh(mesh.Vertices, mesh.Indices, mesh.Layout)
		if err != nil {
			scene.Destroy()
			return nil, fmt.Errorf("failed to upload %s: %w", d.Name, err)
		}
		scene.drawables = append(scene.drawables, item)
	}

	log.Printf("Loaded scene %s: %d drawables, %d programs", ex.Name, len(scene.drawables), len(scene.programs))
	return scene, nil
}

// program returns the named program, building it on first use. Programs are
// shared by every pass that names them.
func (s *Scene) program(builder *shader.Builder, name string) (*program, error) {
	if p, ok := s.programs[name]; ok {
		return p, nil
	}

	src, uniformName, err := s.source(name)
	if err != nil {
		return nil, err
	}
	built, err := builder.Build(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program %s: %w", name, err)
	}

	p := &program{
		Program:      built,
		colorLoc:     s.device.UniformLocation(built.Handle, uniformName(shader.ColorUniform)),
		pointSizeLoc: s.device.UniformLocation(built.Handle, uniformName(shader.PointSizeUniform)),
	}
	s.programs[name] = p
	return p, nil
}

// source returns the source to compile for name, and a function mapping the
// uniform names used in the library to those in the returned source.
func (s *Scene) source(name string) (shader.Source, func(string) string, error) {
	if !s.opts.Translate {
		src, err := shader.Lookup(name, s.opts.IsGLES)
		return src, func(u string) string { return u }, err
	}

	src, err := shader.Lookup(name, true)
	if err != nil {
		return shader.Source{}, nil, err
	}
	res, err := xlate.Translate(src, s.opts.IsGLES)
	if err != nil {
		return shader.Source{}, nil, fmt.Errorf("failed to translate %s: %w", name, err)
	}
	return res.Source, res.UniformName, nil
}

// Draw clears to the background and draws every pass of every drawable in
// order. The caller sets the viewport.
func (s *Scene) Draw() {
	bg := s.Background
	s.device.Clear(bg[0], bg[1], bg[2], bg[3])

	for _, item := range s.drawables {
		for _, p := range item.passes {
			s.drawPass(item, p)
		}
	}
}

func (s *Scene) drawPass(item *drawable, p renderPass) {
	d := s.device
	d.UseProgram(p.program.Handle)
	if p.Color != nil {
		c := p.Color
		d.SetColorUniform(p.program.colorLoc, c[0], c[1], c[2], c[3])
	}

	switch p.Mode {
	case exercise.ModeWireframe:
		width := p.LineWidth
		if width == 0 {
			width = s.opts.LineWidth
		}
		d.SetPolygonMode(graphics.PolygonLine)
		d.SetLineWidth(width)
		d.Draw(item.buffer, item.mesh.Topology)
		d.SetPolygonMode(graphics.PolygonFill)
		d.SetLineWidth(1)
	case exercise.ModePoints:
		size := p.PointSize
		if size == 0 {
			size = 1
		}
		d.SetFloatUniform(p.program.pointSizeLoc, size)
		d.Draw(item.buffer, graphics.Points)
	default:
		d.Draw(item.buffer, item.mesh.Topology)
	}
}

// Destroy releases every buffer and program the scene created. It is safe to
// call on a partially built or nil scene, and more than once.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	for _, item := range s.drawables {
		s.device.DeleteBuffer(item.buffer)
	}
	s.drawables = nil
	for name, p := range s.programs {
		p.Release(s.device)
		delete(s.programs, name)
	}
}
