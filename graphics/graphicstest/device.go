// Package graphicstest provides an in-memory graphics.Device for tests that
// exercise shader building and scene setup without a GL context.
package graphicstest

import (
	"fmt"
	"strings"

	"github.com/richinsley/goshapes/graphics"
)

type shaderObject struct {
	kind     graphics.ShaderKind
	source   string
	compiled bool
	log      string
	deleted  bool
	attached int
}

type programObject struct {
	shaders        []uint32
	linked         bool
	log            string
	attachedAtLink int
	uniforms       map[string]int32
}

// DrawCall records a single Draw issued against the device.
type DrawCall struct {
	Program   uint32
	Buffer    *graphics.Buffer
	Topology  graphics.Topology
	Mode      graphics.PolygonMode
	Color     [4]float32
	LineWidth float32
	PointSize float32
}

// Device is a fake graphics.Device. Compilation fails for sources without a
// main entry point; linking fails when a fragment input has no matching
// vertex output. Every object it hands out is tracked so tests can assert
// that nothing leaks.
type Device struct {
	// FailLink forces every link to fail with a fixed log.
	FailLink bool
	// EmptyLogs makes the device report failures with an empty info log.
	EmptyLogs bool

	Draws  []DrawCall
	Clears int

	nextID   uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	buffers  map[uint32]*graphics.Buffer

	current uint32
	mode    graphics.PolygonMode
	color   [4]float32

	// LineWidth is the last width passed to SetLineWidth.
	LineWidth float32
	// PointSize is the last value written to any float uniform; the built-in
	// programs have only one.
	PointSize float32
	ViewportW int
	ViewportH int
}

// NewDevice returns an empty fake device.
func NewDevice() *Device {
	return &Device{
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		buffers:  make(map[uint32]*graphics.Buffer),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// LiveShaders returns the number of shader objects not yet freed. A shader
// deleted while still attached stays alive until it is detached.
func (d *Device) LiveShaders() int {
	return len(d.shaders)
}

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int {
	return len(d.programs)
}

// LiveBuffers returns the number of uploaded meshes not yet deleted.
func (d *Device) LiveBuffers() int {
	return len(d.buffers)
}

// AttachedAtLink returns how many shaders were attached to program when it
// was last linked.
func (d *Device) AttachedAtLink(program uint32) int {
	if p, ok := d.programs[program]; ok {
		return p.attachedAtLink
	}
	return 0
}

func (d *Device) CreateShader(kind graphics.ShaderKind) uint32 {
	id := d.id()
	d.shaders[id] = &shaderObject{kind: kind}
	return id
}

func (d *Device) ShaderSource(shader uint32, source string) {
	if s, ok := d.shaders[shader]; ok {
		s.source = source
	}
}

func (d *Device) CompileShader(shader uint32) {
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	s.compiled = strings.Contains(s.source, "void main")
	s.log = ""
	if !s.compiled && !d.EmptyLogs {
		s.log = fmt.Sprintf("ERROR: 0:1: '%s' shader has no main entry point", s.kind)
	}
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	s, ok := d.shaders[shader]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	if s, ok := d.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &programObject{}
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	p, ok := d.programs[program]
	s, sok := d.shaders[shader]
	if !ok || !sok {
		return
	}
	p.shaders = append(p.shaders, shader)
	s.attached++
}

func (d *Device) DetachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	for i, id := range p.shaders {
		if id != shader {
			continue
		}
		p.shaders = append(p.shaders[:i], p.shaders[i+1:]...)
		if s, ok := d.shaders[shader]; ok {
			s.attached--
			if s.deleted && s.attached == 0 {
				delete(d.shaders, shader)
			}
		}
		return
	}
}

func (d *Device) LinkProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	p.attachedAtLink = len(p.shaders)
	p.linked, p.log = d.link(p)
	p.uniforms = make(map[string]int32)
	if p.linked {
		for _, id := range p.shaders {
			for name := range declarations(d.shaders[id].source, "uniform") {
				p.uniforms[name] = int32(len(p.uniforms))
			}
		}
	}
	if d.EmptyLogs {
		p.log = ""
	}
}

func (d *Device) link(p *programObject) (bool, string) {
	if d.FailLink {
		return false, "ERROR: forced link failure"
	}
	var vert, frag *shaderObject
	for _, id := range p.shaders {
		s := d.shaders[id]
		if !s.compiled {
			return false, "ERROR: attached shader is not compiled"
		}
		switch s.kind {
		case graphics.VertexShader:
			vert = s
		case graphics.FragmentShader:
			frag = s
		}
	}
	if vert == nil || frag == nil {
		return false, "ERROR: program needs a vertex and a fragment shader"
	}
	outputs := declarations(vert.source, "out")
	for name := range declarations(frag.source, "in") {
		if _, ok := outputs[name]; !ok {
			return false, fmt.Sprintf("ERROR: fragment input '%s' has no matching vertex output", name)
		}
	}
	return true, ""
}

// declarations collects the variable names of top-level declarations whose
// storage qualifier is qualifier, ignoring any layout(...) prefix.
func declarations(source, qualifier string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "layout") {
			if i := strings.Index(line, ")"); i >= 0 {
				line = strings.TrimSpace(line[i+1:])
			}
		}
		fields := strings.Fields(strings.TrimSuffix(line, ";"))
		if len(fields) >= 3 && fields[0] == qualifier {
			names[fields[len(fields)-1]] = struct{}{}
		}
	}
	return names
}

func (d *Device) ProgramLinked(program uint32) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

func (d *Device) ProgramInfoLog(program uint32) string {
	if p, ok := d.programs[program]; ok {
		return p.log
	}
	return ""
}

func (d *Device) AttachedShaders(program uint32) int {
	if p, ok := d.programs[program]; ok {
		return len(p.shaders)
	}
	return 0
}

func (d *Device) DeleteShader(shader uint32) {
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	s.deleted = true
	if s.attached == 0 {
		delete(d.shaders, shader)
	}
}

func (d *Device) DeleteProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	for _, id := range append([]uint32(nil), p.shaders...) {
		d.DetachShader(program, id)
	}
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UploadMesh(vertices []float32, indices []uint32, layout graphics.Layout) (*graphics.Buffer, error) {
	if len(vertices) == 0 || len(vertices)%layout.Stride() != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of stride %d", len(vertices), layout.Stride())
	}
	buf := &graphics.Buffer{VAO: d.id(), VBO: d.id(), Vertices: int32(len(vertices) / layout.Stride())}
	if len(indices) > 0 {
		buf.EBO = d.id()
		buf.Indices = int32(len(indices))
	}
	d.buffers[buf.VAO] = buf
	return buf, nil
}

func (d *Device) DeleteBuffer(buf *graphics.Buffer) {
	if buf != nil {
		delete(d.buffers, buf.VAO)
	}
}

func (d *Device) UseProgram(program uint32) {
	d.current = program
}

func (d *Device) SetColorUniform(location int32, r, g, b, a float32) {
	if location >= 0 {
		d.color = [4]float32{r, g, b, a}
	}
}

func (d *Device) Draw(buf *graphics.Buffer, topology graphics.Topology) {
	d.Draws = append(d.Draws, DrawCall{
		Program:   d.current,
		Buffer:    buf,
		Topology:  topology,
		Mode:      d.mode,
		Color:     d.color,
		LineWidth: d.LineWidth,
		PointSize: d.PointSize,
	})
}

func (d *Device) Clear(r, g, b, a float32) {
	d.Clears++
}

func (d *Device) Viewport(x, y, width, height int) {
	d.ViewportW, d.ViewportH = width, height
}

func (d *Device) SetPolygonMode(mode graphics.PolygonMode) {
	d.mode = mode
}

func (d *Device) SetLineWidth(width float32) {
	d.LineWidth = width
}

func (d *Device) SetFloatUniform(location int32, v float32) {
	if location >= 0 {
		d.PointSize = v
	}
}
