package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshapes/graphics"
)

// GLDevice issues graphics.Device calls against the current OpenGL context.
type GLDevice struct {
	isGLES bool
}

// NewGLDevice returns a device for the current context. gl.Init must already
// have run on this thread.
func NewGLDevice(isGLES bool) *GLDevice {
	if !isGLES {
		// GLES always takes the point size from gl_PointSize; desktop GL
		// only does when asked to.
		gl.Enable(gl.PROGRAM_POINT_SIZE)
	}
	return &GLDevice{isGLES: isGLES}
}

func (d *GLDevice) CreateShader(kind graphics.ShaderKind) uint32 {
	if kind == graphics.FragmentShader {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (d *GLDevice) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *GLDevice) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *GLDevice) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *GLDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GLDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GLDevice) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *GLDevice) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *GLDevice) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *GLDevice) AttachedShaders(program uint32) int {
	var n int32
	gl.GetProgramiv(program, gl.ATTACHED_SHADERS, &n)
	return int(n)
}

func (d *GLDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// UploadMesh copies vertices (and indices, when given) into a new vertex
// array. Position is bound to attribute 0 and color, if the layout has one,
// to attribute 1.
func (d *GLDevice) UploadMesh(vertices []float32, indices []uint32, layout graphics.Layout) (*graphics.Buffer, error) {
	stride := layout.Stride()
	if len(vertices) == 0 || len(vertices)%stride != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of stride %d", len(vertices), stride)
	}

	buf := &graphics.Buffer{Vertices: int32(len(vertices) / stride)}
	gl.GenVertexArrays(1, &buf.VAO)
	gl.GenBuffers(1, &buf.VBO)
	gl.BindVertexArray(buf.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &buf.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		buf.Indices = int32(len(indices))
	}

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(stride*4), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	if layout.HasColor() {
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, int32(stride*4), gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
	}

	// The element buffer binding is part of the VAO, so the VAO goes first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return buf, nil
}

func (d *GLDevice) DeleteBuffer(buf *graphics.Buffer) {
	if buf == nil {
		return
	}
	if buf.EBO != 0 {
		gl.DeleteBuffers(1, &buf.EBO)
	}
	gl.DeleteBuffers(1, &buf.VBO)
	gl.DeleteVertexArrays(1, &buf.VAO)
	*buf = graphics.Buffer{}
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) SetColorUniform(location int32, r, g, b, a float32) {
	if location != -1 {
		gl.Uniform4f(location, r, g, b, a)
	}
}

func (d *GLDevice) SetFloatUniform(location int32, v float32) {
	if location != -1 {
		gl.Uniform1f(location, v)
	}
}

func glTopology(t graphics.Topology) uint32 {
	switch t {
	case graphics.TriangleFan:
		return gl.TRIANGLE_FAN
	case graphics.LineStrip:
		return gl.LINE_STRIP
	case graphics.LineLoop:
		return gl.LINE_LOOP
	case graphics.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func (d *GLDevice) Draw(buf *graphics.Buffer, topology graphics.Topology) {
	gl.BindVertexArray(buf.VAO)
	if buf.Indexed() && topology != graphics.Points {
		gl.DrawElements(glTopology(topology), buf.Indices, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(glTopology(topology), 0, buf.Vertices)
	}
	gl.BindVertexArray(0)
}

func (d *GLDevice) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *GLDevice) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// SetPolygonMode is a no-op on GLES, which has no polygon mode; wireframe
// passes there draw filled.
func (d *GLDevice) SetPolygonMode(mode graphics.PolygonMode) {
	if d.isGLES {
		return
	}
	if mode == graphics.PolygonLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *GLDevice) SetLineWidth(width float32) {
	gl.LineWidth(width)
}
