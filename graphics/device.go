package graphics

// ShaderKind selects the pipeline stage a shader object is compiled for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Topology is the primitive assembly mode used when drawing a buffer.
type Topology int

const (
	Triangles Topology = iota
	TriangleFan
	LineStrip
	LineLoop
	Points
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	case LineStrip:
		return "line-strip"
	case LineLoop:
		return "line-loop"
	case Points:
		return "points"
	default:
		return "unknown"
	}
}

// Layout describes the interleaved per-vertex attributes of a vertex buffer.
// Position always occupies location 0 as three floats; color, when present,
// follows at location 1 as three floats.
type Layout int

const (
	LayoutPosition Layout = iota
	LayoutPositionColor
)

// Stride returns the number of float32 values per vertex.
func (l Layout) Stride() int {
	if l == LayoutPositionColor {
		return 6
	}
	return 3
}

// HasColor reports whether the layout carries a per-vertex color.
func (l Layout) HasColor() bool {
	return l == LayoutPositionColor
}

// PolygonMode controls how filled primitives are rasterized.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// ShaderDevice is the compile/link/query-log capability of a graphics context.
// Handles are opaque and owned by the device; zero is never a valid handle.
type ShaderDevice interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	// AttachedShaders returns the number of shader objects attached to program.
	AttachedShaders(program uint32) int
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	// UniformLocation returns -1 when program has no active uniform called name.
	UniformLocation(program uint32, name string) int32
}

// Buffer is an uploaded mesh: a vertex array with its vertex and optional
// element buffers.
type Buffer struct {
	VAO uint32
	VBO uint32
	EBO uint32
	// Vertices is the number of vertices in the vertex buffer.
	Vertices int32
	// Indices is the number of elements in the element buffer, zero when the
	// mesh is drawn without one.
	Indices int32
}

// Indexed reports whether the buffer has an element buffer.
func (b *Buffer) Indexed() bool {
	return b.Indices > 0
}

// Device is the full set of graphics calls the renderer issues against a
// current context.
type Device interface {
	ShaderDevice
	UploadMesh(vertices []float32, indices []uint32, layout Layout) (*Buffer, error)
	DeleteBuffer(buf *Buffer)
	UseProgram(program uint32)
	SetColorUniform(location int32, r, g, b, a float32)
	SetFloatUniform(location int32, v float32)
	// Draw draws buf with topology. Indexed buffers are drawn through their
	// element buffer, except for Points, which draws each vertex once.
	Draw(buf *Buffer, topology Topology)
	Clear(r, g, b, a float32)
	Viewport(x, y, width, height int)
	SetPolygonMode(mode PolygonMode)
	SetLineWidth(width float32)
}
