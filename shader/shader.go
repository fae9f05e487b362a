package shader

import (
	"fmt"
	"sort"
	"strings"
)

// Source is a vertex/fragment source pair.
type Source struct {
	Vertex   string
	Fragment string
	// Version is the declared GLSL version and profile, e.g. "410 core" or
	// "300 es". When empty it is read from the vertex stage's #version line.
	Version string
}

// DeclaredVersion returns s.Version, falling back to the #version directive
// of the vertex stage.
func (s Source) DeclaredVersion() string {
	if s.Version != "" {
		return s.Version
	}
	for _, line := range strings.Split(s.Vertex, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "#version"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// IsES reports whether the source targets OpenGL ES / WebGL2.
func (s Source) IsES() bool {
	return strings.HasSuffix(s.DeclaredVersion(), " es")
}

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexColorVertexGL = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
uniform float pointSize;
out vec3 ourColor;
void main() {
    gl_Position = vec4(aPos, 1.0);
    gl_PointSize = pointSize;
    ourColor = aColor;
}
`

const vertexColorFragmentGL = `#version 410 core
in vec3 ourColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(ourColor, 1.0);
}
`

const positionVertexGL = `#version 410 core
layout (location = 0) in vec3 position;
uniform float pointSize;
void main() {
    gl_Position = vec4(position, 1.0);
    gl_PointSize = pointSize;
}
`

const uniformColorFragmentGL = `#version 410 core
uniform vec4 inputColor;
out vec4 color;
void main() {
    color = inputColor;
}
`

// Fragments outside the unit disc inscribed in the point sprite are dropped,
// so points render round.
const roundPointFragmentGL = `#version 410 core
uniform vec4 inputColor;
out vec4 color;
void main() {
    vec2 circCoord = 2.0 * gl_PointCoord - 1.0;
    if (dot(circCoord, circCoord) > 1.0) {
        discard;
    }
    color = inputColor;
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexColorVertexGLES = `#version 300 es
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
uniform float pointSize;
out vec3 ourColor;
void main() {
    gl_Position = vec4(aPos, 1.0);
    gl_PointSize = pointSize;
    ourColor = aColor;
}
`

const vertexColorFragmentGLES = `#version 300 es
precision mediump float;
in vec3 ourColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(ourColor, 1.0);
}
`

const positionVertexGLES = `#version 300 es
layout (location = 0) in vec3 position;
uniform float pointSize;
void main() {
    gl_Position = vec4(position, 1.0);
    gl_PointSize = pointSize;
}
`

const uniformColorFragmentGLES = `#version 300 es
precision mediump float;
uniform vec4 inputColor;
out vec4 color;
void main() {
    color = inputColor;
}
`

const roundPointFragmentGLES = `#version 300 es
precision mediump float;
uniform vec4 inputColor;
out vec4 color;
void main() {
    vec2 circCoord = 2.0 * gl_PointCoord - 1.0;
    if (dot(circCoord, circCoord) > 1.0) {
        discard;
    }
    color = inputColor;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Names of the built-in programs.
const (
	VertexColor  = "vertex-color"
	UniformColor = "uniform-color"
	RoundPoint   = "round-point"
)

// Uniforms used by the built-in programs.
const (
	ColorUniform     = "inputColor"
	PointSizeUniform = "pointSize"
)

// GetVertexColorSource returns the program that passes a per-vertex color
// straight through to the fragment output.
func GetVertexColorSource(isGLES bool) Source {
	if isGLES {
		return Source{Vertex: vertexColorVertexGLES, Fragment: vertexColorFragmentGLES}
	}
	return Source{Vertex: vertexColorVertexGL, Fragment: vertexColorFragmentGL}
}

// GetUniformColorSource returns the program that fills every fragment with
// the inputColor uniform.
func GetUniformColorSource(isGLES bool) Source {
	if isGLES {
		return Source{Vertex: positionVertexGLES, Fragment: uniformColorFragmentGLES}
	}
	return Source{Vertex: positionVertexGL, Fragment: uniformColorFragmentGL}
}

// GetRoundPointSource returns the program that draws point sprites as
// discs of pointSize pixels colored by inputColor.
func GetRoundPointSource(isGLES bool) Source {
	if isGLES {
		return Source{Vertex: positionVertexGLES, Fragment: roundPointFragmentGLES}
	}
	return Source{Vertex: positionVertexGL, Fragment: roundPointFragmentGL}
}

var library = map[string]func(bool) Source{
	VertexColor:  GetVertexColorSource,
	UniformColor: GetUniformColorSource,
	RoundPoint:   GetRoundPointSource,
}

// Lookup returns the named built-in program for the given API flavor.
func Lookup(name string, isGLES bool) (Source, error) {
	get, ok := library[name]
	if !ok {
		return Source{}, fmt.Errorf("unknown shader program %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return get(isGLES), nil
}

// Names lists the built-in programs in sorted order.
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
