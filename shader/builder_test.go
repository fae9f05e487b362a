package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/goshapes/graphics/graphicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSuccess(t *testing.T) {
	for _, isGLES := range []bool{false, true} {
		for _, name := range Names() {
			src, err := Lookup(name, isGLES)
			require.NoError(t, err)

			dev := graphicstest.NewDevice()
			prog, err := NewBuilder(dev).Build(src)
			require.NoError(t, err, "%s (gles=%v)", name, isGLES)
			require.NotNil(t, prog)
			assert.NotZero(t, prog.Handle)

			assert.Equal(t, 2, dev.AttachedAtLink(prog.Handle))
			assert.Equal(t, 0, dev.AttachedShaders(prog.Handle))
			assert.Equal(t, 0, dev.LiveShaders(), "stages must be freed after link")
			assert.Equal(t, 1, dev.LivePrograms())

			prog.Release(dev)
			assert.Zero(t, prog.Handle)
			assert.Equal(t, 0, dev.LivePrograms())
		}
	}
}

func TestBuildVertexCompileFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	src := GetVertexColorSource(false)
	src.Vertex = strings.Replace(src.Vertex, "void main()", "void notMain()", 1)

	prog, err := NewBuilder(dev).Build(src)
	assert.Nil(t, prog)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.NotErrorIs(t, err, ErrLinkFailed)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, StageVertex, ce.Stage)
	assert.NotEmpty(t, ce.Log)
	assert.Contains(t, err.Error(), "vertex")

	assert.Equal(t, 0, dev.LiveShaders())
	assert.Equal(t, 0, dev.LivePrograms())
}

func TestBuildFragmentCompileFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	src := GetUniformColorSource(true)
	src.Fragment = "#version 300 es\nout vec4 color;\n"

	_, err := NewBuilder(dev).Build(src)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, StageFragment, ce.Stage)
	assert.NotEmpty(t, ce.Log)

	assert.Equal(t, 0, dev.LiveShaders(), "the compiled vertex stage must be freed too")
	assert.Equal(t, 0, dev.LivePrograms())
}

func TestBuildLinkFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	// The color fragment stage reads ourColor, which the position-only vertex
	// stage never writes.
	src := Source{
		Vertex:   GetUniformColorSource(false).Vertex,
		Fragment: GetVertexColorSource(false).Fragment,
	}

	prog, err := NewBuilder(dev).Build(src)
	assert.Nil(t, prog)
	require.ErrorIs(t, err, ErrLinkFailed)

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, StageLink, le.Stage())
	assert.Contains(t, le.Log, "ourColor")

	assert.Equal(t, 0, dev.LiveShaders())
	assert.Equal(t, 0, dev.LivePrograms())
}

func TestBuildEmptyDriverLog(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.EmptyLogs = true
	dev.FailLink = true

	_, err := NewBuilder(dev).Build(GetVertexColorSource(false))
	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.NotEmpty(t, le.Log)

	_, err = NewBuilder(dev).Build(Source{Vertex: "", Fragment: ""})
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.NotEmpty(t, ce.Log)
}

func TestRepeatedBuildsDoNotLeak(t *testing.T) {
	dev := graphicstest.NewDevice()
	b := NewBuilder(dev)
	bad := Source{Vertex: "#version 410 core\n", Fragment: uniformColorFragmentGL}

	var progs []*Program
	for i := 0; i < 50; i++ {
		p, err := b.Build(GetRoundPointSource(false))
		require.NoError(t, err)
		progs = append(progs, p)

		_, err = b.Build(bad)
		require.Error(t, err)
	}
	assert.Equal(t, 0, dev.LiveShaders())
	assert.Equal(t, 50, dev.LivePrograms())

	for _, p := range progs {
		p.Release(dev)
	}
	assert.Equal(t, 0, dev.LivePrograms())
}

func TestDeclaredVersion(t *testing.T) {
	assert.Equal(t, "410 core", GetVertexColorSource(false).DeclaredVersion())
	assert.Equal(t, "300 es", GetVertexColorSource(true).DeclaredVersion())
	assert.True(t, GetRoundPointSource(true).IsES())
	assert.False(t, GetRoundPointSource(false).IsES())
	assert.Equal(t, "460 core", Source{Version: "460 core"}.DeclaredVersion())
	assert.Equal(t, "", Source{}.DeclaredVersion())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("phong", false)
	assert.ErrorContains(t, err, "phong")
	assert.Equal(t, []string{RoundPoint, UniformColor, VertexColor}, Names())
}
