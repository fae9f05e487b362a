package translator

import (
	"testing"

	"github.com/richinsley/goshapes/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateRejectsDesktopSource(t *testing.T) {
	_, err := Translate(shader.GetVertexColorSource(false), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410 core")
}

func TestUniformName(t *testing.T) {
	r := &Result{Uniforms: map[string]string{
		shader.ColorUniform: "_uinputColor",
		"unnamed":           "",
	}}
	assert.Equal(t, "_uinputColor", r.UniformName(shader.ColorUniform))
	assert.Equal(t, shader.PointSizeUniform, r.UniformName(shader.PointSizeUniform))
	assert.Equal(t, "unnamed", r.UniformName("unnamed"))
}
