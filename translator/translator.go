package translator

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/goshapes/shader"
)

var translator *gst.ShaderTranslator

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	if translator == nil {
		t, err := gst.NewShaderTranslator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create shader translator: %w", err)
		}
		translator = t
	}
	return translator, nil
}

// Result is a translated program together with the names the translator
// gave to the uniforms it declares.
type Result struct {
	Source shader.Source
	// Uniforms maps a uniform's name in the input source to its name in the
	// translated output.
	Uniforms map[string]string
}

// UniformName returns the translated name of uniform, or uniform itself when
// the translator did not report it.
func (r *Result) UniformName(uniform string) string {
	if mapped, ok := r.Uniforms[uniform]; ok && mapped != "" {
		return mapped
	}
	return uniform
}

// Translate converts an OpenGL ES 3.0 / WebGL2 program into the dialect of the
// target context: GLSL 4.10 for desktop GL, ESSL for GLES.
func Translate(src shader.Source, isGLES bool) (*Result, error) {
	if !src.IsES() {
		return nil, fmt.Errorf("translation input must be #version 300 es, got %q", src.DeclaredVersion())
	}
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}

	outputFormat := gst.OutputFormatGLSL410
	version := "410 core"
	if isGLES {
		outputFormat = gst.OutputFormatESSL
		version = "300 es"
	}

	vs, err := t.TranslateShader(src.Vertex, "vertex", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(src.Fragment, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	res := &Result{
		Source:   shader.Source{Vertex: vs.Code, Fragment: fs.Code, Version: version},
		Uniforms: make(map[string]string),
	}
	for name, v := range vs.Variables {
		res.Uniforms[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
