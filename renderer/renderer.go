package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshapes/exercise"
	"github.com/richinsley/goshapes/graphics"
	"github.com/richinsley/goshapes/options"
)

// glInitOnce guards gl.Init, which loads function pointers for the whole
// process.
var glInitOnce sync.Once

type Renderer struct {
	context           graphics.Context
	device            *GLDevice
	scene             *Scene
	offscreenRenderer *OffscreenRenderer
	width             int
	height            int
	recordMode        bool
	sceneOptions      SceneOptions
}

// NewRenderer makes ctx current, loads the GL entry points and, when opts asks
// for recording, creates the offscreen target frames are read back from.
func NewRenderer(opts *options.Options, ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		width:      *opts.Width,
		height:     *opts.Height,
		recordMode: opts.Recording(),
		sceneOptions: SceneOptions{
			IsGLES:    ctx.IsGLES(),
			Translate: *opts.Translate,
			LineWidth: float32(*opts.LineWidth),
		},
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.device = NewGLDevice(r.sceneOptions.IsGLES)

	if r.recordMode {
		var err error
		r.offscreenRenderer, err = NewOffscreenRenderer(r.width, r.height)
		if err != nil {
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}
	return r, nil
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() graphics.Device {
	return r.device
}

// LoadScene builds ex and makes it the current scene, destroying the previous
// one. On error the previous scene stays current.
func (r *Renderer) LoadScene(ex *exercise.Exercise) error {
	scene, err := NewScene(r.device, ex, r.sceneOptions)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ex.Name, err)
	}
	r.scene.Destroy()
	r.scene = scene
	return nil
}

// Scene returns the current scene, nil before the first LoadScene.
func (r *Renderer) Scene() *Scene {
	return r.scene
}

// RenderFrame draws the current scene. In record mode it draws into the
// offscreen framebuffer at the recording size; otherwise it draws to the
// default framebuffer, following its size so the window can be resized.
func (r *Renderer) RenderFrame() {
	width, height := r.width, r.height
	if r.recordMode {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreenRenderer.fbo)
	} else {
		width, height = r.context.GetFramebufferSize()
	}

	r.device.Viewport(0, 0, width, height)
	if r.scene != nil {
		r.scene.Draw()
	}

	if r.recordMode {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
}

// Run draws frames until the context asks to close.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		r.RenderFrame()
		r.context.EndFrame()
	}
}

// Shutdown releases the scene and offscreen target. The context itself is
// shut down by its owner.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
	r.scene = nil
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
		r.offscreenRenderer = nil
	}
}
