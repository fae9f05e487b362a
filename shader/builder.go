package shader

import (
	"errors"
	"fmt"

	"github.com/richinsley/goshapes/graphics"
)

// Stage identifies where in the build a failure happened.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return "unknown"
	}
}

var (
	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("program link failed")
)

// noLog stands in for an info log the driver left empty.
const noLog = "(driver returned no info log)"

// CompileError reports a stage that failed to compile, with the driver's log.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

func (e *CompileError) Is(target error) bool {
	return target == ErrCompileFailed
}

// LinkError reports a program that failed to link, with the driver's log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

func (e *LinkError) Is(target error) bool {
	return target == ErrLinkFailed
}

// Stage returns StageLink so link and compile failures can be handled alike.
func (e *LinkError) Stage() Stage {
	return StageLink
}

// Program is a linked program. The handle belongs to the device that built
// it; the caller releases it with Release.
type Program struct {
	Handle uint32
}

// Release deletes the program from device.
func (p *Program) Release(device graphics.ShaderDevice) {
	if p == nil || p.Handle == 0 {
		return
	}
	device.DeleteProgram(p.Handle)
	p.Handle = 0
}

// Builder compiles and links programs on a device. It keeps no state
// between builds, and every failure path frees what the build created.
type Builder struct {
	Device graphics.ShaderDevice
}

// NewBuilder returns a Builder for device.
func NewBuilder(device graphics.ShaderDevice) *Builder {
	return &Builder{Device: device}
}

// Build compiles both stages of src and links them. On success the stage
// objects are detached and deleted, leaving only the program.
func (b *Builder) Build(src Source) (*Program, error) {
	vs, err := b.compile(graphics.VertexShader, src.Vertex, StageVertex)
	if err != nil {
		return nil, err
	}
	defer b.Device.DeleteShader(vs)

	fs, err := b.compile(graphics.FragmentShader, src.Fragment, StageFragment)
	if err != nil {
		return nil, err
	}
	defer b.Device.DeleteShader(fs)

	program := b.Device.CreateProgram()
	b.Device.AttachShader(program, vs)
	b.Device.AttachShader(program, fs)
	b.Device.LinkProgram(program)

	if !b.Device.ProgramLinked(program) {
		logText := infoLog(b.Device.ProgramInfoLog(program))
		b.Device.DeleteProgram(program)
		return nil, &LinkError{Log: logText}
	}

	b.Device.DetachShader(program, vs)
	b.Device.DetachShader(program, fs)
	return &Program{Handle: program}, nil
}

func (b *Builder) compile(kind graphics.ShaderKind, source string, stage Stage) (uint32, error) {
	shader := b.Device.CreateShader(kind)
	b.Device.ShaderSource(shader, source)
	b.Device.CompileShader(shader)
	if !b.Device.ShaderCompiled(shader) {
		logText := infoLog(b.Device.ShaderInfoLog(shader))
		b.Device.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: logText}
	}
	return shader, nil
}

func infoLog(s string) string {
	if s == "" {
		return noLog
	}
	return s
}
