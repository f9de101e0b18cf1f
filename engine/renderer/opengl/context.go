//go:build !js

// Package opengl implements renderer.Context on desktop OpenGL 2.1, the
// closest desktop profile to WebGL 1. The caller owns the GL context and
// must make it current before calling New.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
	"github.com/spaghettifunk/cgengine/engine/shaders"
)

type buffer uint32

type program uint32

type uniformLocation int32

type Context struct{}

var _ renderer.Context = (*Context)(nil)

/**
 * @brief Loads the GL function pointers for the current context.
 */
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Context{}, nil
}

func glTarget(t renderer.BufferTarget) uint32 {
	if t == renderer.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (c *Context) CreateBuffer() renderer.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return nil
	}
	return buffer(id)
}

func (c *Context) DeleteBuffer(b renderer.Buffer) {
	if id, ok := b.(buffer); ok {
		handle := uint32(id)
		gl.DeleteBuffers(1, &handle)
	}
}

func (c *Context) BindBuffer(target renderer.BufferTarget, b renderer.Buffer) {
	id, _ := b.(buffer)
	gl.BindBuffer(glTarget(target), uint32(id))
}

func (c *Context) BufferDataFloat32(target renderer.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) BufferDataUint16(target renderer.BufferTarget, data []uint16) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, core.ErrResourceCreation
	}
	csources, free := gl.Strs(shaders.ToDesktop(source) + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s: %w", strings.TrimRight(string(log), "\x00"), core.ErrShaderCompile)
	}
	return shader, nil
}

func (c *Context) CreateProgram(vertexSource, fragmentSource string) (renderer.Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("program: %w", core.ErrResourceCreation)
	}
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(id, logLen, nil, &log[0])
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%s: %w", strings.TrimRight(string(log), "\x00"), core.ErrProgramLink)
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	return program(id), nil
}

func (c *Context) DeleteProgram(p renderer.Program) {
	if id, ok := p.(program); ok {
		gl.DeleteProgram(uint32(id))
	}
}

func (c *Context) UseProgram(p renderer.Program) {
	id, _ := p.(program)
	gl.UseProgram(uint32(id))
}

func (c *Context) GetAttribLocation(p renderer.Program, name string) renderer.AttribLocation {
	id, ok := p.(program)
	if !ok {
		return renderer.NoAttrib
	}
	return renderer.AttribLocation(gl.GetAttribLocation(uint32(id), gl.Str(name+"\x00")))
}

func (c *Context) GetUniformLocation(p renderer.Program, name string) metadata.UniformLocation {
	id, ok := p.(program)
	if !ok {
		return nil
	}
	loc := gl.GetUniformLocation(uint32(id), gl.Str(name+"\x00"))
	if loc < 0 {
		return nil
	}
	return uniformLocation(loc)
}

func loc(l metadata.UniformLocation) int32 {
	if v, ok := l.(uniformLocation); ok {
		return int32(v)
	}
	return -1
}

func (c *Context) Uniform1f(location metadata.UniformLocation, v float32) {
	gl.Uniform1f(loc(location), v)
}

func (c *Context) Uniform1i(location metadata.UniformLocation, v int32) {
	gl.Uniform1i(loc(location), v)
}

func (c *Context) Uniform2fv(location metadata.UniformLocation, v []float32) {
	gl.Uniform2fv(loc(location), int32(len(v)/2), &v[0])
}

func (c *Context) Uniform3fv(location metadata.UniformLocation, v []float32) {
	gl.Uniform3fv(loc(location), int32(len(v)/3), &v[0])
}

func (c *Context) Uniform4fv(location metadata.UniformLocation, v []float32) {
	gl.Uniform4fv(loc(location), int32(len(v)/4), &v[0])
}

func (c *Context) UniformMatrix4fv(location metadata.UniformLocation, transpose bool, v []float32) {
	gl.UniformMatrix4fv(loc(location), int32(len(v)/16), transpose, &v[0])
}

func (c *Context) EnableVertexAttribArray(location renderer.AttribLocation) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (c *Context) VertexAttribPointer(location renderer.AttribLocation, size int32, normalized bool) {
	gl.VertexAttribPointerWithOffset(uint32(location), size, gl.FLOAT, normalized, 0, 0)
}

func (c *Context) DrawElements(mode renderer.DrawMode, count int32, typ renderer.IndexType, offset int) {
	m := uint32(gl.TRIANGLES)
	if mode == renderer.Lines {
		m = gl.LINES
	}
	gl.DrawElements(m, count, gl.UNSIGNED_SHORT, gl.PtrOffset(offset))
}

func (c *Context) Enable(capability renderer.Capability) {
	switch capability {
	case renderer.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	case renderer.CullFace:
		gl.Enable(gl.CULL_FACE)
	}
}

func (c *Context) DepthFunc(fn renderer.DepthFunction) {
	switch fn {
	case renderer.Less:
		gl.DepthFunc(gl.LESS)
	case renderer.LessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case renderer.Always:
		gl.DepthFunc(gl.ALWAYS)
	}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) ClearDepth(depth float32) {
	gl.ClearDepth(float64(depth))
}

func (c *Context) Clear(mask renderer.ClearMask) {
	var bits uint32
	if mask&renderer.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&renderer.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}
