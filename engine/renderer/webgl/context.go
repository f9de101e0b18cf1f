//go:build js && wasm

// Package webgl implements renderer.Context over a browser WebGL 1
// context.
package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	floatType          int
	unsignedShort      int
	triangles          int
	lines              int
	depthTest          int
	cullFace           int
	less               int
	lequal             int
	always             int
	colorBufferBit     int
	depthBufferBit     int
	compileStatus      int
	linkStatus         int
	vertexShader       int
	fragmentShader     int
}

// Context wraps a WebGLRenderingContext.
type Context struct {
	gl     js.Value
	consts glConsts
}

var _ renderer.Context = (*Context)(nil)

/**
 * @brief Gets a "webgl" context from the canvas matched by selector.
 *
 * @param selector A CSS selector, e.g. "#glcanvas".
 */
func NewFromCanvas(selector string) (*Context, error) {
	canvas := js.Global().Get("document").Call("querySelector", selector)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("canvas %q not found: %w", selector, core.ErrResourceCreation)
	}
	gl := canvas.Call("getContext", "webgl")
	if gl.IsNull() || gl.IsUndefined() {
		return nil, fmt.Errorf("canvas %q has no webgl context: %w", selector, core.ErrResourceCreation)
	}
	return New(gl), nil
}

func New(gl js.Value) *Context {
	c := &Context{gl: gl}
	c.consts = glConsts{
		arrayBuffer:        gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         gl.Get("STATIC_DRAW").Int(),
		floatType:          gl.Get("FLOAT").Int(),
		unsignedShort:      gl.Get("UNSIGNED_SHORT").Int(),
		triangles:          gl.Get("TRIANGLES").Int(),
		lines:              gl.Get("LINES").Int(),
		depthTest:          gl.Get("DEPTH_TEST").Int(),
		cullFace:           gl.Get("CULL_FACE").Int(),
		less:               gl.Get("LESS").Int(),
		lequal:             gl.Get("LEQUAL").Int(),
		always:             gl.Get("ALWAYS").Int(),
		colorBufferBit:     gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:     gl.Get("DEPTH_BUFFER_BIT").Int(),
		compileStatus:      gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         gl.Get("LINK_STATUS").Int(),
		vertexShader:       gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     gl.Get("FRAGMENT_SHADER").Int(),
	}
	return c
}

// Size returns the drawing buffer size in pixels.
func (c *Context) Size() (int32, int32) {
	return int32(c.gl.Get("drawingBufferWidth").Int()), int32(c.gl.Get("drawingBufferHeight").Int())
}

func valid(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func (c *Context) target(t renderer.BufferTarget) int {
	if t == renderer.ElementArrayBuffer {
		return c.consts.elementArrayBuffer
	}
	return c.consts.arrayBuffer
}

func (c *Context) CreateBuffer() renderer.Buffer {
	b := c.gl.Call("createBuffer")
	if !valid(b) {
		return nil
	}
	return b
}

func (c *Context) DeleteBuffer(buffer renderer.Buffer) {
	if b, ok := buffer.(js.Value); ok {
		c.gl.Call("deleteBuffer", b)
	}
}

func (c *Context) BindBuffer(target renderer.BufferTarget, buffer renderer.Buffer) {
	b, ok := buffer.(js.Value)
	if !ok {
		b = js.Null()
	}
	c.gl.Call("bindBuffer", c.target(target), b)
}

func (c *Context) BufferDataFloat32(target renderer.BufferTarget, data []float32) {
	c.gl.Call("bufferData", c.target(target), float32Array(data), c.consts.staticDraw)
}

func (c *Context) BufferDataUint16(target renderer.BufferTarget, data []uint16) {
	c.gl.Call("bufferData", c.target(target), uint16Array(data), c.consts.staticDraw)
}

func (c *Context) compileShader(kind int, source string) (js.Value, error) {
	shader := c.gl.Call("createShader", kind)
	if !valid(shader) {
		return js.Null(), core.ErrResourceCreation
	}
	c.gl.Call("shaderSource", shader, source)
	c.gl.Call("compileShader", shader)
	if !c.gl.Call("getShaderParameter", shader, c.consts.compileStatus).Bool() {
		log := c.gl.Call("getShaderInfoLog", shader).String()
		c.gl.Call("deleteShader", shader)
		return js.Null(), fmt.Errorf("%s: %w", log, core.ErrShaderCompile)
	}
	return shader, nil
}

func (c *Context) CreateProgram(vertexSource, fragmentSource string) (renderer.Program, error) {
	vs, err := c.compileShader(c.consts.vertexShader, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer c.gl.Call("deleteShader", vs)
	fs, err := c.compileShader(c.consts.fragmentShader, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer c.gl.Call("deleteShader", fs)

	program := c.gl.Call("createProgram")
	if !valid(program) {
		return nil, fmt.Errorf("program: %w", core.ErrResourceCreation)
	}
	c.gl.Call("attachShader", program, vs)
	c.gl.Call("attachShader", program, fs)
	c.gl.Call("linkProgram", program)
	if !c.gl.Call("getProgramParameter", program, c.consts.linkStatus).Bool() {
		log := c.gl.Call("getProgramInfoLog", program).String()
		c.gl.Call("deleteProgram", program)
		return nil, fmt.Errorf("%s: %w", log, core.ErrProgramLink)
	}
	return program, nil
}

func (c *Context) DeleteProgram(program renderer.Program) {
	if p, ok := program.(js.Value); ok {
		c.gl.Call("deleteProgram", p)
	}
}

func (c *Context) UseProgram(program renderer.Program) {
	p, ok := program.(js.Value)
	if !ok {
		p = js.Null()
	}
	c.gl.Call("useProgram", p)
}

func (c *Context) GetAttribLocation(program renderer.Program, name string) renderer.AttribLocation {
	p, ok := program.(js.Value)
	if !ok {
		return renderer.NoAttrib
	}
	return renderer.AttribLocation(c.gl.Call("getAttribLocation", p, name).Int())
}

func (c *Context) GetUniformLocation(program renderer.Program, name string) metadata.UniformLocation {
	p, ok := program.(js.Value)
	if !ok {
		return nil
	}
	loc := c.gl.Call("getUniformLocation", p, name)
	if !valid(loc) {
		return nil
	}
	return loc
}

func (c *Context) Uniform1f(location metadata.UniformLocation, v float32) {
	c.gl.Call("uniform1f", location.(js.Value), v)
}

func (c *Context) Uniform1i(location metadata.UniformLocation, v int32) {
	c.gl.Call("uniform1i", location.(js.Value), v)
}

func (c *Context) Uniform2fv(location metadata.UniformLocation, v []float32) {
	c.gl.Call("uniform2fv", location.(js.Value), float32Array(v))
}

func (c *Context) Uniform3fv(location metadata.UniformLocation, v []float32) {
	c.gl.Call("uniform3fv", location.(js.Value), float32Array(v))
}

func (c *Context) Uniform4fv(location metadata.UniformLocation, v []float32) {
	c.gl.Call("uniform4fv", location.(js.Value), float32Array(v))
}

func (c *Context) UniformMatrix4fv(location metadata.UniformLocation, transpose bool, v []float32) {
	c.gl.Call("uniformMatrix4fv", location.(js.Value), transpose, float32Array(v))
}

func (c *Context) EnableVertexAttribArray(location renderer.AttribLocation) {
	c.gl.Call("enableVertexAttribArray", int(location))
}

func (c *Context) VertexAttribPointer(location renderer.AttribLocation, size int32, normalized bool) {
	c.gl.Call("vertexAttribPointer", int(location), size, c.consts.floatType, normalized, 0, 0)
}

func (c *Context) DrawElements(mode renderer.DrawMode, count int32, typ renderer.IndexType, offset int) {
	m := c.consts.triangles
	if mode == renderer.Lines {
		m = c.consts.lines
	}
	c.gl.Call("drawElements", m, count, c.consts.unsignedShort, offset)
}

func (c *Context) Enable(capability renderer.Capability) {
	switch capability {
	case renderer.DepthTest:
		c.gl.Call("enable", c.consts.depthTest)
	case renderer.CullFace:
		c.gl.Call("enable", c.consts.cullFace)
	}
}

func (c *Context) DepthFunc(fn renderer.DepthFunction) {
	switch fn {
	case renderer.Less:
		c.gl.Call("depthFunc", c.consts.less)
	case renderer.LessEqual:
		c.gl.Call("depthFunc", c.consts.lequal)
	case renderer.Always:
		c.gl.Call("depthFunc", c.consts.always)
	}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *Context) ClearDepth(depth float32) {
	c.gl.Call("clearDepth", depth)
}

func (c *Context) Clear(mask renderer.ClearMask) {
	bits := 0
	if mask&renderer.ColorBufferBit != 0 {
		bits |= c.consts.colorBufferBit
	}
	if mask&renderer.DepthBufferBit != 0 {
		bits |= c.consts.depthBufferBit
	}
	c.gl.Call("clear", bits)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.gl.Call("viewport", x, y, width, height)
}
