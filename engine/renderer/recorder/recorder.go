// Package recorder provides a headless graphics context that keeps every
// call it receives. It backs the tests and the headless testbed mode.
package recorder

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

type Buffer struct {
	ID      int
	Target  renderer.BufferTarget
	Floats  []float32
	Indices []uint16
}

type Program struct {
	ID             int
	VertexSource   string
	FragmentSource string

	attribs   map[string]renderer.AttribLocation
	locations map[string]*Location
	// Uniforms holds the last value uploaded per name.
	Uniforms map[string]Upload
}

type Location struct {
	Program *Program
	Name    string
}

// Upload is one uniform call as seen by the context.
type Upload struct {
	Fn     string
	Values []float32
}

// Call is one context call in order of arrival.
type Call struct {
	Name string
	Args []any
}

// Draw is a snapshot taken at every DrawElements.
type Draw struct {
	Program  *Program
	Count    int32
	Uniforms map[string]Upload
}

/**
 * @brief A renderer.Context that records instead of drawing. The zero value
 * is not usable; build one with New.
 */
type Context struct {
	Calls []Call
	Draws []Draw

	// Inactive reports uniform names the fake linker optimised away; their
	// location is nil.
	Inactive func(name string) bool
	// FailCompile and FailLink make CreateProgram fail at that stage.
	FailCompile bool
	FailLink    bool
	// FailBuffers makes CreateBuffer return nil.
	FailBuffers bool

	nextID   int
	buffers  map[int]*Buffer
	programs map[int]*Program
	bound    map[renderer.BufferTarget]*Buffer
	current  *Program
}

var _ renderer.Context = (*Context)(nil)

func New() *Context {
	return &Context{
		buffers:  make(map[int]*Buffer),
		programs: make(map[int]*Program),
		bound:    make(map[renderer.BufferTarget]*Buffer),
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

// Reset forgets recorded calls and draws but keeps live resources.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
}

// CallNames lists the recorded call names in order.
func (c *Context) CallNames() []string {
	names := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		names[i] = call.Name
	}
	return names
}

// Count returns how many times name was called.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// LiveBuffers returns the number of created and not yet deleted buffers.
func (c *Context) LiveBuffers() int {
	return len(c.buffers)
}

// LivePrograms returns the number of created and not yet deleted programs.
func (c *Context) LivePrograms() int {
	return len(c.programs)
}

func (c *Context) CreateBuffer() renderer.Buffer {
	c.record("CreateBuffer")
	if c.FailBuffers {
		return nil
	}
	c.nextID++
	b := &Buffer{ID: c.nextID}
	c.buffers[b.ID] = b
	return b
}

func (c *Context) DeleteBuffer(buffer renderer.Buffer) {
	c.record("DeleteBuffer", buffer)
	if b, ok := buffer.(*Buffer); ok {
		delete(c.buffers, b.ID)
	}
}

func (c *Context) BindBuffer(target renderer.BufferTarget, buffer renderer.Buffer) {
	c.record("BindBuffer", target, buffer)
	b, _ := buffer.(*Buffer)
	c.bound[target] = b
}

func (c *Context) BufferDataFloat32(target renderer.BufferTarget, data []float32) {
	c.record("BufferDataFloat32", target, len(data))
	if b := c.bound[target]; b != nil {
		b.Target = target
		b.Floats = append([]float32(nil), data...)
	}
}

func (c *Context) BufferDataUint16(target renderer.BufferTarget, data []uint16) {
	c.record("BufferDataUint16", target, len(data))
	if b := c.bound[target]; b != nil {
		b.Target = target
		b.Indices = append([]uint16(nil), data...)
	}
}

func (c *Context) CreateProgram(vertexSource, fragmentSource string) (renderer.Program, error) {
	c.record("CreateProgram")
	if c.FailCompile {
		return nil, fmt.Errorf("vertex shader: ERROR: 0:1: syntax error: %w", core.ErrShaderCompile)
	}
	if c.FailLink {
		return nil, fmt.Errorf("link: ERROR: varying mismatch: %w", core.ErrProgramLink)
	}
	c.nextID++
	p := &Program{
		ID:             c.nextID,
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		attribs:        make(map[string]renderer.AttribLocation),
		locations:      make(map[string]*Location),
		Uniforms:       make(map[string]Upload),
	}
	c.programs[p.ID] = p
	return p, nil
}

func (c *Context) DeleteProgram(program renderer.Program) {
	c.record("DeleteProgram", program)
	if p, ok := program.(*Program); ok {
		delete(c.programs, p.ID)
		if c.current == p {
			c.current = nil
		}
	}
}

func (c *Context) UseProgram(program renderer.Program) {
	c.record("UseProgram", program)
	c.current, _ = program.(*Program)
}

func (c *Context) GetAttribLocation(program renderer.Program, name string) renderer.AttribLocation {
	c.record("GetAttribLocation", name)
	p, ok := program.(*Program)
	if !ok {
		return renderer.NoAttrib
	}
	loc, ok := p.attribs[name]
	if !ok {
		loc = renderer.AttribLocation(len(p.attribs))
		p.attribs[name] = loc
	}
	return loc
}

func (c *Context) GetUniformLocation(program renderer.Program, name string) metadata.UniformLocation {
	c.record("GetUniformLocation", name)
	p, ok := program.(*Program)
	if !ok || (c.Inactive != nil && c.Inactive(name)) {
		return nil
	}
	loc, ok := p.locations[name]
	if !ok {
		loc = &Location{Program: p, Name: name}
		p.locations[name] = loc
	}
	return loc
}

func (c *Context) upload(fn string, location metadata.UniformLocation, values ...float32) {
	loc, _ := location.(*Location)
	name := ""
	if loc != nil {
		name = loc.Name
		loc.Program.Uniforms[name] = Upload{Fn: fn, Values: append([]float32(nil), values...)}
	}
	c.record(fn, name)
}

func (c *Context) Uniform1f(location metadata.UniformLocation, v float32) {
	c.upload("Uniform1f", location, v)
}

func (c *Context) Uniform1i(location metadata.UniformLocation, v int32) {
	c.upload("Uniform1i", location, float32(v))
}

func (c *Context) Uniform2fv(location metadata.UniformLocation, v []float32) {
	c.upload("Uniform2fv", location, v...)
}

func (c *Context) Uniform3fv(location metadata.UniformLocation, v []float32) {
	c.upload("Uniform3fv", location, v...)
}

func (c *Context) Uniform4fv(location metadata.UniformLocation, v []float32) {
	c.upload("Uniform4fv", location, v...)
}

func (c *Context) UniformMatrix4fv(location metadata.UniformLocation, transpose bool, v []float32) {
	c.upload("UniformMatrix4fv", location, v...)
}

func (c *Context) EnableVertexAttribArray(location renderer.AttribLocation) {
	c.record("EnableVertexAttribArray", location)
}

func (c *Context) VertexAttribPointer(location renderer.AttribLocation, size int32, normalized bool) {
	c.record("VertexAttribPointer", location, size, normalized)
}

func (c *Context) DrawElements(mode renderer.DrawMode, count int32, typ renderer.IndexType, offset int) {
	c.record("DrawElements", mode, count, typ, offset)
	d := Draw{Program: c.current, Count: count, Uniforms: make(map[string]Upload)}
	if c.current != nil {
		for k, v := range c.current.Uniforms {
			d.Uniforms[k] = v
		}
	}
	c.Draws = append(c.Draws, d)
}

func (c *Context) Enable(capability renderer.Capability) {
	c.record("Enable", capability)
}

func (c *Context) DepthFunc(fn renderer.DepthFunction) {
	c.record("DepthFunc", fn)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor", r, g, b, a)
}

func (c *Context) ClearDepth(depth float32) {
	c.record("ClearDepth", depth)
}

func (c *Context) Clear(mask renderer.ClearMask) {
	c.record("Clear", mask)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("Viewport", x, y, width, height)
}

// String renders the call log, one call per line.
func (c *Context) String() string {
	var sb strings.Builder
	for _, call := range c.Calls {
		fmt.Fprintf(&sb, "%s%v\n", call.Name, call.Args)
	}
	return sb.String()
}
