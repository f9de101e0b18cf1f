package resources

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

/**
 * @brief Represents the configuration for a geometry. Vertices, normals,
 * tangents and bitangents hold 3 floats per vertex, UVs hold 2.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string

	Vertices []float32
	Normals  []float32
	UVs      []float32
	/** @brief Triangle list indices into the vertex arrays. */
	Indices []uint16

	/** @brief Optional; bound only when both are present. */
	Tangents   []float32
	Bitangents []float32
}

type vertexAttribute struct {
	config   metadata.ShaderAttributeConfig
	data     []float32
	buffer   renderer.Buffer
	location renderer.AttribLocation
}

/**
 * @brief Raw vertex data plus the GPU buffers created from it. The buffers
 * are owned exclusively by the geometry and released by Destroy.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uuid.UUID
	/** @brief The geometry name. */
	Name string

	attributes  []*vertexAttribute
	indices     []uint16
	indexBuffer renderer.Buffer
	initialized bool
}

/**
 * @brief Validates the configuration and builds an uninitialized geometry.
 *
 * @param config The vertex data.
 * @return The geometry, or an error wrapping core.ErrInvalidGeometry.
 */
func NewGeometry(config GeometryConfig) (*Geometry, error) {
	if len(config.Vertices) == 0 || len(config.Vertices)%3 != 0 {
		return nil, fmt.Errorf("geometry %q: %d vertex floats: %w", config.Name, len(config.Vertices), core.ErrInvalidGeometry)
	}
	count := len(config.Vertices) / 3
	if len(config.Normals) != count*3 {
		return nil, fmt.Errorf("geometry %q: expected %d normal floats, got %d: %w", config.Name, count*3, len(config.Normals), core.ErrInvalidGeometry)
	}
	if len(config.UVs) != count*2 {
		return nil, fmt.Errorf("geometry %q: expected %d uv floats, got %d: %w", config.Name, count*2, len(config.UVs), core.ErrInvalidGeometry)
	}
	if len(config.Indices)%3 != 0 {
		return nil, fmt.Errorf("geometry %q: %d indices is not a triangle list: %w", config.Name, len(config.Indices), core.ErrInvalidGeometry)
	}
	for _, i := range config.Indices {
		if int(i) >= count {
			return nil, fmt.Errorf("geometry %q: index %d out of range: %w", config.Name, i, core.ErrInvalidGeometry)
		}
	}

	g := &Geometry{
		ID:      uuid.New(),
		Name:    config.Name,
		indices: config.Indices,
	}
	if g.Name == "" {
		g.Name = g.ID.String()
	}
	g.addAttribute(metadata.AttributeVertex, config.Vertices)
	g.addAttribute(metadata.AttributeNormal, config.Normals)
	g.addAttribute(metadata.AttributeUV, config.UVs)

	if len(config.Tangents) > 0 && len(config.Bitangents) > 0 {
		if len(config.Tangents) != count*3 || len(config.Bitangents) != count*3 {
			return nil, fmt.Errorf("geometry %q: tangent frame size mismatch: %w", config.Name, core.ErrInvalidGeometry)
		}
		g.addAttribute(metadata.AttributeTangent, config.Tangents)
		g.addAttribute(metadata.AttributeBitangent, config.Bitangents)
	}
	return g, nil
}

func (g *Geometry) addAttribute(config metadata.ShaderAttributeConfig, data []float32) {
	g.attributes = append(g.attributes, &vertexAttribute{
		config:   config,
		data:     data,
		location: renderer.NoAttrib,
	})
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.attributes[0].data) / 3
}

// IndexCount returns the number of indices drawn per draw call.
func (g *Geometry) IndexCount() int32 {
	return int32(len(g.indices))
}

func (g *Geometry) HasTangents() bool {
	return len(g.attributes) == 5
}

func (g *Geometry) IsInitialized() bool {
	return g.initialized
}

/**
 * @brief Resolves attribute locations against program and uploads every
 * array into its own static buffer. On failure the buffers created so far
 * are released.
 */
func (g *Geometry) SetupAttributes(ctx renderer.Context, program renderer.Program) error {
	if g.initialized {
		return fmt.Errorf("geometry %q: %w", g.Name, core.ErrAlreadyInitialized)
	}

	for _, attr := range g.attributes {
		attr.location = ctx.GetAttribLocation(program, attr.config.Name)
		attr.buffer = ctx.CreateBuffer()
		if attr.buffer == nil {
			g.release(ctx)
			return fmt.Errorf("geometry %q: %s buffer: %w", g.Name, attr.config.Name, core.ErrResourceCreation)
		}
		ctx.BindBuffer(renderer.ArrayBuffer, attr.buffer)
		ctx.BufferDataFloat32(renderer.ArrayBuffer, attr.data)
		ctx.BindBuffer(renderer.ArrayBuffer, nil)
	}

	g.indexBuffer = ctx.CreateBuffer()
	if g.indexBuffer == nil {
		g.release(ctx)
		return fmt.Errorf("geometry %q: index buffer: %w", g.Name, core.ErrResourceCreation)
	}
	ctx.BindBuffer(renderer.ElementArrayBuffer, g.indexBuffer)
	ctx.BufferDataUint16(renderer.ElementArrayBuffer, g.indices)
	ctx.BindBuffer(renderer.ElementArrayBuffer, nil)

	g.initialized = true
	return nil
}

// ResolveLocations re-queries attribute locations after the program was
// rebuilt. Buffers are kept.
func (g *Geometry) ResolveLocations(ctx renderer.Context, program renderer.Program) {
	for _, attr := range g.attributes {
		attr.location = ctx.GetAttribLocation(program, attr.config.Name)
	}
}

// BindAttributes points every used attribute at its buffer and binds the
// index buffer, ready for DrawElements.
func (g *Geometry) BindAttributes(ctx renderer.Context) {
	for _, attr := range g.attributes {
		if attr.location == renderer.NoAttrib {
			continue
		}
		ctx.BindBuffer(renderer.ArrayBuffer, attr.buffer)
		ctx.EnableVertexAttribArray(attr.location)
		ctx.VertexAttribPointer(attr.location, attr.config.ShaderAttributeType.Components(), attr.config.Normalized)
	}
	ctx.BindBuffer(renderer.ElementArrayBuffer, g.indexBuffer)
}

// Destroy releases the GPU buffers. The geometry can be set up again
// afterwards.
func (g *Geometry) Destroy(ctx renderer.Context) {
	if !g.initialized {
		return
	}
	g.release(ctx)
	g.initialized = false
}

func (g *Geometry) release(ctx renderer.Context) {
	for _, attr := range g.attributes {
		if attr.buffer != nil {
			ctx.DeleteBuffer(attr.buffer)
			attr.buffer = nil
		}
		attr.location = renderer.NoAttrib
	}
	if g.indexBuffer != nil {
		ctx.DeleteBuffer(g.indexBuffer)
		g.indexBuffer = nil
	}
}
