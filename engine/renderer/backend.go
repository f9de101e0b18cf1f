package renderer

import "github.com/spaghettifunk/cgengine/engine/renderer/metadata"

// Buffer is a backend vertex or index buffer object. nil is never a valid
// buffer.
type Buffer any

// Program is a backend linked shader program. nil is never a valid
// program.
type Program any

// AttribLocation is a vertex attribute slot; NoAttrib when the program does
// not use the attribute.
type AttribLocation int32

const NoAttrib AttribLocation = -1

type BufferTarget uint32

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type Capability uint32

const (
	DepthTest Capability = iota
	CullFace
)

type DepthFunction uint32

const (
	Less DepthFunction = iota
	LessEqual
	Always
)

type ClearMask uint32

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

type DrawMode uint32

const (
	Triangles DrawMode = iota
	Lines
)

type IndexType uint32

const (
	UnsignedShort IndexType = iota
)

/**
 * @brief The WebGL-style graphics context every backend implements. All
 * calls happen on the thread that owns the context.
 */
type Context interface {
	metadata.UniformUploader

	/** @brief Creates a buffer object. Returns nil on failure. */
	CreateBuffer() Buffer
	DeleteBuffer(buffer Buffer)
	/** @brief Binds buffer to target; nil unbinds. */
	BindBuffer(target BufferTarget, buffer Buffer)
	/** @brief Uploads static float data to the buffer bound to target. */
	BufferDataFloat32(target BufferTarget, data []float32)
	/** @brief Uploads static 16 bit index data to the buffer bound to target. */
	BufferDataUint16(target BufferTarget, data []uint16)

	/**
	 * @brief Compiles both stages and links them. The error wraps
	 * core.ErrShaderCompile or core.ErrProgramLink and embeds the driver log.
	 */
	CreateProgram(vertexSource, fragmentSource string) (Program, error)
	DeleteProgram(program Program)
	UseProgram(program Program)
	GetAttribLocation(program Program, name string) AttribLocation
	/** @brief Returns nil when the program does not use name. */
	GetUniformLocation(program Program, name string) metadata.UniformLocation

	EnableVertexAttribArray(location AttribLocation)
	/** @brief Points location at the float buffer bound to ArrayBuffer. */
	VertexAttribPointer(location AttribLocation, size int32, normalized bool)
	DrawElements(mode DrawMode, count int32, typ IndexType, offset int)

	Enable(capability Capability)
	DepthFunc(fn DepthFunction)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
}
