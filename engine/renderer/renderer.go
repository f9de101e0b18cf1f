package renderer

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/components"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

/**
 * @brief The traversals the renderer drives over a scene graph. SearchLight
 * and Prepare must append light records in the same order.
 */
type Scene interface {
	SearchLight(lights *metadata.LightsUniform)
	Initialize(ctx Context, defaults map[string]metadata.UniformValue) error
	Prepare(parent math.Mat4, lights *metadata.LightsUniform)
	Render(ctx Context, options metadata.RenderOptions) (int, error)
	Destroy(ctx Context)
}

// Camera supplies the view, projection and eye position of a frame.
type Camera interface {
	GetMatrix() (components.CameraMatrices, error)
}

type RendererConfig struct {
	ClearColor math.Color
	ClearDepth float32
}

// DefaultRendererConfig clears to opaque black and the far plane.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		ClearColor: math.NewColorBlack(),
		ClearDepth: 1.0,
	}
}

/** @brief What the last frame did. */
type FrameStats struct {
	Frames    uint64
	DrawCalls int
	/** @brief Directional, point, spot and ambient light counts. */
	Lights [4]int
}

/**
 * @brief Draws one scene under a camera. Unattached until AddEntities
 * succeeds; Detach returns it to unattached.
 */
type Renderer struct {
	ctx    Context
	config RendererConfig
	scene  Scene
	stats  FrameStats
}

/**
 * @brief Creates a renderer over a graphics context.
 *
 * @param ctx The graphics context every call goes through.
 * @param config Clear values; nil selects DefaultRendererConfig.
 */
func New(ctx Context, config *RendererConfig) *Renderer {
	cfg := DefaultRendererConfig()
	if config != nil {
		cfg = *config
	}
	return &Renderer{
		ctx:    ctx,
		config: cfg,
	}
}

func (r *Renderer) IsAttached() bool {
	return r.scene != nil
}

func (r *Renderer) Stats() FrameStats {
	return r.stats
}

/**
 * @brief Attaches a scene. Collects the light template once, resolves every
 * uniform name it produces plus the per-entity and camera names on each
 * program, and uploads all geometry. On error the renderer stays as it was
 * and nothing of the new scene remains on the GPU.
 */
func (r *Renderer) AddEntities(scene Scene) error {
	lights := metadata.NewLightsUniform()
	scene.SearchLight(lights)

	names, err := metadata.Flatten(lights.Struct(true))
	if err != nil {
		return fmt.Errorf("light template: %w", err)
	}
	defaults := metadata.Merge(names, metadata.DefaultUniformNames())

	if err := scene.Initialize(r.ctx, defaults); err != nil {
		core.LogError("failed to initialize scene: %s", err)
		return err
	}
	if r.scene != nil {
		r.Detach()
	}
	r.scene = scene
	core.LogDebug("scene attached with %d uniform names and lights %v", len(defaults), lights.Counts())
	return nil
}

// Detach releases the attached scene's GPU resources.
func (r *Renderer) Detach() {
	if r.scene == nil {
		return
	}
	r.scene.Destroy(r.ctx)
	r.scene = nil
}

// Resize points the viewport at the whole surface.
func (r *Renderer) Resize(width, height int32) {
	r.ctx.Viewport(0, 0, width, height)
}

/**
 * @brief Renders one frame: clears, prepares the scene, flattens this
 * frame's lights and hands them with the camera matrices to every entity.
 * Without an attached scene it logs and returns core.ErrNotAttached
 * without touching the context.
 */
func (r *Renderer) Render(camera Camera) error {
	if r.scene == nil {
		core.LogError("render called before a scene was attached")
		return core.ErrNotAttached
	}
	matrices, err := camera.GetMatrix()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	c := r.config.ClearColor
	r.ctx.Enable(DepthTest)
	r.ctx.DepthFunc(LessEqual)
	r.ctx.Enable(CullFace)
	r.ctx.ClearColor(c.R, c.G, c.B, c.A)
	r.ctx.ClearDepth(r.config.ClearDepth)
	r.ctx.Clear(ColorBufferBit | DepthBufferBit)

	lights := metadata.NewLightsUniform()
	r.scene.Prepare(math.NewMat4Identity(), lights)

	bag, err := metadata.Flatten(lights.Struct(true))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	bag[metadata.UniformViewMatrix] = metadata.Mat4Uniform(matrices.View)
	bag[metadata.UniformProjectionMatrix] = metadata.Mat4Uniform(matrices.Projection)
	bag[metadata.UniformCameraPosition] = metadata.Vec3Uniform(matrices.Eye)

	draws, err := r.scene.Render(r.ctx, metadata.RenderOptions{Uniforms: bag})
	r.stats = FrameStats{
		Frames:    r.stats.Frames + 1,
		DrawCalls: draws,
		Lights:    lights.Counts(),
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
