package scene

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

func (r *Renderable) initialized() bool {
	return r.Geometry.IsInitialized() || r.Material.IsInitialized()
}

func (r *Renderable) release(ctx renderer.Context) {
	r.Geometry.Destroy(ctx)
	r.Material.Destroy(ctx)
}

/**
 * @brief Appends one placeholder record per light in the graph. Run once
 * before Initialize so every light array slot gets a uniform location.
 */
func (g *Graph) SearchLight(lights *metadata.LightsUniform) {
	g.Walk(func(id NodeID) bool {
		if l := g.nodes[id].light; l != nil {
			l.appendTemplate(lights)
		}
		return true
	})
}

/**
 * @brief Compiles every material and uploads every geometry. defaults is
 * the full set of uniform names resolved on each program. On failure all
 * renderables initialized by this call are released again.
 */
func (g *Graph) Initialize(ctx renderer.Context, defaults map[string]metadata.UniformValue) error {
	var (
		done []*Renderable
		err  error
	)
	g.Walk(func(id NodeID) bool {
		r := g.nodes[id].renderable
		if r == nil {
			return true
		}
		if err = g.initializeRenderable(ctx, id, r, defaults); err != nil {
			return false
		}
		done = append(done, r)
		return true
	})
	if err != nil {
		for _, r := range done {
			r.release(ctx)
		}
		return err
	}
	return nil
}

func (g *Graph) initializeRenderable(ctx renderer.Context, id NodeID, r *Renderable, defaults map[string]metadata.UniformValue) error {
	if err := r.Material.Initialize(ctx, defaults); err != nil {
		return fmt.Errorf("entity %q: %w", g.nodes[id].name, err)
	}
	if err := r.Geometry.SetupAttributes(ctx, r.Material.Program()); err != nil {
		r.Material.Destroy(ctx)
		return fmt.Errorf("entity %q: %w", g.nodes[id].name, err)
	}
	return nil
}

/**
 * @brief Refreshes world matrices from the root down and appends the
 * frame's light records in the same order SearchLight produced.
 *
 * @param parent The matrix the root is placed under, usually identity.
 */
func (g *Graph) Prepare(parent math.Mat4, lights *metadata.LightsUniform) {
	g.prepare(Root, parent, lights)
}

func (g *Graph) prepare(id NodeID, parent math.Mat4, lights *metadata.LightsUniform) {
	n := &g.nodes[id]
	n.world = parent.Mul(n.transform.GetMatrix())
	if n.light != nil {
		n.light.appendPrepared(n.world, lights)
	}
	for _, child := range n.children {
		g.prepare(child, n.world, lights)
	}
}

/**
 * @brief Draws every renderable in traversal order. Each one uploads its
 * material values, then its own mMatrix and rMatrix, then the frame bag,
 * later sources winning per name.
 *
 * @return The number of draw calls issued.
 */
func (g *Graph) Render(ctx renderer.Context, options metadata.RenderOptions) (int, error) {
	draws := 0
	var err error
	g.Walk(func(id NodeID) bool {
		r := g.nodes[id].renderable
		if r == nil {
			return true
		}
		if !r.Material.IsInitialized() || !r.Geometry.IsInitialized() {
			err = fmt.Errorf("entity %q: %w", g.nodes[id].name, core.ErrNotInitialized)
			return false
		}
		world := g.nodes[id].world
		local := map[string]metadata.UniformValue{
			metadata.UniformModelMatrix:    metadata.Mat4Uniform(world),
			metadata.UniformRotationMatrix: metadata.Mat4Uniform(world.ScaleRotation()),
		}

		ctx.UseProgram(r.Material.Program())
		r.Material.SetUniforms(ctx, local, options.Uniforms)
		r.Geometry.BindAttributes(ctx)
		ctx.DrawElements(renderer.Triangles, r.Geometry.IndexCount(), renderer.UnsignedShort, 0)
		draws++
		return true
	})
	return draws, err
}

// Destroy releases the GPU resources of every renderable. The nodes stay
// and can be initialized again.
func (g *Graph) Destroy(ctx renderer.Context) {
	g.Walk(func(id NodeID) bool {
		if r := g.nodes[id].renderable; r != nil {
			r.release(ctx)
		}
		return true
	})
}

/**
 * @brief Rebuilds the program and uniform values of every material named
 * config.Name and re-resolves its geometry's attributes.
 *
 * @return The number of materials reloaded.
 */
func (g *Graph) ReloadMaterial(ctx renderer.Context, config metadata.ShaderConfig) (int, error) {
	name := config.Name
	reloaded := 0
	var err error
	g.Walk(func(id NodeID) bool {
		r := g.nodes[id].renderable
		if r == nil || r.Material.Name != name {
			return true
		}
		if err = r.Material.Reload(ctx, config); err != nil {
			return false
		}
		if r.Geometry.IsInitialized() {
			r.Geometry.ResolveLocations(ctx, r.Material.Program())
		}
		reloaded++
		return true
	})
	return reloaded, err
}
