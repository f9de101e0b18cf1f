package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
	"github.com/spaghettifunk/cgengine/engine/renderer/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-5

func newLights() *metadata.LightsUniform {
	return metadata.NewLightsUniform()
}

// buildLightTree nests 2 directional, 1 point, 3 spot and 1 ambient lights
// at varying depths.
func buildLightTree(t *testing.T) *Graph {
	t.Helper()
	white := math.NewColorRGB(1, 1, 1)
	g := NewGraph()

	arm, err := g.AddEmpty(Root, "arm")
	require.NoError(t, err)
	d1, _ := g.AddDirectional(Root, math.NewColorRGB(1, 0, 0))
	_, _ = g.AddSpot(d1, white, 0.5, 0.4, 10, 1)
	_, _ = g.AddPoint(arm, white, 5, 2)
	s2, _ := g.AddSpot(arm, white, 0.6, 0.5, 20, 1)
	_, _ = g.AddSpot(s2, white, 0.7, 0.6, 30, 1)
	_, _ = g.AddAmbient(s2, math.NewColor(0.1, 0.1, 0.1, 1))
	_, _ = g.AddDirectional(arm, math.NewColorRGB(0, 0, 1))
	return g
}

func TestLightCountsMatchAcrossPasses(t *testing.T) {
	g := buildLightTree(t)

	search := newLights()
	g.SearchLight(search)
	assert.Equal(t, [4]int{2, 1, 3, 1}, search.Counts())

	arm, _ := g.Find("arm")
	for frame := 0; frame < 3; frame++ {
		g.Transform(arm).Translate(math.NewVec3(1, 0, 0))
		g.Transform(arm).Rotate(math.NewQuatAngleAxis(0.3, math.NewVec3(0, 1, 0)))

		prepared := newLights()
		g.Prepare(math.NewMat4Identity(), prepared)
		assert.Equal(t, search.Counts(), prepared.Counts())
		assert.Len(t, prepared.Spot, len(search.Spot))
		for i := range search.Spot {
			// slots line up by the distance each spot was configured with
			assert.Equal(t, search.Spot[i].Distance, prepared.Spot[i].Distance)
		}
		// arm was added before the red light, so its blue light comes first
		assert.Equal(t, math.NewColorRGB(0, 0, 1), prepared.Directional[0].Color)
		assert.Equal(t, math.NewColorRGB(1, 0, 0), prepared.Directional[1].Color)
	}

	keys, err := metadata.Flatten(search.Struct(true))
	require.NoError(t, err)
	assert.Contains(t, keys, "uSpotLight[2].penumbraCos")
	assert.Contains(t, keys, "uAmbientLight[0].color")
	assert.NotContains(t, keys, "uPointLight[1].pos")
	assert.Equal(t, int32(3), keys[metadata.UniformSpotNum].Int)
}

func TestLightTemplates(t *testing.T) {
	g := NewGraph()
	red := math.NewColorRGB(1, 0, 0)
	_, _ = g.AddDirectional(Root, red)
	_, _ = g.AddPoint(Root, red, 4, 2)
	_, _ = g.AddSpot(Root, red, math.K_QUARTER_PI, 0, 8, 1)
	_, _ = g.AddAmbient(Root, red)

	l := newLights()
	g.SearchLight(l)

	white := math.NewColorRGB(1, 1, 1)
	assert.Equal(t, math.NewVec3(0, 1, 0), l.Directional[0].Dir)
	assert.Equal(t, white, l.Directional[0].Color)
	assert.Equal(t, metadata.PointLightRecord{Pos: math.NewVec3Zero(), Color: red, Distance: 4, Decay: 2}, l.Point[0])
	assert.Equal(t, math.NewVec3(0, -1, 0), l.Spot[0].Dir)
	assert.Equal(t, red, l.Spot[0].Color)
	assert.InDelta(t, math32.Sqrt(2)/2, l.Spot[0].ConeCos, standardTol)
	assert.Equal(t, float32(1), l.Spot[0].PenumbraCos)
	assert.Equal(t, white, l.Ambient[0].Color)
}

func TestLightPreparedValues(t *testing.T) {
	g := NewGraph()
	red := math.NewColorRGB(1, 0, 0)
	parent, _ := g.AddEmpty(Root, "parent")
	g.Transform(parent).SetPosition(math.NewVec3(0, 2, 0))
	g.Transform(parent).SetScale(math.NewVec3(2, 2, 2))

	d, _ := g.AddDirectional(parent, red)
	p, _ := g.AddPoint(parent, red, 4, 2)
	s, _ := g.AddSpot(parent, red, 0.5, 0.4, 8, 1)
	_, _ = g.AddAmbient(parent, red)

	// pointing down
	down := math.NewQuatAngleAxis(-math.K_HALF_PI, math.NewVec3(1, 0, 0))
	g.Transform(d).SetRotation(down)
	g.Transform(s).SetRotation(down)
	g.Transform(p).SetPosition(math.NewVec3(1, 0, 0))
	g.Transform(s).SetPosition(math.NewVec3(0, 0, 1))

	l := newLights()
	g.Prepare(math.NewMat4Identity(), l)

	assert.True(t, l.Directional[0].Dir.Compare(math.NewVec3(0, -1, 0), standardTol), "%v", l.Directional[0].Dir)
	assert.Equal(t, red, l.Directional[0].Color)
	assert.True(t, l.Point[0].Pos.Compare(math.NewVec3(2, 2, 0), standardTol), "%v", l.Point[0].Pos)
	assert.True(t, l.Spot[0].Pos.Compare(math.NewVec3(0, 2, 2), standardTol), "%v", l.Spot[0].Pos)
	// the spot direction keeps the parent's scale
	assert.True(t, l.Spot[0].Dir.Compare(math.NewVec3(0, -2, 0), standardTol), "%v", l.Spot[0].Dir)
	assert.Equal(t, red, l.Ambient[0].Color)

	assert.True(t, g.World(p).Translation().Compare(math.NewVec3(2, 2, 0), standardTol))
}

func TestRenderDrawsInTraversalOrder(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	a := addEntity(t, g, Root, "a")
	group, _ := g.AddEmpty(Root, "group")
	addEntity(t, g, a, "a.child")
	addEntity(t, g, group, "group.child")
	addEntity(t, g, Root, "last")

	_, err := g.Render(ctx, metadata.RenderOptions{})
	assert.ErrorIs(t, err, core.ErrNotInitialized)
	assert.Zero(t, ctx.Count("DrawElements"))

	require.NoError(t, g.Initialize(ctx, metadata.DefaultUniformNames()))
	assert.ErrorIs(t, g.Initialize(ctx, metadata.DefaultUniformNames()), core.ErrAlreadyInitialized)

	g.Transform(a).SetPosition(math.NewVec3(0, 0, -5))
	for frame := 0; frame < 2; frame++ {
		ctx.Reset()
		g.Prepare(math.NewMat4Identity(), newLights())
		n, err := g.Render(ctx, metadata.RenderOptions{Uniforms: map[string]metadata.UniformValue{
			metadata.UniformViewMatrix: metadata.Mat4Uniform(math.NewMat4Identity()),
		}})
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		require.Len(t, ctx.Draws, 4)

		for _, d := range ctx.Draws {
			assert.Equal(t, int32(3), d.Count)
			assert.Contains(t, d.Uniforms, metadata.UniformViewMatrix)
		}
	}

	// the child of a inherits its translation
	child := ctx.Draws[1].Uniforms[metadata.UniformModelMatrix].Values
	assert.Equal(t, float32(-5), child[14])
	rotation := ctx.Draws[1].Uniforms[metadata.UniformRotationMatrix].Values
	assert.Equal(t, float32(0), rotation[14])
}

func TestRenderOrderFollowsMaterials(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	names := []string{"first", "second", "third"}
	ids := make([]NodeID, len(names))
	for i, name := range names {
		ids[i] = addEntity(t, g, Root, name)
	}
	require.NoError(t, g.Initialize(ctx, nil))
	g.Prepare(math.NewMat4Identity(), newLights())
	_, err := g.Render(ctx, metadata.RenderOptions{})
	require.NoError(t, err)

	for i, id := range ids {
		assert.Same(t, g.Renderable(id).Material.Program(), ctx.Draws[i].Program, names[i])
	}
}

func TestFrameBagOverridesLocalUniforms(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	addEntity(t, g, Root, "e")
	require.NoError(t, g.Initialize(ctx, metadata.DefaultUniformNames()))
	g.Prepare(math.NewMat4Identity(), newLights())

	override := math.NewMat4Translation(math.NewVec3(9, 9, 9))
	_, err := g.Render(ctx, metadata.RenderOptions{Uniforms: map[string]metadata.UniformValue{
		metadata.UniformModelMatrix: metadata.Mat4Uniform(override),
	}})
	require.NoError(t, err)
	assert.Equal(t, override.Array(), ctx.Draws[0].Uniforms[metadata.UniformModelMatrix].Values)
}

func TestInitializeRollsBackOnFailure(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	first := addEntity(t, g, Root, "first")
	second := addEntity(t, g, Root, "second")

	// a geometry already uploaded elsewhere refuses a second setup
	other, err := ctx.CreateProgram("vs", "fs")
	require.NoError(t, err)
	require.NoError(t, g.Renderable(second).Geometry.SetupAttributes(ctx, other))

	err = g.Initialize(ctx, nil)
	assert.ErrorIs(t, err, core.ErrAlreadyInitialized)
	assert.False(t, g.Renderable(first).Material.IsInitialized())
	assert.False(t, g.Renderable(first).Geometry.IsInitialized())
	assert.False(t, g.Renderable(second).Material.IsInitialized())
	// only the foreign program and geometry remain
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.Equal(t, 4, ctx.LiveBuffers())
}

func TestInitializeCompileFailure(t *testing.T) {
	ctx := recorder.New()
	ctx.FailCompile = true
	g := NewGraph()
	addEntity(t, g, Root, "broken")

	err := g.Initialize(ctx, nil)
	assert.ErrorIs(t, err, core.ErrShaderCompile)
	assert.Contains(t, err.Error(), `entity "broken"`)
	assert.Zero(t, ctx.LiveBuffers())
}

func TestDestroyAndReload(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	e := addEntity(t, g, Root, "shared")
	addEntity(t, g, Root, "other")
	require.NoError(t, g.Initialize(ctx, nil))

	n, err := g.ReloadMaterial(ctx, metadata.ShaderConfig{Name: "shared", VertexSource: "vs2", FragmentSource: "fs2"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "fs2", g.Renderable(e).Material.Program().(*recorder.Program).FragmentSource)
	assert.Equal(t, 2, ctx.LivePrograms())

	g.Destroy(ctx)
	assert.Zero(t, ctx.LivePrograms())
	assert.Zero(t, ctx.LiveBuffers())

	require.NoError(t, g.Initialize(ctx, nil))
	assert.Equal(t, 2, ctx.LivePrograms())
}
