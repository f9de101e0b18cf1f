package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spaghettifunk/cgengine/engine/assets"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/platform/headless"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/components"
	"github.com/spaghettifunk/cgengine/engine/renderer/recorder"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/spaghettifunk/cgengine/engine/scene"
	"github.com/spaghettifunk/cgengine/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redMaterial = `
vertex = "builtin:basic"
fragment = "flat.frag"

[[uniforms]]
name = "mainColor"
type = "color"
values = [1.0, 0.0, 0.0, 1.0]
`

const flatFragment = `precision mediump float;
uniform vec4 mainColor;
void main(void) { gl_FragColor = mainColor; }
`

func newTestGame(t *testing.T, assetsDir string) *Game {
	t.Helper()
	g := &Game{
		ApplicationConfig: &ApplicationConfig{
			StartWidth:  640,
			StartHeight: 480,
			Name:        "engine test",
			AssetsDir:   assetsDir,
			ClearColor:  math.NewColorBlack(),
			ClearDepth:  1.0,
		},
	}
	var updates int
	g.State = &updates
	g.FnInitialize = func(ctx renderer.Context, am *assets.AssetManager) error {
		require.NotNil(t, am)
		md, err := am.LoadMaterial("red")
		if err != nil {
			return err
		}
		mat, err := resources.NewMaterialFromConfig(md.Config)
		if err != nil {
			return err
		}
		geo, err := systems.GenerateGeometry("cube")
		if err != nil {
			return err
		}
		graph := scene.NewGraph()
		if _, err := graph.AddEntity(scene.Root, "cube", geo, mat); err != nil {
			return err
		}
		if _, err := graph.AddDirectional(scene.Root, math.NewColorRGB(1, 1, 1)); err != nil {
			return err
		}
		g.Scene = graph
		g.Camera = components.NewPerspectiveCamera(math.K_HALF_PI, 1, 0.1, 100)
		g.Camera.Transform.SetPosition(math.NewVec3(0, 0, 3))
		return nil
	}
	g.FnUpdate = func(deltaTime float64) error {
		updates++
		return nil
	}
	return g
}

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "red.toml"), []byte(redMaterial), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.frag"), []byte(flatFragment), 0o644))
	return dir
}

func TestEngineHeadlessRun(t *testing.T) {
	g := newTestGame(t, writeAssets(t))
	p := headless.New(3)

	e, err := New(g, p)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.Equal(t, 1, p.Context.Count("Viewport"))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, *g.State.(*int))
	assert.Len(t, p.Context.Draws, 3)
	assert.Equal(t, 1, e.Metrics().DrawCalls)
	assert.Equal(t, [4]int{1, 0, 0, 0}, e.Renderer().Stats().Lights)

	last := p.Context.Draws[2]
	assert.Equal(t, []float32{1, 0, 0, 1}, last.Uniforms["mainColor"].Values)

	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.Zero(t, p.Context.LiveBuffers())
	assert.Zero(t, p.Context.LivePrograms())
	assert.NoError(t, e.Shutdown())
}

func TestEngineHotReload(t *testing.T) {
	dir := writeAssets(t)
	g := newTestGame(t, dir)
	p := headless.New(1)

	e, err := New(g, p)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { e.Shutdown() })

	var reloaded string
	core.EventRegister(core.EVENT_CODE_MATERIAL_RELOADED, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		reloaded = data.Data.C[0]
		return true
	})

	edited := flatFragment + "// edited\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.frag"), []byte(edited), 0o644))

	require.Eventually(t, func() bool {
		e.reloadAssets()
		return reloaded == "red"
	}, 5*time.Second, 20*time.Millisecond)

	id, ok := g.Scene.Find("cube")
	require.True(t, ok)
	program := g.Scene.Renderable(id).Material.Program().(*recorder.Program)
	assert.Equal(t, edited, program.FragmentSource)
	assert.Equal(t, 1, p.Context.LivePrograms())
}

func TestEngineHotReloadUniformValues(t *testing.T) {
	dir := writeAssets(t)
	g := newTestGame(t, dir)
	p := headless.New(1)

	e, err := New(g, p)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { e.Shutdown() })

	var reloaded string
	core.EventRegister(core.EVENT_CODE_MATERIAL_RELOADED, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		reloaded = data.Data.C[0]
		return true
	})

	green := strings.Replace(redMaterial, "[1.0, 0.0, 0.0, 1.0]", "[0.0, 1.0, 0.0, 1.0]", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "red.toml"), []byte(green), 0o644))

	require.Eventually(t, func() bool {
		e.reloadAssets()
		return reloaded == "red"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, e.Run())
	require.Len(t, p.Context.Draws, 1)
	assert.Equal(t, []float32{0, 1, 0, 1}, p.Context.Draws[0].Uniforms["mainColor"].Values)
	// the light names resolved at attach time are still uploaded
	assert.Contains(t, p.Context.Draws[0].Uniforms, "uDirectionalNum")
}

func TestEngineQuitEvent(t *testing.T) {
	g := newTestGame(t, writeAssets(t))
	p := headless.New(0)

	e, err := New(g, p)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { e.Shutdown() })

	g.FnUpdate = func(deltaTime float64) error {
		data := core.EventContext{}
		data.Data.U16[0] = uint16(core.KEY_ESCAPE)
		core.EventFire(core.EVENT_CODE_KEY_PRESSED, nil, data)
		return nil
	}
	require.NoError(t, e.Run())
	assert.Len(t, p.Context.Draws, 1)
}

func TestEngineResize(t *testing.T) {
	g := newTestGame(t, writeAssets(t))
	p := headless.New(1)

	e, err := New(g, p)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { e.Shutdown() })

	data := core.EventContext{}
	data.Data.U32[0], data.Data.U32[1] = 800, 400
	core.EventFire(core.EVENT_CODE_RESIZED, nil, data)

	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(400), h)
	assert.Equal(t, 2, p.Context.Count("Viewport"))

	data.Data.U32[0], data.Data.U32[1] = 0, 0
	core.EventFire(core.EVENT_CODE_RESIZED, nil, data)
	assert.True(t, e.isSuspended)
}

func TestEngineRunBeforeInitialize(t *testing.T) {
	e, err := New(newTestGame(t, ""), headless.New(1))
	require.NoError(t, err)
	assert.ErrorIs(t, e.Run(), core.ErrNotInitialized)

	_, err = New(&Game{ApplicationConfig: &ApplicationConfig{}}, headless.New(1))
	assert.Error(t, err)
}
