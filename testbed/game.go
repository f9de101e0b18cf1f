package testbed

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine"
	"github.com/spaghettifunk/cgengine/engine/assets"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/components"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/spaghettifunk/cgengine/engine/scene"
	"github.com/spaghettifunk/cgengine/engine/shaders"
	"github.com/spaghettifunk/cgengine/engine/systems"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	// frames drawn, drives the orbit animation
	count   float32
	paused  bool
	objects scene.NodeID
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown

	return tg
}

func physical(name string, brdf string, uniforms map[string]metadata.UniformValue) *resources.Material {
	return resources.NewMaterial(name, shaders.BasicVertex, shaders.PhysicalFragment(brdf), uniforms)
}

// material loads name from the assets directory, falling back to fallback
// when the file is missing or broken.
func material(am *assets.AssetManager, name string, fallback *resources.Material) *resources.Material {
	if am == nil {
		return fallback
	}
	md, err := am.LoadMaterial(name)
	if err != nil {
		core.LogWarn("using builtin %s material: %s", name, err)
		return fallback
	}
	m, err := resources.NewMaterialFromConfig(md.Config)
	if err != nil {
		core.LogWarn("using builtin %s material: %s", name, err)
		return fallback
	}
	return m
}

func (g *TestGame) Initialize(ctx renderer.Context, am *assets.AssetManager) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)
	graph := scene.NewGraph()

	floorGeometry, err := systems.GeneratePlaneConfig(1, 1, 1, 1, 1, 1, "floor")
	if err != nil {
		return err
	}
	floorGeo, err := resources.NewGeometry(*floorGeometry)
	if err != nil {
		return err
	}
	floorMat := material(am, "floor", physical("floor",
		shaders.Compose(shaders.DiffuseNormalizedLambert, shaders.SpecularKajiyaKay),
		map[string]metadata.UniformValue{
			shaders.Albedo:     metadata.Vec4Uniform(math.NewVec4(1, 1, 1, 1)),
			shaders.Metallic:   metadata.FloatUniform(0.9),
			shaders.RoughnessX: metadata.FloatUniform(1.0),
			shaders.RoughnessY: metadata.FloatUniform(0.5),
		}))
	floor, err := graph.AddEntity(scene.Root, "floor", floorGeo, floorMat)
	if err != nil {
		return err
	}
	graph.Transform(floor).SetPosition(math.NewVec3(0, -3, 0))
	graph.Transform(floor).SetScale(math.NewVec3(10, 10, 10))

	state.objects, err = graph.AddEmpty(scene.Root, "objects")
	if err != nil {
		return err
	}

	configs, err := systems.GenerateConfigs(
		func() (*resources.GeometryConfig, error) {
			return systems.GenerateCubeConfig(1, 1, 1, 1, 1, "cube")
		},
		func() (*resources.GeometryConfig, error) {
			return systems.GenerateTorusConfig(0.5, 0.2, 50, 50, "torus")
		},
		func() (*resources.GeometryConfig, error) {
			return systems.GenerateSphereConfig(0.5, 50, 50, "sphere")
		},
	)
	if err != nil {
		return err
	}

	objects := []struct {
		config   *resources.GeometryConfig
		albedo   math.Vec4
		rough    float32
		position math.Vec3
	}{
		{configs[0], math.NewVec4(1, 0, 0, 1), 0.4, math.NewVec3(0, 0, 0)},
		{configs[1], math.NewVec4(0, 1, 0, 1), 0.4, math.NewVec3(1, 0, 1)},
		{configs[2], math.NewVec4(1, 1, 1, 1), 0.5, math.NewVec3(-1, -1, 1)},
	}
	for _, o := range objects {
		geo, err := resources.NewGeometry(*o.config)
		if err != nil {
			return err
		}
		mat := material(am, o.config.Name, physical(o.config.Name, shaders.CookTorrance, map[string]metadata.UniformValue{
			shaders.Albedo:    metadata.Vec4Uniform(o.albedo),
			shaders.Metallic:  metadata.FloatUniform(0.5),
			shaders.Roughness: metadata.FloatUniform(o.rough),
		}))
		id, err := graph.AddEntity(state.objects, o.config.Name, geo, mat)
		if err != nil {
			return err
		}
		graph.Transform(id).SetPosition(o.position)
	}

	directional, err := graph.AddDirectional(scene.Root, math.NewColor(0.1, 0.1, 0.1, 1))
	if err != nil {
		return err
	}
	graph.Transform(directional).SetRotation(math.NewQuatEuler(math.NewVec3(0, 0, -math.K_PI*0.15)))

	point, err := graph.AddPoint(scene.Root, math.NewColor(1, 1, 1, 1), 10, 2)
	if err != nil {
		return err
	}
	graph.Transform(point).SetPosition(math.NewVec3(1, 1, 0))

	spot, err := graph.AddSpot(scene.Root, math.NewColor(1, 1, 1, 1), math.K_PI*0.1, math.K_PI*0.05, 30, 1)
	if err != nil {
		return err
	}
	graph.Transform(spot).SetPosition(math.NewVec3(4, 3, 4))
	if err := graph.Transform(spot).LookAt(math.NewVec3(0, -3, 0)); err != nil {
		return err
	}

	if _, err := graph.AddAmbient(scene.Root, math.NewColorRGB(0.05, 0.05, 0.05)); err != nil {
		return err
	}

	config := g.ApplicationConfig
	g.Scene = graph
	g.Camera = components.NewPerspectiveCamera(math.K_HALF_PI, float32(config.StartWidth)/float32(config.StartHeight), 0.01, 1000)
	g.orbit()

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	core.EventRegister(core.EVENT_CODE_MATERIAL_RELOADED, g, g.onMaterialReloaded)
	return nil
}

// orbit circles the camera around the origin, looking at it.
func (g *TestGame) orbit() {
	state := g.State.(*gameState)
	t := state.count / 100
	g.Camera.Transform.SetPosition(math.NewVec3(math32.Cos(t)*5, 3, math32.Sin(t)*5))
	if err := g.Camera.LookAt(math.NewVec3(0, 0, 0)); err != nil {
		core.LogWarn("camera look at failed: %s", err)
	}
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	if state.paused {
		return nil
	}
	state.count++

	t := state.count / 100
	g.Scene.Transform(state.objects).SetRotation(math.NewQuatEuler(math.NewVec3(t*0.3, t*0.17, t*0.23)))
	g.orbit()
	return nil
}

func (g *TestGame) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, g)
	core.EventUnregister(core.EVENT_CODE_MATERIAL_RELOADED, g)
	return nil
}

func (g *TestGame) onKey(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	if core.KeyCode(data.Data.U16[0]) == core.KEY_SPACE {
		state := g.State.(*gameState)
		state.paused = !state.paused
		core.LogDebug("animation paused: %t", state.paused)
		return true
	}
	return false
}

func (g *TestGame) onMaterialReloaded(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	core.LogInfo("material %s reloaded (%d entities)", data.Data.C[0], data.Data.I32[0])
	return false
}
