package engine

import (
	"github.com/spaghettifunk/cgengine/engine/assets"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/components"
	"github.com/spaghettifunk/cgengine/engine/scene"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	// Scene and Camera are set by FnInitialize; the engine draws Scene
	// through Camera every frame.
	Scene        *scene.Graph
	Camera       *components.Camera
	FnInitialize Initialize
	FnUpdate     Update
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

// Initialize builds the scene. assets is nil when hot reload is disabled.
type Initialize func(ctx renderer.Context, assets *assets.AssetManager) error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
