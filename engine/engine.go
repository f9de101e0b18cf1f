package engine

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spaghettifunk/cgengine/engine/assets"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

/**
 * @brief A window (or stand-in) owning the graphics context.
 */
type Platform interface {
	/** @brief Opens the window and returns its current graphics context. */
	Startup(applicationName string, x, y, width, height uint32) (renderer.Context, error)
	FramebufferSize() (uint32, uint32)
	/** @brief Processes window events; false once the platform wants to quit. */
	PumpMessages() bool
	SwapBuffers()
	Shutdown() error
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     Platform
	context      renderer.Context
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
}

func New(g *Game, p Platform) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	if g.FnInitialize == nil {
		return nil, fmt.Errorf("game %q has no initialize function", g.ApplicationConfig.Name)
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine: %w", core.ErrAlreadyInitialized)
	}
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	if config.LogLevel != "" {
		core.SetLogLevel(config.LogLevel)
	}

	// initialize events
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	ctx, err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight)
	if err != nil {
		return err
	}
	e.context = ctx
	e.renderer = renderer.New(ctx, &renderer.RendererConfig{
		ClearColor: config.ClearColor,
		ClearDepth: config.ClearDepth,
	})

	if config.AssetsDir != "" {
		if _, err := os.Stat(config.AssetsDir); err != nil {
			core.LogWarn("assets directory unavailable, hot reload disabled: %s", err)
		} else {
			am, err := assets.NewAssetManager()
			if err != nil {
				return err
			}
			if err := am.Initialize(config.AssetsDir); err != nil {
				am.Close()
				return err
			}
			e.assetManager = am
		}
	}

	if err := e.gameInstance.FnInitialize(ctx, e.assetManager); err != nil {
		core.LogError("game initialization failed: %s", err)
		return err
	}
	if e.gameInstance.Scene == nil || e.gameInstance.Camera == nil {
		return fmt.Errorf("game %q did not set a scene and a camera", config.Name)
	}
	if err := e.renderer.AddEntities(e.gameInstance.Scene); err != nil {
		return err
	}

	w, h := e.platform.FramebufferSize()
	e.resize(w, h)

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine: %w", core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if e.assetManager != nil {
			e.reloadAssets()
		}

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		if err := e.renderer.Render(e.gameInstance.Camera); err != nil {
			core.LogError("render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}
		e.platform.SwapBuffers()

		e.clock.Update()
		e.metrics.Update(e.clock.Elapsed()-currentTime, e.renderer.Stats().DrawCalls)
		e.lastTime = currentTime
	}
	return nil
}

// Stop asks the frame loop to exit after the current frame. Safe to call
// from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageUninitialized {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if e.renderer != nil {
		e.renderer.Detach()
	}
	if e.assetManager != nil {
		if err := e.assetManager.Close(); err != nil {
			core.LogError("failed to close asset manager: %s", err)
		}
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageShutdown
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// reloadAssets recompiles every material touched on disk since the last
// frame. A material that fails to build keeps its previous program.
func (e *Engine) reloadAssets() {
	for _, change := range e.assetManager.PollChanges() {
		if change.Removed() {
			core.LogWarn("%s %s was removed, keeping the loaded version", change.Type, change.Path)
			continue
		}
		for _, name := range change.Materials {
			md, err := e.assetManager.LoadMaterial(name)
			if err != nil {
				core.LogError("failed to reload material %s: %s", name, err)
				continue
			}
			n, err := e.gameInstance.Scene.ReloadMaterial(e.context, md.Config)
			if err != nil {
				core.LogError("failed to reload material %s: %s", name, err)
				continue
			}
			core.LogInfo("reloaded material %s on %d entities", md.Config.Name, n)

			data := core.EventContext{}
			data.Data.C[0] = md.Config.Name
			data.Data.I32[0] = int32(n)
			core.EventFire(core.EVENT_CODE_MATERIAL_RELOADED, e, data)
		}
	}
}

func (e *Engine) resize(width, height uint32) {
	e.width = width
	e.height = height
	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	e.renderer.Resize(int32(width), int32(height))
	e.gameInstance.Camera.SetAspect(float32(width) / float32(height))
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	switch core.KeyCode(data.Data.U16[0]) {
	case core.KEY_ESCAPE:
		// Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		return true
	case core.KEY_P:
		fps, frameTime := e.metrics.Frame()
		stats := e.renderer.Stats()
		core.LogInfo("FPS: %5.1f (%4.1fms) draws=%d lights=%v", fps, frameTime, stats.DrawCalls, stats.Lights)
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	width, height := data.Data.U32[0], data.Data.U32[1]
	// Check if different. If so, trigger a resize event.
	if width != e.width || height != e.height {
		core.LogDebug("window resize: %d, %d", width, height)
		e.resize(width, height)
	}
	return false
}
