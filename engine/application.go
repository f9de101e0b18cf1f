package engine

import (
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Directory watched for materials; empty disables hot reload.
	AssetsDir  string
	ClearColor math.Color
	ClearDepth float32
}

// NewApplicationConfig maps the file configuration onto the engine's.
func NewApplicationConfig(cfg *core.Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Window.X,
		StartPosY:   cfg.Window.Y,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Name,
		LogLevel:    cfg.LogLevel,
		AssetsDir:   cfg.AssetsDir,
		ClearColor:  math.NewColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3]),
		ClearDepth:  cfg.ClearDepth,
	}
}
