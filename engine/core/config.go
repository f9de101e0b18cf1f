package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration, usually read from a TOML file:
//
//	name = "testbed"
//	log_level = "info"
//	clear_color = [0.0, 0.0, 0.0, 1.0]
//
//	[window]
//	width = 1280
//	height = 720
type Config struct {
	// The application name used in windowing, if applicable.
	Name     string   `toml:"name"`
	LogLevel LogLevel `toml:"log_level"`
	// Directory holding shader sources and material files.
	AssetsDir string `toml:"assets_dir"`
	// Render through the recording context instead of a real window.
	Headless   bool         `toml:"headless"`
	Frames     int          `toml:"frames"`
	ClearColor [4]float32   `toml:"clear_color"`
	ClearDepth float32      `toml:"clear_depth"`
	Window     WindowConfig `toml:"window"`
}

type WindowConfig struct {
	// Window starting position x axis, if applicable.
	X uint32 `toml:"x"`
	// Window starting position y axis, if applicable.
	Y uint32 `toml:"y"`
	// Window starting width, if applicable.
	Width uint32 `toml:"width"`
	// Window starting height, if applicable.
	Height uint32 `toml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "cgengine",
		LogLevel:   LogLevelInfo,
		AssetsDir:  "assets",
		ClearColor: [4]float32{0, 0, 0, 1},
		ClearDepth: 1.0,
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Window.Width == 0 || cfg.Window.Height == 0 {
		return nil, fmt.Errorf("window size must be > 0, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.ClearDepth < 0 || cfg.ClearDepth > 1 {
		return nil, fmt.Errorf("clear_depth must be within [0, 1], got %f", cfg.ClearDepth)
	}
	return cfg, nil
}
