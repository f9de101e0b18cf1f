/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/cgengine/engine"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/platform"
	"github.com/spaghettifunk/cgengine/engine/platform/headless"
	"github.com/spaghettifunk/cgengine/testbed"
)

func main() {
	configPath := flag.String("config", "config.toml", "application configuration file; empty uses the defaults")
	headlessMode := flag.Bool("headless", false, "render into the recording context instead of a window")
	frames := flag.Int("frames", 0, "stop after this many frames (0 runs until closed)")
	flag.Parse()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := core.LoadConfig(*configPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist):
			core.LogWarn("%s not found, using the default configuration", *configPath)
		default:
			core.LogFatal("failed to load %s: %s", *configPath, err)
		}
	}
	if *headlessMode {
		cfg.Headless = true
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}

	var p engine.Platform = platform.New()
	if cfg.Headless {
		p = headless.New(cfg.Frames)
	}

	tb := testbed.NewTestGame(engine.NewApplicationConfig(cfg))

	e, err := engine.New(tb.Game, p)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		e.Shutdown()
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the loop owns the graphics context, so only ask it to stop
	go func() {
		<-sigCh
		e.Stop()
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown failed: %s", err)
	}
	if runErr != nil {
		panic(runErr)
	}
	fps, frameTime := e.Metrics().Frame()
	core.LogInfo("exiting, last FPS %.1f (%.1fms)", fps, frameTime)
}
