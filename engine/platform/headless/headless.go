// Package headless is a windowless platform that renders into a recorder.
package headless

import (
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/recorder"
)

// Platform renders into a recorder.Context. It stops after Frames frames
// when Frames is positive.
type Platform struct {
	Frames  int
	Context *recorder.Context

	width  uint32
	height uint32
	pumped int
}

func New(frames int) *Platform {
	return &Platform{Frames: frames}
}

func (h *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) (renderer.Context, error) {
	h.Context = recorder.New()
	h.width, h.height = width, height
	core.LogInfo("%s running headless (%dx%d)", applicationName, width, height)
	return h.Context, nil
}

func (h *Platform) FramebufferSize() (uint32, uint32) {
	return h.width, h.height
}

func (h *Platform) PumpMessages() bool {
	if h.Frames > 0 && h.pumped >= h.Frames {
		return false
	}
	h.pumped++
	return true
}

func (h *Platform) SwapBuffers() {}

func (h *Platform) Shutdown() error {
	return nil
}
