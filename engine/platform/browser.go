//go:build js && wasm

package platform

import (
	"syscall/js"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/webgl"
)

// CanvasSelector locates the canvas the WebGL context is created on.
const CanvasSelector = "#glcanvas"

// Platform drives the frame loop from requestAnimationFrame on a page
// canvas.
type Platform struct {
	ctx     *webgl.Context
	frames  chan struct{}
	onFrame js.Func
	onKey   js.Func
	closed  bool
}

func New() *Platform {
	return &Platform{frames: make(chan struct{}, 1)}
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) (renderer.Context, error) {
	ctx, err := webgl.NewFromCanvas(CanvasSelector)
	if err != nil {
		return nil, err
	}
	p.ctx = ctx
	js.Global().Get("document").Set("title", applicationName)

	p.onFrame = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case p.frames <- struct{}{}:
		default:
		}
		return nil
	})
	p.onKey = js.FuncOf(func(this js.Value, args []js.Value) any {
		code := keyCode(args[0].Get("key").String())
		if code == core.KEY_UNKNOWN {
			return nil
		}
		data := core.EventContext{}
		data.Data.U16[0] = uint16(code)
		core.EventFire(core.EVENT_CODE_KEY_PRESSED, p, data)
		return nil
	})
	js.Global().Get("document").Call("addEventListener", "keydown", p.onKey)
	return ctx, nil
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.ctx.Size()
	return uint32(w), uint32(h)
}

// PumpMessages blocks until the browser schedules the next animation frame.
func (p *Platform) PumpMessages() bool {
	if p.closed {
		return false
	}
	js.Global().Call("requestAnimationFrame", p.onFrame)
	<-p.frames
	return true
}

func (p *Platform) SwapBuffers() {}

func (p *Platform) Shutdown() error {
	p.closed = true
	js.Global().Get("document").Call("removeEventListener", "keydown", p.onKey)
	p.onKey.Release()
	p.onFrame.Release()
	return nil
}

func keyCode(key string) core.KeyCode {
	switch key {
	case "Escape":
		return core.KEY_ESCAPE
	case " ":
		return core.KEY_SPACE
	case "p", "P":
		return core.KEY_P
	case "r", "R":
		return core.KEY_R
	}
	return core.KEY_UNKNOWN
}
