//go:build js && wasm

package webgl

import (
	"syscall/js"
	"unsafe"
)

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	copyToJS(arr, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}

func uint16Array(data []uint16) js.Value {
	arr := js.Global().Get("Uint16Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	copyToJS(arr, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2))
	return arr
}

func copyToJS(typed js.Value, bytes []byte) {
	view := js.Global().Get("Uint8Array").New(typed.Get("buffer"), typed.Get("byteOffset"), typed.Get("byteLength"))
	js.CopyBytesToJS(view, bytes)
}
