package core

import "sync"

type EventContext struct {
	Data struct {
		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		U16 [8]uint16

		C [4]string
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * u16 key_code = data.Data.U16[0];
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * u16 key_code = data.Data.U16[0];
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * u32 width = data.Data.U32[0];
	 * u32 height = data.Data.U32[1];
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// A material was reloaded from disk.
	/* Context usage:
	 * string name = data.Data.C[0];
	 * i32 entities = data.Data.I32[0];
	 */
	EVENT_CODE_MATERIAL_RELOADED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// Key codes carried by EVENT_CODE_KEY_PRESSED and EVENT_CODE_KEY_RELEASED.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_P       KeyCode = 0x50
	KEY_R       KeyCode = 0x52
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

var (
	eventMutex sync.RWMutex
	registered map[SystemEventCode][]*registeredEvent
)

func EventInitialize() bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if registered != nil {
		return false
	}
	registered = make(map[SystemEventCode][]*registeredEvent)
	return true
}

func EventShutdown() error {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	// Objects pointed to by listeners are destroyed by their owners.
	registered = nil
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * registers at most once per code; duplicates return false.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if registered == nil || code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	registered[code] = append(registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @param code The event code to stop listening for.
 * @param listener The listener passed to EventRegister.
 * @returns true if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	if registered == nil {
		return false
	}
	events := registered[code]
	for i, e := range events {
		if e.listener == listener {
			registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code in registration order. If an
 * event handler returns true, the event is considered handled and is not
 * passed on to any more listeners.
 * @param code The event code to fire.
 * @param sender A pointer to the sender. Can be nil.
 * @param context The event data.
 * @returns true if handled, otherwise false.
 */
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	eventMutex.RLock()
	events := registered[code]
	eventMutex.RUnlock()

	// Callbacks may register or unregister; they run on a snapshot.
	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			return true
		}
	}
	return false
}
