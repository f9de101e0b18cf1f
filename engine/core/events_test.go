package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.True(t, EventInitialize())
	defer EventShutdown()
	assert.False(t, EventInitialize())

	var order []string
	first, second := "first", "second"
	onResize := func(code SystemEventCode, sender, listener interface{}, data EventContext) bool {
		order = append(order, listener.(string))
		assert.Equal(t, EVENT_CODE_RESIZED, code)
		assert.Equal(t, uint32(640), data.Data.U32[0])
		return listener == second
	}

	assert.True(t, EventRegister(EVENT_CODE_RESIZED, first, onResize))
	assert.True(t, EventRegister(EVENT_CODE_RESIZED, second, onResize))
	assert.False(t, EventRegister(EVENT_CODE_RESIZED, first, onResize))

	ctx := EventContext{}
	ctx.Data.U32[0] = 640
	assert.True(t, EventFire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, []string{"first", "second"}, order)

	assert.True(t, EventUnregister(EVENT_CODE_RESIZED, second))
	assert.False(t, EventUnregister(EVENT_CODE_RESIZED, second))
	order = nil
	assert.False(t, EventFire(EVENT_CODE_RESIZED, nil, ctx))
	assert.Equal(t, []string{"first"}, order)

	assert.False(t, EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
}

func TestEventsBeforeInitialize(t *testing.T) {
	assert.False(t, EventRegister(EVENT_CODE_APPLICATION_QUIT, nil, func(SystemEventCode, interface{}, interface{}, EventContext) bool { return true }))
	assert.False(t, EventFire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}))
}
