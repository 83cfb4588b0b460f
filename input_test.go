package chippers

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestInputKeyTransitions(t *testing.T) {
	in := InputHandler{}

	assert.Equal(t, KeyNotPressed, in.State(0x4))

	in.SetKey(0x4, true)
	assert.Equal(t, KeyPressed, in.State(0x4))
	assert.True(t, in.IsHeld(0x4))

	in.SetKey(0x4, false)
	assert.Equal(t, KeyNotPressed, in.State(0x4))
	assert.False(t, in.IsHeld(0x4))
}

func TestInputIgnoresKeysOutsideKeypad(t *testing.T) {
	in := InputHandler{}

	in.SetKey(0x10, true)
	assert.False(t, in.IsHeld(0x10))
	assert.Equal(t, KeyNotPressed, in.State(0x10))
}

func TestInputWaitDemotesHeldKeys(t *testing.T) {
	in := InputHandler{}
	in.SetKey(0x4, true)

	in.beginWait(0x0)
	assert.Equal(t, KeyAlreadyPressed, in.State(0x4))
	assert.False(t, in.IsHeld(0x4))

	// Releasing a demoted key does not produce an event.
	in.SetKey(0x4, false)
	_, ok := in.takeReleased()
	assert.False(t, ok)

	// A fresh press-then-release does.
	in.SetKey(0x4, true)
	in.SetKey(0x4, false)
	key, ok := in.takeReleased()
	assert.True(t, ok)
	assert.Equal(t, byte(0x4), key)

	// The event is consumed.
	_, ok = in.takeReleased()
	assert.False(t, ok)
}

func TestInputWaitDropsStaleEvent(t *testing.T) {
	in := InputHandler{}

	in.SetKey(0x7, true)
	in.SetKey(0x7, false)

	in.beginWait(0x0)
	_, ok := in.takeReleased()
	assert.False(t, ok)
}
