package chippers_test

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/LouisGariepy/chippers"
)

func TestDefaultKeyboardLayout(t *testing.T) {
	lookup := chippers.LookupMap(chippers.DefaultKeyboardLayout)
	assert.Len(t, lookup, chippers.NumKeys)

	// The QWERTY 4x4 block maps onto the hex keypad.
	assert.Equal(t, byte(0x1), lookup['1'])
	assert.Equal(t, byte(0xC), lookup['4'])
	assert.Equal(t, byte(0x0), lookup['x'])
	assert.Equal(t, byte(0xF), lookup['v'])
}
