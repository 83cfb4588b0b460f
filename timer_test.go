package chippers_test

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/LouisGariepy/chippers"
)

func TestTimerCountdown(t *testing.T) {
	timer := chippers.Timer{}
	timer.Reset()

	assert.Equal(t, byte(60), timer.Value())
	assert.True(t, timer.Active())

	for i := 0; i < 59; i++ {
		timer.Decrement()
		assert.Equal(t, chippers.TimerAboveZero, timer.State())
	}
	assert.Equal(t, byte(1), timer.Value())

	// The transition to zero happens exactly once.
	timer.Decrement()
	assert.Equal(t, byte(0), timer.Value())
	assert.Equal(t, chippers.TimerZero, timer.State())
	assert.False(t, timer.Active())

	// Decrementing an expired timer is a no-op.
	timer.Decrement()
	assert.Equal(t, byte(0), timer.Value())
	assert.Equal(t, chippers.TimerZero, timer.State())
}

func TestTimerSetRearms(t *testing.T) {
	timer := chippers.Timer{}

	timer.Set(1)
	timer.Decrement()
	assert.Equal(t, chippers.TimerZero, timer.State())

	timer.Set(2)
	assert.Equal(t, chippers.TimerAboveZero, timer.State())
	assert.True(t, timer.Active())

	timer.Set(0)
	assert.Equal(t, chippers.TimerZero, timer.State())
}
