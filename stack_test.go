package chippers_test

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/LouisGariepy/chippers"
)

func TestStackPushPop(t *testing.T) {
	s := chippers.Stack{}

	assert.NoError(t, s.Push(0x200))
	assert.NoError(t, s.Push(0x300))
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, []uint16{0x200, 0x300}, s.Frames())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x300), addr)

	addr, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200), addr)
	assert.Equal(t, 0, s.Depth())
}

func TestStackPopEmpty(t *testing.T) {
	s := chippers.Stack{}

	_, err := s.Pop()
	assert.True(t, errors.Is(err, chippers.ErrStackUnderflow))
}

func TestStackPushFull(t *testing.T) {
	s := chippers.Stack{}

	for i := 0; i < chippers.StackDepth; i++ {
		assert.NoError(t, s.Push(uint16(i)))
	}

	err := s.Push(0xFFF)
	assert.True(t, errors.Is(err, chippers.ErrStackOverflow))
	assert.Equal(t, chippers.StackDepth, s.Depth())
}
