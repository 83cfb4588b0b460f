package chippers_test

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/LouisGariepy/chippers"
)

func TestNewMemoryPreloadsFont(t *testing.T) {
	mem := chippers.NewMemory()

	// First row of the 0 sprite and last row of the F sprite.
	b, err := mem.At(0x000)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)

	b, err = mem.At(16*chippers.FontSpriteSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), b)
}

func TestLoadProgram(t *testing.T) {
	mem := chippers.NewMemory()

	assert.NoError(t, mem.LoadProgram([]byte{0x12, 0x34}))

	b, err := mem.At(chippers.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), b)

	b, err = mem.At(chippers.ProgramStart + 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), b)
}

func TestLoadProgramTooLarge(t *testing.T) {
	mem := chippers.NewMemory()

	assert.NoError(t, mem.LoadProgram(make([]byte, chippers.MaxProgramSize)))

	err := mem.LoadProgram(make([]byte, chippers.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chippers.ErrProgramTooLarge))
}

func TestReadOpcode(t *testing.T) {
	mem := chippers.NewMemory()
	assert.NoError(t, mem.LoadProgram([]byte{0x6A, 0x42}))

	opcode, err := mem.ReadOpcode(chippers.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x6A42), opcode)
}

func TestReadOpcodeOutOfRange(t *testing.T) {
	mem := chippers.NewMemory()

	// The opcode needs two bytes, so the last valid address is size-2.
	_, err := mem.ReadOpcode(chippers.MemorySize - 2)
	assert.NoError(t, err)

	var aerr chippers.AddressError
	_, err = mem.ReadOpcode(chippers.MemorySize - 1)
	assert.True(t, errors.As(err, &aerr))
	assert.Equal(t, uint16(chippers.MemorySize-1), aerr.Addr)
}

func TestSpanBounds(t *testing.T) {
	mem := chippers.NewMemory()

	data, err := mem.Span(chippers.MemorySize-4, 4)
	assert.NoError(t, err)
	assert.Len(t, data, 4)

	_, err = mem.Span(chippers.MemorySize-4, 5)
	var aerr chippers.AddressError
	assert.True(t, errors.As(err, &aerr))
}

func TestWriteSpanBounds(t *testing.T) {
	mem := chippers.NewMemory()

	assert.NoError(t, mem.WriteSpan(chippers.MemorySize-2, []byte{1, 2}))

	before, err := mem.At(chippers.MemorySize - 1)
	assert.NoError(t, err)

	// A span that does not fit writes nothing.
	var aerr chippers.AddressError
	err = mem.WriteSpan(chippers.MemorySize-1, []byte{3, 4})
	assert.True(t, errors.As(err, &aerr))

	after, err := mem.At(chippers.MemorySize - 1)
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}
