package chippers

import (
	"errors"
	"fmt"
)

var ErrProgramTooLarge = errors.New("the program does not fit into memory")

// AddressError reports an access outside the addressable range.
type AddressError struct {
	Addr uint16
}

func (err AddressError) Error() string {
	return fmt.Sprintf("memory address out of range: 0x%04X", err.Addr)
}

const (
	// MemorySize is the amount of addressable memory in bytes.
	MemorySize = 4096
	// ProgramStart is the address at which programs are loaded and where
	// execution begins.
	ProgramStart = 0x200
	// MaxProgramSize is the number of bytes available to a loaded program.
	MaxProgramSize = MemorySize - ProgramStart
)

// Memory is the flat addressable memory of the machine. The first 80 bytes
// hold the built-in font, one 5-byte sprite per hex digit.
type Memory [MemorySize]byte

// NewMemory creates an empty memory with the font sprites preloaded.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m[:], fontData[:])
	return m
}

// LoadProgram copies the program to the start-of-program address.
func (mem *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return ErrProgramTooLarge
	}

	copy(mem[ProgramStart:], program)

	return nil
}

// At reads the byte at addr.
func (mem *Memory) At(addr uint16) (byte, error) {
	if addr >= MemorySize {
		return 0, AddressError{Addr: addr}
	}
	return mem[addr], nil
}

// ReadOpcode reads the big-endian 16-bit instruction word at addr.
func (mem *Memory) ReadOpcode(addr uint16) (uint16, error) {
	if addr >= MemorySize-1 {
		return 0, AddressError{Addr: addr}
	}
	return uint16(mem[addr])<<8 | uint16(mem[addr+1]), nil
}

// Span returns a copy of the n bytes starting at addr.
func (mem *Memory) Span(addr uint16, n uint16) ([]byte, error) {
	if uint32(addr)+uint32(n) > MemorySize {
		return nil, AddressError{Addr: addr + n - 1}
	}
	out := make([]byte, n)
	copy(out, mem[addr:addr+n])
	return out, nil
}

// WriteSpan writes data starting at addr. Nothing is written when the span
// does not fit.
func (mem *Memory) WriteSpan(addr uint16, data []byte) error {
	if uint32(addr)+uint32(len(data)) > MemorySize {
		return AddressError{Addr: addr + uint16(len(data)) - 1}
	}
	copy(mem[addr:], data)
	return nil
}

// FontSpriteSize is the height in bytes of one built-in font sprite.
const FontSpriteSize = 5

var fontData = [16 * FontSpriteSize]byte{
	// 0
	0xF0, 0x90, 0x90, 0x90, 0xF0,
	// 1
	0x20, 0x60, 0x20, 0x20, 0x70,
	// 2
	0xF0, 0x10, 0xF0, 0x80, 0xF0,
	// 3
	0xF0, 0x10, 0xF0, 0x10, 0xF0,
	// 4
	0x90, 0x90, 0xF0, 0x10, 0x10,
	// 5
	0xF0, 0x80, 0xF0, 0x10, 0xF0,
	// 6
	0xF0, 0x80, 0xF0, 0x90, 0xF0,
	// 7
	0xF0, 0x10, 0x20, 0x40, 0x40,
	// 8
	0xF0, 0x90, 0xF0, 0x90, 0xF0,
	// 9
	0xF0, 0x90, 0xF0, 0x10, 0xF0,
	// A
	0xF0, 0x90, 0xF0, 0x90, 0x90,
	// B
	0xE0, 0x90, 0xE0, 0x90, 0xE0,
	// C
	0xF0, 0x80, 0x80, 0x80, 0xF0,
	// D
	0xE0, 0x90, 0x90, 0x90, 0xE0,
	// E
	0xF0, 0x80, 0xF0, 0x80, 0xF0,
	// F
	0xF0, 0x80, 0xF0, 0x80, 0x80,
}
