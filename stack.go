package chippers

import "errors"

var ErrStackUnderflow = errors.New("stack underflow: return with no pending call")
var ErrStackOverflow = errors.New("stack overflow: too many nested calls")

// StackDepth is the call depth limit of the original hardware.
const StackDepth = 16

// Stack holds subroutine return addresses.
type Stack struct {
	frames [StackDepth]uint16
	sp     byte
}

func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackDepth {
		return ErrStackOverflow
	}
	s.frames[s.sp] = addr
	s.sp++
	return nil
}

func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.frames[s.sp], nil
}

func (s *Stack) Depth() int {
	return int(s.sp)
}

// Frames returns a copy of the in-use portion of the stack, bottom first.
func (s *Stack) Frames() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.frames[:s.sp])
	return out
}
