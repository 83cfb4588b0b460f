package chippers

import "fmt"

// Mode selects between the two historical families of instruction
// semantics. It is a runtime configuration so that one binary can emulate
// either behavior.
type Mode byte

const (
	// Modern follows the common modern interpreters: shifts operate on Vx
	// in place, Bnnn offsets by Vx, and bulk register transfers leave I
	// untouched.
	Modern Mode = iota
	// Legacy follows the original interpreter: shifts copy Vy into Vx
	// first, Bnnn offsets by V0, and bulk register transfers leave I
	// incremented past the span.
	Legacy
)

func (m Mode) String() string {
	if m == Legacy {
		return "legacy"
	}
	return "modern"
}

// DecodeError reports an opcode that matches no known pattern. Pc is filled
// in by the machine when the opcode came from a fetch.
type DecodeError struct {
	Opcode uint16
	Pc     uint16
}

func (err DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode=%04X at PC=0x%03X", err.Opcode, err.Pc)
}

// Decode maps a 16-bit opcode to its instruction. The mode decides which
// operands the quirk-dependent instructions carry: in legacy mode the shifts
// take a source register Vy, in modern mode the offset jump takes an offset
// register.
func Decode(opcode uint16, mode Mode) (Instruction, error) {
	a := byte(opcode >> 12)
	x := byte((opcode & 0x0F00) >> 8)
	y := byte(opcode&0x00F0) >> 4
	n := byte(opcode & 0x000F)
	kk := byte(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch a {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return Instruction{Op: OpClearScreen}, nil
		case 0x00EE:
			return Instruction{Op: OpReturn}, nil
		default:
			return Instruction{Op: OpMachineRoutine, Addr: nnn}, nil
		}

	case 0x1:
		return Instruction{Op: OpJump, Addr: nnn}, nil

	case 0x2:
		return Instruction{Op: OpCall, Addr: nnn}, nil

	case 0x3:
		return Instruction{Op: OpSkipEqualByte, X: x, Byte: kk}, nil

	case 0x4:
		return Instruction{Op: OpSkipNotEqualByte, X: x, Byte: kk}, nil

	case 0x5:
		if n == 0x0 {
			return Instruction{Op: OpSkipEqualVariable, X: x, Y: y}, nil
		}

	case 0x6:
		return Instruction{Op: OpSetWithByte, X: x, Byte: kk}, nil

	case 0x7:
		return Instruction{Op: OpAddWithByte, X: x, Byte: kk}, nil

	case 0x8:
		switch n {
		case 0x0:
			return Instruction{Op: OpSetWithVariable, X: x, Y: y}, nil
		case 0x1:
			return Instruction{Op: OpOr, X: x, Y: y}, nil
		case 0x2:
			return Instruction{Op: OpAnd, X: x, Y: y}, nil
		case 0x3:
			return Instruction{Op: OpXor, X: x, Y: y}, nil
		case 0x4:
			return Instruction{Op: OpAddWithVariable, X: x, Y: y}, nil
		case 0x5:
			return Instruction{Op: OpSubWithVariable, X: x, Y: y}, nil
		case 0x6:
			ins := Instruction{Op: OpShiftRight, X: x}
			if mode == Legacy {
				ins.Y = y
			}
			return ins, nil
		case 0x7:
			return Instruction{Op: OpSubWithVariableNot, X: x, Y: y}, nil
		case 0xE:
			ins := Instruction{Op: OpShiftLeft, X: x}
			if mode == Legacy {
				ins.Y = y
			}
			return ins, nil
		}

	case 0x9:
		if n == 0x0 {
			return Instruction{Op: OpSkipNotEqualVariable, X: x, Y: y}, nil
		}

	case 0xA:
		return Instruction{Op: OpSetIndexWithAddress, Addr: nnn}, nil

	case 0xB:
		ins := Instruction{Op: OpJumpOffset, Addr: nnn}
		if mode == Modern {
			ins.X = x
		}
		return ins, nil

	case 0xC:
		return Instruction{Op: OpRandomAnd, X: x, Byte: kk}, nil

	case 0xD:
		return Instruction{Op: OpDraw, X: x, Y: y, N: n}, nil

	case 0xE:
		switch kk {
		case 0x9E:
			return Instruction{Op: OpSkipKey, X: x}, nil
		case 0xA1:
			return Instruction{Op: OpSkipNotKey, X: x}, nil
		}

	case 0xF:
		switch kk {
		case 0x07:
			return Instruction{Op: OpSetVariableWithDelayTimer, X: x}, nil
		case 0x0A:
			return Instruction{Op: OpWaitForKey, X: x}, nil
		case 0x15:
			return Instruction{Op: OpSetDelayTimer, X: x}, nil
		case 0x18:
			return Instruction{Op: OpSetSoundTimer, X: x}, nil
		case 0x1E:
			return Instruction{Op: OpAddIndexWithVariable, X: x}, nil
		case 0x29:
			return Instruction{Op: OpSetIndexWithSpriteAddress, X: x}, nil
		case 0x33:
			return Instruction{Op: OpStoreDecimalConversion, X: x}, nil
		case 0x55:
			return Instruction{Op: OpStoreRegisters, X: x}, nil
		case 0x65:
			return Instruction{Op: OpLoadIntoRegisters, X: x}, nil
		}
	}

	return Instruction{}, DecodeError{Opcode: opcode}
}
