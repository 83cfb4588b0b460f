package chippers

import "fmt"

// Op identifies one instruction of the machine.
type Op byte

const (
	// OpMachineRoutine is the defunct native-routine call of the original
	// hardware. 0nnn
	OpMachineRoutine Op = iota
	// OpClearScreen turns every pixel off. 00E0
	OpClearScreen
	// OpReturn pops the return address of the current subroutine. 00EE
	OpReturn
	// OpJump sets PC to an address. 1nnn
	OpJump
	// OpCall pushes PC and jumps to a subroutine. 2nnn
	OpCall
	// OpSkipEqualByte skips the next instruction if Vx == kk. 3xkk
	OpSkipEqualByte
	// OpSkipNotEqualByte skips the next instruction if Vx != kk. 4xkk
	OpSkipNotEqualByte
	// OpSkipEqualVariable skips the next instruction if Vx == Vy. 5xy0
	OpSkipEqualVariable
	// OpSetWithByte sets Vx = kk. 6xkk
	OpSetWithByte
	// OpAddWithByte sets Vx = Vx + kk without touching the flag. 7xkk
	OpAddWithByte
	// OpSetWithVariable sets Vx = Vy. 8xy0
	OpSetWithVariable
	// OpOr sets Vx = Vx | Vy. 8xy1
	OpOr
	// OpAnd sets Vx = Vx & Vy. 8xy2
	OpAnd
	// OpXor sets Vx = Vx ^ Vy. 8xy3
	OpXor
	// OpAddWithVariable sets Vx = Vx + Vy, VF = carry. 8xy4
	OpAddWithVariable
	// OpSubWithVariable sets Vx = Vx - Vy, VF = NOT borrow. 8xy5
	OpSubWithVariable
	// OpShiftRight shifts Vx right, VF = bit shifted out. In legacy mode Vy
	// is copied into Vx first. 8xy6
	OpShiftRight
	// OpSubWithVariableNot sets Vx = Vy - Vx, VF = NOT borrow. 8xy7
	OpSubWithVariableNot
	// OpShiftLeft shifts Vx left, VF = bit shifted out. In legacy mode Vy
	// is copied into Vx first. 8xyE
	OpShiftLeft
	// OpSkipNotEqualVariable skips the next instruction if Vx != Vy. 9xy0
	OpSkipNotEqualVariable
	// OpSetIndexWithAddress sets I = nnn. Annn
	OpSetIndexWithAddress
	// OpJumpOffset jumps to nnn plus an offset register: V0 in legacy mode,
	// Vx with x the top nibble of nnn in modern mode. Bnnn
	OpJumpOffset
	// OpRandomAnd sets Vx = random byte & kk. Cxkk
	OpRandomAnd
	// OpDraw draws an n-row sprite from I at (Vx, Vy), VF = collision. Dxyn
	OpDraw
	// OpSkipKey skips the next instruction if the key in Vx is held. Ex9E
	OpSkipKey
	// OpSkipNotKey skips the next instruction if the key in Vx is not held.
	// ExA1
	OpSkipNotKey
	// OpSetVariableWithDelayTimer sets Vx to the delay timer value. Fx07
	OpSetVariableWithDelayTimer
	// OpWaitForKey blocks stepping until a key is pressed and released,
	// storing the key in Vx. Fx0A
	OpWaitForKey
	// OpSetDelayTimer sets the delay timer to Vx. Fx15
	OpSetDelayTimer
	// OpSetSoundTimer sets the sound timer to Vx. Fx18
	OpSetSoundTimer
	// OpAddIndexWithVariable sets I = I + Vx. Fx1E
	OpAddIndexWithVariable
	// OpSetIndexWithSpriteAddress points I at the font sprite for the hex
	// digit in Vx. Fx29
	OpSetIndexWithSpriteAddress
	// OpStoreDecimalConversion stores the decimal digits of Vx at I, I+1,
	// I+2. Fx33
	OpStoreDecimalConversion
	// OpStoreRegisters copies V0..Vx to memory at I. In legacy mode I ends
	// up incremented past the copied span. Fx55
	OpStoreRegisters
	// OpLoadIntoRegisters copies memory at I into V0..Vx. In legacy mode I
	// ends up incremented past the copied span. Fx65
	OpLoadIntoRegisters
)

// Instruction is one decoded instruction. Only the operand fields meaningful
// for Op are populated; the rest stay zero.
type Instruction struct {
	Op Op
	// X is the first register operand. For OpJumpOffset in modern mode it
	// holds the offset-source register.
	X byte
	// Y is the second register operand. For the shifts it is only populated
	// in legacy mode.
	Y byte
	// N is the low nibble operand (sprite height).
	N byte
	// Byte is the low byte operand (kk).
	Byte byte
	// Addr is the 12-bit address operand (nnn).
	Addr uint16
}

// Opcode re-encodes the instruction into its canonical opcode bit pattern.
// Decoding the result yields an identical instruction.
func (ins Instruction) Opcode() uint16 {
	x := uint16(ins.X) << 8
	y := uint16(ins.Y) << 4
	kk := uint16(ins.Byte)

	switch ins.Op {
	case OpMachineRoutine:
		return 0x0000 | ins.Addr
	case OpClearScreen:
		return 0x00E0
	case OpReturn:
		return 0x00EE
	case OpJump:
		return 0x1000 | ins.Addr
	case OpCall:
		return 0x2000 | ins.Addr
	case OpSkipEqualByte:
		return 0x3000 | x | kk
	case OpSkipNotEqualByte:
		return 0x4000 | x | kk
	case OpSkipEqualVariable:
		return 0x5000 | x | y
	case OpSetWithByte:
		return 0x6000 | x | kk
	case OpAddWithByte:
		return 0x7000 | x | kk
	case OpSetWithVariable:
		return 0x8000 | x | y
	case OpOr:
		return 0x8001 | x | y
	case OpAnd:
		return 0x8002 | x | y
	case OpXor:
		return 0x8003 | x | y
	case OpAddWithVariable:
		return 0x8004 | x | y
	case OpSubWithVariable:
		return 0x8005 | x | y
	case OpShiftRight:
		return 0x8006 | x | y
	case OpSubWithVariableNot:
		return 0x8007 | x | y
	case OpShiftLeft:
		return 0x800E | x | y
	case OpSkipNotEqualVariable:
		return 0x9000 | x | y
	case OpSetIndexWithAddress:
		return 0xA000 | ins.Addr
	case OpJumpOffset:
		return 0xB000 | ins.Addr
	case OpRandomAnd:
		return 0xC000 | x | kk
	case OpDraw:
		return 0xD000 | x | y | uint16(ins.N)
	case OpSkipKey:
		return 0xE09E | x
	case OpSkipNotKey:
		return 0xE0A1 | x
	case OpSetVariableWithDelayTimer:
		return 0xF007 | x
	case OpWaitForKey:
		return 0xF00A | x
	case OpSetDelayTimer:
		return 0xF015 | x
	case OpSetSoundTimer:
		return 0xF018 | x
	case OpAddIndexWithVariable:
		return 0xF01E | x
	case OpSetIndexWithSpriteAddress:
		return 0xF029 | x
	case OpStoreDecimalConversion:
		return 0xF033 | x
	case OpStoreRegisters:
		return 0xF055 | x
	case OpLoadIntoRegisters:
		return 0xF065 | x
	}

	return 0
}

// String renders the instruction with its conventional mnemonic.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpMachineRoutine:
		return fmt.Sprintf("SYS 0x%03X", ins.Addr)
	case OpClearScreen:
		return "CLS"
	case OpReturn:
		return "RET"
	case OpJump:
		return fmt.Sprintf("JP 0x%03X", ins.Addr)
	case OpCall:
		return fmt.Sprintf("CALL 0x%03X", ins.Addr)
	case OpSkipEqualByte:
		return fmt.Sprintf("SE V%X, 0x%02X", ins.X, ins.Byte)
	case OpSkipNotEqualByte:
		return fmt.Sprintf("SNE V%X, 0x%02X", ins.X, ins.Byte)
	case OpSkipEqualVariable:
		return fmt.Sprintf("SE V%X, V%X", ins.X, ins.Y)
	case OpSetWithByte:
		return fmt.Sprintf("LD V%X, 0x%02X", ins.X, ins.Byte)
	case OpAddWithByte:
		return fmt.Sprintf("ADD V%X, 0x%02X", ins.X, ins.Byte)
	case OpSetWithVariable:
		return fmt.Sprintf("LD V%X, V%X", ins.X, ins.Y)
	case OpOr:
		return fmt.Sprintf("OR V%X, V%X", ins.X, ins.Y)
	case OpAnd:
		return fmt.Sprintf("AND V%X, V%X", ins.X, ins.Y)
	case OpXor:
		return fmt.Sprintf("XOR V%X, V%X", ins.X, ins.Y)
	case OpAddWithVariable:
		return fmt.Sprintf("ADD V%X, V%X", ins.X, ins.Y)
	case OpSubWithVariable:
		return fmt.Sprintf("SUB V%X, V%X", ins.X, ins.Y)
	case OpShiftRight:
		return fmt.Sprintf("SHR V%X", ins.X)
	case OpSubWithVariableNot:
		return fmt.Sprintf("SUBN V%X, V%X", ins.X, ins.Y)
	case OpShiftLeft:
		return fmt.Sprintf("SHL V%X", ins.X)
	case OpSkipNotEqualVariable:
		return fmt.Sprintf("SNE V%X, V%X", ins.X, ins.Y)
	case OpSetIndexWithAddress:
		return fmt.Sprintf("LD I, 0x%03X", ins.Addr)
	case OpJumpOffset:
		return fmt.Sprintf("JP V0, 0x%03X", ins.Addr)
	case OpRandomAnd:
		return fmt.Sprintf("RND V%X, 0x%02X", ins.X, ins.Byte)
	case OpDraw:
		return fmt.Sprintf("DRW V%X, V%X, %d", ins.X, ins.Y, ins.N)
	case OpSkipKey:
		return fmt.Sprintf("SKP V%X", ins.X)
	case OpSkipNotKey:
		return fmt.Sprintf("SKNP V%X", ins.X)
	case OpSetVariableWithDelayTimer:
		return fmt.Sprintf("LD V%X, DT", ins.X)
	case OpWaitForKey:
		return fmt.Sprintf("LD V%X, K", ins.X)
	case OpSetDelayTimer:
		return fmt.Sprintf("LD DT, V%X", ins.X)
	case OpSetSoundTimer:
		return fmt.Sprintf("LD ST, V%X", ins.X)
	case OpAddIndexWithVariable:
		return fmt.Sprintf("ADD I, V%X", ins.X)
	case OpSetIndexWithSpriteAddress:
		return fmt.Sprintf("LD F, V%X", ins.X)
	case OpStoreDecimalConversion:
		return fmt.Sprintf("LD B, V%X", ins.X)
	case OpStoreRegisters:
		return fmt.Sprintf("LD [I], V%X", ins.X)
	case OpLoadIntoRegisters:
		return fmt.Sprintf("LD V%X, [I]", ins.X)
	}

	return fmt.Sprintf("DB 0x%04X", ins.Opcode())
}
