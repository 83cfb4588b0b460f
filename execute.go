package chippers

// execute applies one decoded instruction to the machine state. Every
// instruction either commits all of its observable writes or, when an
// address check fails, none of them.
func (m *Machine) execute(ins Instruction) error {
	switch ins.Op {
	// Subroutines
	case OpCall:
		if err := m.stack.Push(m.pc); err != nil {
			return err
		}
		m.pc = ins.Addr

	case OpReturn:
		addr, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.pc = addr

	// Control flow
	case OpJump:
		m.pc = ins.Addr

	case OpJumpOffset:
		// The decoder already picked the offset register for the mode:
		// always V0 in legacy mode, the top nibble of nnn in modern mode.
		m.pc = ins.Addr + uint16(m.registers[ins.X])

	case OpSkipEqualByte:
		if m.registers[ins.X] == ins.Byte {
			m.pc += 2
		}

	case OpSkipNotEqualByte:
		if m.registers[ins.X] != ins.Byte {
			m.pc += 2
		}

	case OpSkipEqualVariable:
		if m.registers[ins.X] == m.registers[ins.Y] {
			m.pc += 2
		}

	case OpSkipNotEqualVariable:
		if m.registers[ins.X] != m.registers[ins.Y] {
			m.pc += 2
		}

	case OpSkipKey:
		if m.input.IsHeld(m.registers[ins.X]) {
			m.pc += 2
		}

	case OpSkipNotKey:
		if !m.input.IsHeld(m.registers[ins.X]) {
			m.pc += 2
		}

	// Register setters
	case OpSetWithByte:
		m.registers[ins.X] = ins.Byte

	case OpSetWithVariable:
		m.registers[ins.X] = m.registers[ins.Y]

	case OpSetIndexWithAddress:
		m.index = ins.Addr

	case OpSetIndexWithSpriteAddress:
		m.index = uint16(m.registers[ins.X]) * FontSpriteSize

	// Arithmetic
	case OpAddWithByte:
		m.registers[ins.X] += ins.Byte

	case OpAddWithVariable:
		sum := uint16(m.registers[ins.X]) + uint16(m.registers[ins.Y])
		m.registers[ins.X] = byte(sum)
		m.registers.setFlagTo(byte(sum >> 8))

	case OpAddIndexWithVariable:
		m.index += uint16(m.registers[ins.X])

	case OpSubWithVariable:
		noBorrow := m.registers[ins.X] >= m.registers[ins.Y]
		m.registers[ins.X] -= m.registers[ins.Y]
		m.registers.setFlagTo(boolToByte(noBorrow))

	case OpSubWithVariableNot:
		noBorrow := m.registers[ins.Y] >= m.registers[ins.X]
		m.registers[ins.X] = m.registers[ins.Y] - m.registers[ins.X]
		m.registers.setFlagTo(boolToByte(noBorrow))

	case OpShiftRight:
		if m.mode == Legacy {
			m.registers[ins.X] = m.registers[ins.Y]
		}
		bit := m.registers[ins.X] & 0b00000001
		m.registers[ins.X] >>= 1
		m.registers.setFlagTo(bit)

	case OpShiftLeft:
		if m.mode == Legacy {
			m.registers[ins.X] = m.registers[ins.Y]
		}
		bit := (m.registers[ins.X] & 0b10000000) >> 7
		m.registers[ins.X] <<= 1
		m.registers.setFlagTo(bit)

	// Logic
	case OpOr:
		m.registers[ins.X] |= m.registers[ins.Y]

	case OpAnd:
		m.registers[ins.X] &= m.registers[ins.Y]

	case OpXor:
		m.registers[ins.X] ^= m.registers[ins.Y]

	// Display
	case OpClearScreen:
		m.screen.Clear()
		m.screenDirty = true

	case OpDraw:
		return m.draw(ins)

	// Timers
	case OpSetVariableWithDelayTimer:
		m.registers[ins.X] = m.delay.Value()

	case OpSetDelayTimer:
		m.delay.Set(m.registers[ins.X])

	case OpSetSoundTimer:
		m.sound.Set(m.registers[ins.X])

	// Memory transfers
	case OpStoreRegisters:
		n := uint16(ins.X) + 1
		if err := m.memory.WriteSpan(m.index, m.registers[:n]); err != nil {
			return err
		}
		if m.mode == Legacy {
			m.index += n
		}

	case OpLoadIntoRegisters:
		n := uint16(ins.X) + 1
		data, err := m.memory.Span(m.index, n)
		if err != nil {
			return err
		}
		copy(m.registers[:n], data)
		if m.mode == Legacy {
			m.index += n
		}

	case OpStoreDecimalConversion:
		value := m.registers[ins.X]
		digits := []byte{value / 100, value / 10 % 10, value % 10}
		if err := m.memory.WriteSpan(m.index, digits); err != nil {
			return err
		}

	// Input
	case OpWaitForKey:
		m.input.beginWait(ins.X)

	case OpRandomAnd:
		b, err := m.random.Byte()
		if err != nil {
			return err
		}
		m.registers[ins.X] = b & ins.Byte

	// Defunct
	case OpMachineRoutine:
		if m.machineRoutine != nil {
			return m.machineRoutine(ins.Addr, m)
		}
	}

	return nil
}

// draw XORs an n-row sprite read from memory at I onto the screen at
// (Vx, Vy). Only the start position wraps; rows and columns past the screen
// edge are dropped.
func (m *Machine) draw(ins Instruction) error {
	startX := m.registers[ins.X] % ScreenWidth
	y := m.registers[ins.Y] % ScreenHeight

	// Rows clipped at the bottom edge are never read, so a sprite ending
	// past addressable memory only fails if a visible row lies outside.
	n := uint16(ins.N)
	if visible := uint16(ScreenHeight - y); n > visible {
		n = visible
	}

	rows, err := m.memory.Span(m.index, n)
	if err != nil {
		return err
	}

	// VF acts as the collision detector for the whole sprite.
	m.registers.clearFlag()

	for _, line := range rows {
		x := startX

		for bit := 0; bit < 8; bit++ {
			if line&(0b10000000>>bit) != 0 {
				if m.screen.Toggle(x, y) {
					m.registers.setFlag()
				}
			}

			if x == ScreenWidth-1 {
				break
			}
			x++
		}

		if y == ScreenHeight-1 {
			break
		}
		y++
	}

	m.screenDirty = true
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
