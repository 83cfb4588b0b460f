// Package chippers implements a CHIP-8 virtual machine core: memory, the
// register file, call stack, monochrome screen, countdown timers, the hex
// keypad with its wait-for-key protocol, and the fetch-decode-execute
// engine. The package does not render, play sound, read files, or pace
// itself; drivers do that by calling Step, TickTimer and SetKey at rates of
// their choosing and reading the Screen back for presentation.
package chippers

import "errors"

// TimerKind selects one of the two countdown timers.
type TimerKind byte

const (
	DelayTimer TimerKind = iota
	SoundTimer
)

// MachineRoutineHandler runs a 0nnn opcode, which called into native
// routines on the original hardware.
type MachineRoutineHandler func(addr uint16, m *Machine) error

// Machine owns the whole state of one CHIP-8 system for its lifetime.
// Nothing is shared across machines, and drivers only mutate state through
// Step, TickTimer and SetKey.
type Machine struct {
	memory    *Memory
	registers Registers
	index     uint16
	pc        uint16
	stack     Stack
	screen    Screen
	delay     Timer
	sound     Timer
	input     InputHandler

	mode           Mode
	random         RandomSource
	machineRoutine MachineRoutineHandler

	program     []byte
	screenDirty bool
}

// Option configures a machine at construction.
type Option func(*Machine)

// WithMode selects the legacy or modern instruction semantics.
func WithMode(mode Mode) Option {
	return func(m *Machine) {
		m.mode = mode
	}
}

// WithRandomSource substitutes the byte source used by the RND instruction.
func WithRandomSource(src RandomSource) Option {
	return func(m *Machine) {
		m.random = src
	}
}

// WithMachineRoutine installs a handler for 0nnn opcodes. Without one they
// have no effect.
func WithMachineRoutine(h MachineRoutineHandler) Option {
	return func(m *Machine) {
		m.machineRoutine = h
	}
}

// New creates a machine with the program loaded at the start-of-program
// address. Programs larger than the memory past that address are rejected.
func New(program []byte, opts ...Option) (*Machine, error) {
	m := &Machine{
		memory:  NewMemory(),
		pc:      ProgramStart,
		mode:    Modern,
		random:  OSRandomSource{},
		program: append([]byte(nil), program...),
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.memory.LoadProgram(m.program); err != nil {
		return nil, err
	}

	return m, nil
}

// Step runs at most one fetch-decode-execute cycle and never blocks. While
// the machine waits for a key no fetch happens: Step only checks for a
// pressed-then-released key event, delivers it to the waiting register when
// present, and resumes normal stepping on the next call.
func (m *Machine) Step() error {
	if m.input.waiting {
		key, ok := m.input.takeReleased()
		if !ok {
			return nil
		}
		m.registers[m.input.waitRegister] = key
		m.input.waiting = false
		return nil
	}

	opcode, err := m.memory.ReadOpcode(m.pc)
	if err != nil {
		return err
	}
	pc := m.pc
	m.pc += 2

	ins, err := Decode(opcode, m.mode)
	if err != nil {
		var derr DecodeError
		if errors.As(err, &derr) {
			derr.Pc = pc
			return derr
		}
		return err
	}

	return m.execute(ins)
}

// TickTimer decrements one of the timers. Drivers call this at a fixed real
// time rate, conventionally 60 Hz, independent of the stepping rate.
func (m *Machine) TickTimer(which TimerKind) {
	switch which {
	case DelayTimer:
		m.delay.Decrement()
	case SoundTimer:
		m.sound.Decrement()
	}
}

// SetKey records a key transition. Releasing a key that was pressed after a
// wait began is what satisfies the wait-for-key protocol.
func (m *Machine) SetKey(key byte, pressed bool) {
	m.input.SetKey(key, pressed)
}

// Screen returns a snapshot of the pixel grid for presentation.
func (m *Machine) Screen() Screen {
	return m.screen
}

// Mode returns the instruction semantics the machine runs under.
func (m *Machine) Mode() Mode {
	return m.mode
}

// SoundActive reports whether the sound timer is still counting down, which
// is when the buzzer should sound.
func (m *Machine) SoundActive() bool {
	return m.sound.Active()
}

// Waiting reports whether the machine is blocked on the wait-for-key
// protocol.
func (m *Machine) Waiting() bool {
	return m.input.waiting
}

// Reset returns the machine to its power-on state with the same program,
// mode and collaborators.
func (m *Machine) Reset() {
	m.memory = NewMemory()
	// Cannot fail: the program fit at construction.
	_ = m.memory.LoadProgram(m.program)

	m.registers = Registers{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = Stack{}
	m.screen.Clear()
	m.delay = Timer{}
	m.sound = Timer{}
	m.input = InputHandler{}
	m.screenDirty = true
}

// Load replaces the program and resets the machine to run it.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return ErrProgramTooLarge
	}
	m.program = append([]byte(nil), program...)
	m.Reset()
	return nil
}

// State is a point-in-time copy of the machine registers for debuggers.
type State struct {
	Pc      uint16    `json:"pc"`
	Index   uint16    `json:"i"`
	V       Registers `json:"v"`
	Stack   []uint16  `json:"stack"`
	Delay   byte      `json:"delay"`
	Sound   byte      `json:"sound"`
	Waiting bool      `json:"waiting"`
}

// Snapshot copies the register, stack and timer state.
func (m *Machine) Snapshot() State {
	return State{
		Pc:      m.pc,
		Index:   m.index,
		V:       m.registers,
		Stack:   m.stack.Frames(),
		Delay:   m.delay.Value(),
		Sound:   m.sound.Value(),
		Waiting: m.input.waiting,
	}
}
