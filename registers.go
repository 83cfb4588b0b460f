package chippers

// Registers is the general-purpose register file V0..VF. VF doubles as the
// flag output of arithmetic, shift and draw instructions; a flag write
// overwrites whatever value the program last stored there.
type Registers [16]byte

const flagRegister = 0xF

func (r *Registers) setFlag() {
	r[flagRegister] = 1
}

func (r *Registers) clearFlag() {
	r[flagRegister] = 0
}

func (r *Registers) setFlagTo(v byte) {
	r[flagRegister] = v
}
