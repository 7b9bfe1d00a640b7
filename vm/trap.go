package vm

// TrapVector selects a service routine for TRAP.
type TrapVector uint8

const (
	TRAP_GETC  TrapVector = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   TrapVector = 0x21 /* output a character */
	TRAP_PUTS  TrapVector = 0x22 /* output a word string */
	TRAP_IN    TrapVector = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP TrapVector = 0x24 /* output a byte string */
	TRAP_HALT  TrapVector = 0x25 /* halt the program */
)

const inPrompt = "Enter a character: "

type trapHandler func(cpu *cpu) error

var trapTable = map[TrapVector]trapHandler{
	TRAP_GETC:  (*cpu).trapGetc,
	TRAP_OUT:   (*cpu).trapOut,
	TRAP_PUTS:  (*cpu).trapPuts,
	TRAP_IN:    (*cpu).trapIn,
	TRAP_PUTSP: (*cpu).trapPutsp,
	TRAP_HALT:  (*cpu).trapHalt,
}

var trapNames = map[TrapVector]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

func (tv TrapVector) String() string {
	if name, ok := trapNames[tv]; ok {
		return name
	}
	return f("x%02X", uint8(tv))
}

func (cpu *cpu) trapGetc() error {
	c, err := cpu.in.ReadByte()
	if err != nil {
		return cpu.fault(InputFailure, err)
	}
	cpu.reg.Set(R0, Word(c))
	cpu.reg.UpdateFlags(R0)
	return nil
}

func (cpu *cpu) trapOut() error {
	if err := cpu.out.WriteByte(byte(cpu.reg.Get(R0))); err != nil {
		return cpu.fault(OutputFailure, err)
	}
	return cpu.flush()
}

// one character per word
func (cpu *cpu) trapPuts() error {
	for addr := cpu.reg.Get(R0); cpu.memory.peek(addr) != 0; addr++ {
		if err := cpu.out.WriteByte(byte(cpu.memory.peek(addr))); err != nil {
			return cpu.fault(OutputFailure, err)
		}
	}
	return cpu.flush()
}

func (cpu *cpu) trapIn() error {
	for _, b := range []byte(inPrompt) {
		if err := cpu.out.WriteByte(b); err != nil {
			return cpu.fault(OutputFailure, err)
		}
	}
	if err := cpu.flush(); err != nil {
		return err
	}

	c, err := cpu.in.ReadByte()
	if err != nil {
		return cpu.fault(InputFailure, err)
	}
	if err := cpu.out.WriteByte(c); err != nil {
		return cpu.fault(OutputFailure, err)
	}

	cpu.reg.Set(R0, Word(c))
	cpu.reg.UpdateFlags(R0)
	return cpu.flush()
}

// two characters per word, low byte first
func (cpu *cpu) trapPutsp() error {
	for addr := cpu.reg.Get(R0); cpu.memory.peek(addr) != 0; addr++ {
		w := cpu.memory.peek(addr)
		if err := cpu.out.WriteByte(byte(w)); err != nil {
			return cpu.fault(OutputFailure, err)
		}
		if w>>8 != 0 {
			if err := cpu.out.WriteByte(byte(w >> 8)); err != nil {
				return cpu.fault(OutputFailure, err)
			}
		}
	}
	return cpu.flush()
}

func (cpu *cpu) trapHalt() error {
	for _, b := range []byte("HALT\n") {
		if err := cpu.out.WriteByte(b); err != nil {
			return cpu.fault(OutputFailure, err)
		}
	}
	cpu.stop()
	return cpu.flush()
}
