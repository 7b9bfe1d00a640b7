package vm

// Word is the unit of storage and computation. Arithmetic wraps modulo 2^16.
type Word uint16

// Register indexes the register file.
type Register int

// general purpose registers, then the internal ones
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC   /* program counter */
	COND /* condition flags */
	RegisterCount
)

// Flag is a condition code held in COND. Exactly one is set at a time.
type Flag Word

// flags
const (
	FLAG_POS Flag = 1 << 0
	FLAG_ZRO Flag = 1 << 1
	FLAG_NEG Flag = 1 << 2
)

func (f Flag) String() string {
	switch f {
	case FLAG_POS:
		return "POSITIVE"
	case FLAG_ZRO:
		return "ZERO"
	case FLAG_NEG:
		return "NEGATIVE"
	}
	return "INVALID"
}

// Registers is the register file: R0-R7, PC and COND.
type Registers struct {
	reg [RegisterCount]Word
}

// Get returns the value of register r.
func (rf Registers) Get(r Register) Word {
	return rf.reg[r]
}

// Set stores v in register r. Flags are not touched.
func (rf *Registers) Set(r Register, v Word) {
	rf.reg[r] = v
}

// Cond returns the current condition flag.
func (rf Registers) Cond() Flag {
	return Flag(rf.reg[COND])
}

// UpdateFlags sets COND from the sign of register r.
func (rf *Registers) UpdateFlags(r Register) {
	switch v := rf.reg[r]; {
	case v == 0:
		rf.reg[COND] = Word(FLAG_ZRO)
	case v>>15 != 0:
		rf.reg[COND] = Word(FLAG_NEG)
	default:
		rf.reg[COND] = Word(FLAG_POS)
	}
}
