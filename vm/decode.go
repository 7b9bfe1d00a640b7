package vm

import "fmt"

// Opcode is the top nibble of an instruction.
type Opcode uint8

// opcodes
const (
	OP_BR   Opcode = iota /* branch */
	OP_ADD                /* add  */
	OP_LD                 /* load */
	OP_ST                 /* store */
	OP_JSR                /* jump register */
	OP_AND                /* bitwise and */
	OP_LDR                /* load register */
	OP_STR                /* store register */
	OP_RTI                /* unused */
	OP_NOT                /* bitwise not */
	OP_LDI                /* load indirect */
	OP_STI                /* store indirect */
	OP_JMP                /* jump */
	OP_RES                /* reserved (unused) */
	OP_LEA                /* load effective address */
	OP_TRAP               /* execute trap */
)

var opcodeNames = [...]string{
	"BR", "ADD", "LD", "ST", "JSR", "AND", "LDR", "STR",
	"RTI", "NOT", "LDI", "STI", "JMP", "RES", "LEA", "TRAP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// Instruction is a fetched word. Field accessors are only meaningful for the
// opcodes that define them.
type Instruction Word

// Opcode returns bits 15-12.
func (i Instruction) Opcode() Opcode {
	return Opcode(i >> 12)
}

// DR is the destination register, bits 11-9. Store-class instructions keep
// their source register in the same place, see SR.
func (i Instruction) DR() Register {
	return Register((i >> 9) & 0b111)
}

// SR is the source register of ST, STI and STR.
func (i Instruction) SR() Register {
	return i.DR()
}

// SR1 is bits 8-6. It doubles as BaseR for JMP, JSRR, LDR and STR.
func (i Instruction) SR1() Register {
	return Register((i >> 6) & 0b111)
}

// BaseR is bits 8-6.
func (i Instruction) BaseR() Register {
	return i.SR1()
}

// SR2 is bits 2-0.
func (i Instruction) SR2() Register {
	return Register(i & 0b111)
}

// ImmFlag reports bit 5 (ADD/AND immediate mode).
func (i Instruction) ImmFlag() bool {
	return (i>>5)&0b1 == 1
}

// Imm5 is the sign-extended immediate operand of ADD/AND.
func (i Instruction) Imm5() Word {
	return sext(Word(i)&0x1F, 5)
}

// Offset6 is the sign-extended LDR/STR offset.
func (i Instruction) Offset6() Word {
	return sext(Word(i)&0x3F, 6)
}

// PCOffset9 is the sign-extended PC-relative offset of BR, LD, LDI, LEA, ST and STI.
func (i Instruction) PCOffset9() Word {
	return sext(Word(i)&0x1FF, 9)
}

// PCOffset11 is the sign-extended JSR offset.
func (i Instruction) PCOffset11() Word {
	return sext(Word(i)&0x7FF, 11)
}

// Long reports bit 11, set for JSR and clear for JSRR.
func (i Instruction) Long() bool {
	return (i>>11)&0b1 == 1
}

// NZP is the BR condition mask in bits 11-9.
func (i Instruction) NZP() Flag {
	return Flag((i >> 9) & 0b111)
}

// TrapVector is the low byte of a TRAP.
func (i Instruction) TrapVector() TrapVector {
	return TrapVector(i & 0xFF)
}

// sign extend the low bitCount bits of x to 16 bits
func sext(x Word, bitCount uint) Word {
	if (x>>(bitCount-1))&0b1 != 0 {
		x |= 0xFFFF << bitCount
	}
	return x
}
