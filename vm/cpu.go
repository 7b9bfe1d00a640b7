package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Output is the display side of the console.
type Output interface {
	WriteByte(c byte) error
	Flush() error
}

type cpu struct {
	running bool
	memory  *Memory
	reg     Registers
	in      Input
	out     Output
	log     *logrus.Logger

	// address and word of the instruction being executed
	lastpc Word
	instr  Instruction
}

func newCpu(memory *Memory, in Input, out Output) cpu {
	c := cpu{
		running: true,
		memory:  memory,
		in:      in,
		out:     out,
		log:     logrus.StandardLogger(),
	}
	c.reg.Set(PC, UserSpaceStart)
	c.reg.Set(COND, Word(FLAG_ZRO))
	return c
}

func (cpu *cpu) stop() {
	cpu.running = false
}

// step runs one fetch/decode/execute cycle.
func (cpu *cpu) step() error {
	cpu.lastpc = cpu.reg.Get(PC)
	cpu.instr = Instruction(cpu.memory.Read(cpu.lastpc))
	cpu.reg.Set(PC, cpu.lastpc+1)

	if cpu.log.IsLevelEnabled(logrus.DebugLevel) {
		cpu.log.WithFields(logrus.Fields{
			"pc":    fmt.Sprintf("0x%04x", cpu.lastpc),
			"op":    cpu.instr.Opcode().String(),
			"instr": fmt.Sprintf("0x%04x", uint16(cpu.instr)),
		}).Debug("step")
	}

	return cpu.decodeAndExecuteInstruction(cpu.instr)
}

func (cpu *cpu) decodeAndExecuteInstruction(instruction Instruction) error {
	reg := &cpu.reg
	pc := reg.Get(PC)

	switch instruction.Opcode() {
	case OP_ADD:
		dr := instruction.DR()
		if instruction.ImmFlag() {
			reg.Set(dr, reg.Get(instruction.SR1())+instruction.Imm5())
		} else {
			reg.Set(dr, reg.Get(instruction.SR1())+reg.Get(instruction.SR2()))
		}
		reg.UpdateFlags(dr)

	case OP_AND:
		dr := instruction.DR()
		if instruction.ImmFlag() {
			reg.Set(dr, reg.Get(instruction.SR1())&instruction.Imm5())
		} else {
			reg.Set(dr, reg.Get(instruction.SR1())&reg.Get(instruction.SR2()))
		}
		reg.UpdateFlags(dr)

	case OP_NOT:
		dr := instruction.DR()
		reg.Set(dr, ^reg.Get(instruction.SR1()))
		reg.UpdateFlags(dr)

	case OP_BR:
		if instruction.NZP()&reg.Cond() != 0 {
			reg.Set(PC, pc+instruction.PCOffset9())
		}

	case OP_JMP:
		// also RET when BaseR is R7
		reg.Set(PC, reg.Get(instruction.BaseR()))

	case OP_JSR:
		// R7 is written first, so JSRR R7 falls through to the next instruction
		reg.Set(R7, pc)
		if instruction.Long() {
			reg.Set(PC, pc+instruction.PCOffset11())
		} else {
			reg.Set(PC, reg.Get(instruction.BaseR()))
		}

	case OP_LD:
		dr := instruction.DR()
		reg.Set(dr, cpu.memory.Read(pc+instruction.PCOffset9()))
		reg.UpdateFlags(dr)

	case OP_LDI:
		dr := instruction.DR()
		reg.Set(dr, cpu.memory.Read(cpu.memory.Read(pc+instruction.PCOffset9())))
		reg.UpdateFlags(dr)

	case OP_LDR:
		dr := instruction.DR()
		reg.Set(dr, cpu.memory.Read(reg.Get(instruction.BaseR())+instruction.Offset6()))
		reg.UpdateFlags(dr)

	case OP_LEA:
		dr := instruction.DR()
		reg.Set(dr, pc+instruction.PCOffset9())
		reg.UpdateFlags(dr)

	case OP_ST:
		cpu.memory.Write(pc+instruction.PCOffset9(), reg.Get(instruction.SR()))

	case OP_STI:
		cpu.memory.Write(cpu.memory.Read(pc+instruction.PCOffset9()), reg.Get(instruction.SR()))

	case OP_STR:
		cpu.memory.Write(reg.Get(instruction.BaseR())+instruction.Offset6(), reg.Get(instruction.SR()))

	case OP_TRAP:
		return cpu.execTrap(instruction.TrapVector())

	default:
		// OP_RTI and OP_RES
		return cpu.fault(IllegalOpcode, nil)
	}

	return nil
}

func (cpu *cpu) execTrap(vector TrapVector) error {
	handler, ok := trapTable[vector]
	if !ok {
		return cpu.fault(IllegalTrap, nil)
	}
	cpu.reg.Set(R7, cpu.reg.Get(PC))
	return handler(cpu)
}

func (cpu *cpu) flush() error {
	if err := cpu.out.Flush(); err != nil {
		return cpu.fault(OutputFailure, err)
	}
	return nil
}

// fault stops the machine and describes the instruction being executed.
func (cpu *cpu) fault(errno Errno, err error) error {
	cpu.stop()
	return &Error{
		Errno: errno,
		Err:   err,
		PC:    cpu.lastpc,
		Instr: cpu.instr,
	}
}
