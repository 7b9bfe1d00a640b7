// Package vm emulates the LC-3: a 16-bit machine with eight general purpose
// registers, 64K words of memory and a memory mapped keyboard.
package vm

import (
	"context"

	"github.com/sirupsen/logrus"
)

// VM owns the machine state: memory, registers and the console it talks to.
type VM struct {
	memory *Memory
	cpu    cpu
}

// NewVM returns a machine with zeroed memory, the keyboard mapped at KBSR,
// PC at UserSpaceStart and COND set to ZERO.
func NewVM(in Input, out Output) *VM {
	mem := NewMemory()
	mem.Map(KBSR, &Keyboard{In: in})
	return &VM{
		memory: mem,
		cpu:    newCpu(mem, in, out),
	}
}

// SetLogger replaces the logger. At debug level every instruction is traced.
func (vm *VM) SetLogger(log *logrus.Logger) {
	vm.cpu.log = log
}

// SetPC sets the address of the next instruction.
func (vm *VM) SetPC(pc Word) {
	vm.cpu.reg.Set(PC, pc)
}

// Registers returns a copy of the register file.
func (vm *VM) Registers() Registers {
	return vm.cpu.reg
}

// Memory returns the machine memory.
func (vm *VM) Memory() *Memory {
	return vm.memory
}

// Halted reports whether HALT ran or a fault stopped the machine.
func (vm *VM) Halted() bool {
	return !vm.cpu.running
}

// Step executes one instruction. It is a no-op once the machine has halted.
func (vm *VM) Step() error {
	if !vm.cpu.running {
		return nil
	}
	return vm.cpu.step()
}

// Run executes until HALT, a fatal *Error, or ctx is done. Cancellation is
// only noticed between instructions; a blocked GETC or IN is not interrupted.
func (vm *VM) Run(ctx context.Context) error {
	done := ctx.Done()
	for vm.cpu.running {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		if err := vm.cpu.step(); err != nil {
			return err
		}
	}
	return nil
}

// State is a snapshot of the registers, suitable for dumping.
type State struct {
	R       [8]Word
	PC      Word
	Cond    string
	Instr   Word
	FetchPC Word
}

// State captures the current machine state.
func (vm *VM) State() State {
	st := State{
		PC:      vm.cpu.reg.Get(PC),
		Cond:    vm.cpu.reg.Cond().String(),
		Instr:   Word(vm.cpu.instr),
		FetchPC: vm.cpu.lastpc,
	}
	for r := R0; r <= R7; r++ {
		st.R[r] = vm.cpu.reg.Get(r)
	}
	return st
}
