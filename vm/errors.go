package vm

import (
	"errors"

	"github.com/aryanA101a/lulu/translate"
)

var f = translate.From

// List of fatal conditions for Errno
const (
	IllegalOpcode = Errno(iota)
	IllegalTrap
	InputFailure
	OutputFailure
)

var strError = []string{
	"illegal opcode",
	"illegal trap vector",
	"input failure",
	"output failure",
}

// Errno describes why the machine stopped.
type Errno int

func (e Errno) Error() string {
	return f(strError[e])
}

// Error is a fatal execution error together with the instruction that raised it.
type Error struct {
	Errno Errno       // nature of the fault
	Err   error       // underlying I/O error for InputFailure and OutputFailure
	PC    Word        // address the instruction was fetched from
	Instr Instruction // the faulting instruction
}

func (e *Error) Error() string {
	msg := e.Errno.Error()
	switch e.Errno {
	case IllegalOpcode:
		msg += " " + e.Instr.Opcode().String()
	case IllegalTrap:
		msg += f(" x%02X", uint8(e.Instr.TrapVector()))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return f("%v (instruction 0x%04X at 0x%04X)", msg, uint16(e.Instr), uint16(e.PC))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches an Errno so callers can use errors.Is(err, IllegalOpcode).
func (e *Error) Is(target error) bool {
	errno, ok := target.(Errno)
	return ok && errno == e.Errno
}

var (
	// Image errors
	ErrImageTruncated = errors.New(f("image has no origin word"))
)
