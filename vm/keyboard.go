package vm

import "io"

// Input is the keyboard side of the console.
type Input interface {
	io.ByteReader
	// Poll reports whether ReadByte would return without blocking.
	Poll() bool
}

const kbsrReady Word = 1 << 15

// Keyboard backs KBSR/KBDR. Reading KBSR polls the input without blocking
// and latches any pending character into KBDR.
type Keyboard struct {
	In Input
}

var _ Device = (*Keyboard)(nil)

func (kb *Keyboard) Access(addr Word, mem *Memory) {
	if addr != KBSR {
		return
	}
	if kb.In.Poll() {
		if c, err := kb.In.ReadByte(); err == nil {
			mem.Write(KBSR, kbsrReady)
			mem.Write(KBDR, Word(c))
			return
		}
	}
	mem.Write(KBSR, 0)
}
