package vm

const MemorySize = 1 << 16

const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR Word = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR Word = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

// Device is a memory mapped peripheral. Access runs before every read of an
// address the device is mapped at and may update the backing cells through
// mem.Write. Writes to mapped addresses are never intercepted.
type Device interface {
	Access(addr Word, mem *Memory)
}

// Memory is the 64K word address space.
type Memory struct {
	cells   [MemorySize]Word
	devices map[Word]Device
}

// NewMemory returns zeroed memory with no devices mapped.
func NewMemory() *Memory {
	return &Memory{devices: map[Word]Device{}}
}

// Map attaches dev to addr, replacing any device already there.
func (mem *Memory) Map(addr Word, dev Device) {
	if addr < MemoryMappedRegistersStart {
		panic("vm: device mapped outside the I/O page")
	}
	mem.devices[addr] = dev
}

func (mem *Memory) Write(addr, value Word) {
	mem.cells[addr] = value
}

// Read returns the word at addr, letting a mapped device refresh it first.
func (mem *Memory) Read(addr Word) Word {
	if addr >= MemoryMappedRegistersStart {
		if dev, ok := mem.devices[addr]; ok {
			dev.Access(addr, mem)
		}
	}
	return mem.cells[addr]
}

// peek reads the backing store without device side effects.
func (mem *Memory) peek(addr Word) Word {
	return mem.cells[addr]
}
