package vm

import (
	"bufio"
	"bytes"
)

// queuedInput is an Input fed from a fixed byte slice.
type queuedInput struct {
	*bytes.Reader
	polls int
}

func newQueuedInput(b ...byte) *queuedInput {
	return &queuedInput{Reader: bytes.NewReader(b)}
}

func (qi *queuedInput) Poll() bool {
	qi.polls++
	return qi.Len() > 0
}

// capturedOutput is an Output that records everything flushed.
type capturedOutput struct {
	*bufio.Writer
	buf *bytes.Buffer
}

func newCapturedOutput() *capturedOutput {
	buf := &bytes.Buffer{}
	return &capturedOutput{Writer: bufio.NewWriter(buf), buf: buf}
}

func (co *capturedOutput) String() string {
	return co.buf.String()
}

// newTestVM builds a VM with queued input and captured output.
func newTestVM(input ...byte) (*VM, *queuedInput, *capturedOutput) {
	in := newQueuedInput(input...)
	out := newCapturedOutput()
	return NewVM(in, out), in, out
}

// loadProgram writes words starting at the default PC.
func loadProgram(vm *VM, words ...Word) {
	for i, w := range words {
		vm.memory.Write(UserSpaceStart+Word(i), w)
	}
}

// instruction encoders

func encADD(dr, sr1, sr2 Register) Word {
	return Word(OP_ADD)<<12 | Word(dr)<<9 | Word(sr1)<<6 | Word(sr2)
}

func encADDi(dr, sr1 Register, imm5 int) Word {
	return Word(OP_ADD)<<12 | Word(dr)<<9 | Word(sr1)<<6 | 1<<5 | Word(imm5)&0x1F
}

func encAND(dr, sr1, sr2 Register) Word {
	return Word(OP_AND)<<12 | Word(dr)<<9 | Word(sr1)<<6 | Word(sr2)
}

func encANDi(dr, sr1 Register, imm5 int) Word {
	return Word(OP_AND)<<12 | Word(dr)<<9 | Word(sr1)<<6 | 1<<5 | Word(imm5)&0x1F
}

func encNOT(dr, sr Register) Word {
	return Word(OP_NOT)<<12 | Word(dr)<<9 | Word(sr)<<6 | 0x3F
}

func encBR(nzp Flag, offset9 int) Word {
	return Word(OP_BR)<<12 | Word(nzp)<<9 | Word(offset9)&0x1FF
}

func encPCRel(op Opcode, r Register, offset9 int) Word {
	return Word(op)<<12 | Word(r)<<9 | Word(offset9)&0x1FF
}

func encBaseRel(op Opcode, r, base Register, offset6 int) Word {
	return Word(op)<<12 | Word(r)<<9 | Word(base)<<6 | Word(offset6)&0x3F
}

func encJMP(base Register) Word {
	return Word(OP_JMP)<<12 | Word(base)<<6
}

func encJSR(offset11 int) Word {
	return Word(OP_JSR)<<12 | 1<<11 | Word(offset11)&0x7FF
}

func encJSRR(base Register) Word {
	return Word(OP_JSR)<<12 | Word(base)<<6
}

func encTRAP(vector TrapVector) Word {
	return Word(OP_TRAP)<<12 | Word(vector)
}
