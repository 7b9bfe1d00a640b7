package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateFlags(t *testing.T) {
	tests := []struct {
		name string
		v    Word
		want Flag
	}{
		{"zero", 0x0000, FLAG_ZRO},
		{"one", 0x0001, FLAG_POS},
		{"max positive", 0x7FFF, FLAG_POS},
		{"min negative", 0x8000, FLAG_NEG},
		{"minus one", 0xFFFF, FLAG_NEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for r := R0; r <= R7; r++ {
				var rf Registers
				rf.Set(r, tt.v)
				rf.UpdateFlags(r)
				assert.Equal(t, tt.want, rf.Cond(), "R%d", r)
			}
		})
	}
}

func TestUpdateFlagsExactlyOne(t *testing.T) {
	var rf Registers
	for v := 0; v < MemorySize; v++ {
		rf.Set(R3, Word(v))
		rf.UpdateFlags(R3)

		cond := rf.Get(COND)
		if cond == 0 || cond&(cond-1) != 0 || cond > Word(FLAG_NEG) {
			t.Fatalf("0x%04x: COND=%03b, want exactly one flag", v, cond)
		}
		if (v == 0) != (rf.Cond() == FLAG_ZRO) {
			t.Fatalf("0x%04x: ZERO mismatch", v)
		}
		if (v&0x8000 != 0) != (rf.Cond() == FLAG_NEG) {
			t.Fatalf("0x%04x: NEGATIVE mismatch", v)
		}
	}
}

func TestUpdateFlagsLeavesValue(t *testing.T) {
	assert := assert.New(t)

	var rf Registers
	rf.Set(R5, 0x1234)
	rf.Set(PC, 0x3000)
	rf.UpdateFlags(R5)

	assert.Equal(Word(0x1234), rf.Get(R5))
	assert.Equal(Word(0x3000), rf.Get(PC))
	assert.Equal("POSITIVE", rf.Cond().String())
}
