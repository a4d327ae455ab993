package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
		text string
	}{
		{0x00e0, OpCLS, "CLS"},
		{0x00ee, OpRET, "RET"},
		{0x0123, OpSYS, "SYS 0x123"},
		{0x1abc, OpJP, "JP 0xabc"},
		{0x2abc, OpCALL, "CALL 0xabc"},
		{0x3a12, OpSEByte, "SE VA, 0x12"},
		{0x4a12, OpSNEByte, "SNE VA, 0x12"},
		{0x5ab0, OpSEReg, "SE VA, VB"},
		{0x6a12, OpLDByte, "LD VA, 0x12"},
		{0x7a12, OpADDByte, "ADD VA, 0x12"},
		{0x8ab0, OpLDReg, "LD VA, VB"},
		{0x8ab1, OpOR, "OR VA, VB"},
		{0x8ab2, OpAND, "AND VA, VB"},
		{0x8ab3, OpXOR, "XOR VA, VB"},
		{0x8ab4, OpADDReg, "ADD VA, VB"},
		{0x8ab5, OpSUB, "SUB VA, VB"},
		{0x8ab6, OpSHR, "SHR VA, VB"},
		{0x8ab7, OpSUBN, "SUBN VA, VB"},
		{0x8abe, OpSHL, "SHL VA, VB"},
		{0x9ab0, OpSNEReg, "SNE VA, VB"},
		{0xa123, OpLDI, "LD I, 0x123"},
		{0xb123, OpJPV0, "JP V0, 0x123"},
		{0xca12, OpRND, "RND VA, 0x12"},
		{0xdab5, OpDRW, "DRW VA, VB, 5"},
		{0xea9e, OpSKP, "SKP VA"},
		{0xeaa1, OpSKNP, "SKNP VA"},
		{0xfa07, OpLDVxDT, "LD VA, DT"},
		{0xfa0a, OpLDVxK, "LD VA, K"},
		{0xfa15, OpLDDTVx, "LD DT, VA"},
		{0xfa18, OpLDSTVx, "LD ST, VA"},
		{0xfa1e, OpADDI, "ADD I, VA"},
		{0xfa29, OpLDF, "LD F, VA"},
		{0xfa33, OpLDB, "LD B, VA"},
		{0xfa55, OpLDIVx, "LD [I], VA"},
		{0xfa65, OpLDVxI, "LD VA, [I]"},

		{0x5ab1, OpUnknown, "DW 0x5ab1"},
		{0x8ab8, OpUnknown, "DW 0x8ab8"},
		{0x8abf, OpUnknown, "DW 0x8abf"},
		{0x9ab3, OpUnknown, "DW 0x9ab3"},
		{0xea00, OpUnknown, "DW 0xea00"},
		{0xfaff, OpUnknown, "DW 0xfaff"},
		{0xffff, OpUnknown, "DW 0xffff"},
	}

	for _, tt := range tests {
		in := Decode(tt.word)
		assert.Equal(t, tt.op, in.Op, tt.text)
		assert.Equal(t, tt.text, in.String())
	}
}

func TestDecodeFields(t *testing.T) {
	in := Decode(0xd7c4)
	assert.Equal(t, byte(0x7), in.X)
	assert.Equal(t, byte(0xc), in.Y)
	assert.Equal(t, byte(0x4), in.N)
	assert.Equal(t, byte(0xc4), in.KK)
	assert.Equal(t, uint16(0x7c4), in.NNN)
	assert.Equal(t, uint16(0xd7c4), in.Word)
}

// Every one of the 65536 words decodes to exactly one Op, and the 35 known
// instructions are all reachable.
func TestDecodeAllWords(t *testing.T) {
	seen := map[Op]bool{}
	for w := 0; w <= 0xffff; w++ {
		op := Decode(uint16(w)).Op
		assert.True(t, op < opCount)
		seen[op] = true
	}
	assert.Equal(t, int(opCount), len(seen))
}
